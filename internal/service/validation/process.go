package validation

import (
	"fmt"
	"sort"

	"github.com/akankshagoel28/masterlist/internal/domain/models"
)

// ValidateProcess checks the required process fields.
func ValidateProcess(candidate models.Process) []string {
	var violations []string

	if candidate.ProcessName == "" {
		violations = append(violations, "Process name is required")
	} else if !candidate.ProcessName.Valid() {
		violations = append(violations, fmt.Sprintf("Unknown process name %q", candidate.ProcessName))
	}
	if candidate.TenantID <= 0 {
		violations = append(violations, "Tenant ID is required")
	}
	if candidate.Type == "" {
		violations = append(violations, "Process type is required")
	}
	if candidate.FactoryID <= 0 {
		violations = append(violations, "Factory ID is required")
	}

	return violations
}

// ValidateProcessStep checks the required step fields. Sequence contiguity is
// deliberately not checked here; see SequenceWarnings.
func ValidateProcessStep(candidate models.ProcessStep) []string {
	var violations []string

	if candidate.ItemID <= 0 {
		violations = append(violations, "Item is required")
	}
	if candidate.ProcessID <= 0 {
		violations = append(violations, "Process is required")
	}
	if candidate.Sequence <= 0 {
		violations = append(violations, "Sequence must be a positive number")
	}

	return violations
}

// SequenceWarnings inspects one item's steps and reports gaps or duplicate
// sequence numbers. These are advisory: steps persist regardless, and callers
// surface the list in a warning banner rather than blocking submission.
func SequenceWarnings(steps []models.ProcessStep) []string {
	if len(steps) == 0 {
		return nil
	}

	sequences := make([]int, 0, len(steps))
	for _, s := range steps {
		sequences = append(sequences, s.Sequence)
	}
	sort.Ints(sequences)

	var warnings []string
	expected := 1
	for i, seq := range sequences {
		if i > 0 && seq == sequences[i-1] {
			warnings = append(warnings, fmt.Sprintf("Sequence %d is used more than once", seq))
			continue
		}
		if seq != expected {
			warnings = append(warnings, fmt.Sprintf("Sequence gap: expected %d, found %d", expected, seq))
		}
		expected = seq + 1
	}

	return warnings
}
