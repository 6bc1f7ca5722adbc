// Package validation holds the pure rule checks for candidate master-data
// rows. Every function takes the candidate plus the relevant cached snapshot
// and returns an ordered list of human-readable violations; an empty list
// means the row may be submitted.
package validation

import (
	"fmt"

	"github.com/akankshagoel28/masterlist/internal/domain/models"
)

// ValidateItem checks a candidate item against the static rules and the
// current item snapshot. editingID is the id of the record being edited (0
// for a new item) and is excluded from the duplicate check.
func ValidateItem(candidate models.Item, existing []models.Item, editingID int) []string {
	var violations []string

	if candidate.InternalItemName == "" {
		violations = append(violations, "Internal item name is required")
	}
	if candidate.TenantID <= 0 {
		violations = append(violations, "Tenant ID is required")
	}
	if candidate.ItemDescription == "" {
		violations = append(violations, "Item description is required")
	}
	if candidate.CustomerItemName == "" {
		violations = append(violations, "Customer item name is required")
	}

	if candidate.Type == "" {
		violations = append(violations, "Type is required")
	} else if !candidate.Type.Valid() {
		violations = append(violations, fmt.Sprintf("Invalid type %q. Must be 'sell', 'purchase', or 'component'", candidate.Type))
	}

	if candidate.UoM == "" {
		violations = append(violations, "UoM is required")
	} else if !candidate.UoM.Valid() {
		violations = append(violations, fmt.Sprintf("Invalid UoM %q. Must be 'Nos' or 'Kgs'", candidate.UoM))
	}

	req := models.RequirementsFor(candidate.Type)
	if req.ScrapType && candidate.AdditionalAttributes.ScrapType == "" {
		violations = append(violations, "Scrap type is required for sell/purchase items")
	}
	if req.MinBuffer && candidate.MinBuffer <= 0 {
		violations = append(violations, "Min buffer is required for sell/purchase items")
	}

	if candidate.MaxBuffer < candidate.MinBuffer {
		violations = append(violations, "Max buffer must be greater than or equal to min buffer")
	}
	if candidate.MinBuffer < 0 {
		violations = append(violations, "Min buffer must not be negative")
	}

	for _, other := range existing {
		if other.ID == editingID {
			continue
		}
		if other.InternalItemName == candidate.InternalItemName && other.TenantID == candidate.TenantID {
			violations = append(violations, fmt.Sprintf("Item %q already exists for tenant %d", candidate.InternalItemName, candidate.TenantID))
			break
		}
	}

	return violations
}
