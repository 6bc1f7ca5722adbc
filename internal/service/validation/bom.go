package validation

import (
	"fmt"
	"math"

	"github.com/akankshagoel28/masterlist/internal/config"
	"github.com/akankshagoel28/masterlist/internal/domain/models"
)

const maxIntegerQuantity = 100

// ValidateBOMEntry checks a candidate BOM row against the item and BOM
// snapshots. editingID is excluded from the pair-uniqueness check so a
// quantity edit of an existing entry does not collide with itself.
func ValidateBOMEntry(candidate models.BOMEntry, items []models.Item, bom []models.BOMEntry, policy config.QuantityPolicy, editingID int) []string {
	var violations []string

	item, itemOK := findItem(items, candidate.ItemID)
	component, componentOK := findItem(items, candidate.ComponentID)

	if !itemOK || !componentOK {
		violations = append(violations, "Invalid item or component selection")
		return violations
	}

	if item.Type != models.ItemTypeSell {
		violations = append(violations, fmt.Sprintf("Item %q must be a sell item to own a BOM", item.InternalItemName))
	}
	if !models.AllowedComponentTypes[component.Type] {
		violations = append(violations, fmt.Sprintf("Component %q must be a purchase or component item", component.InternalItemName))
	}

	violations = append(violations, validateQuantity(candidate.Quantity, policy)...)

	// Both sides counted in Nos cannot have a fractional quantity even under
	// the decimal policy.
	if item.UoM == models.UoMNos && component.UoM == models.UoMNos &&
		candidate.Quantity != math.Trunc(candidate.Quantity) {
		violations = append(violations, "Quantity must be a whole number when both items use Nos")
	}

	for _, existing := range bom {
		if existing.ID == editingID {
			continue
		}
		if existing.ItemID == candidate.ItemID && existing.ComponentID == candidate.ComponentID {
			violations = append(violations, fmt.Sprintf("Component %q is already in this item's BOM", component.InternalItemName))
			break
		}
	}

	if candidate.ItemID == candidate.ComponentID {
		violations = append(violations, "An item cannot be its own component")
	} else if createsCycle(candidate, bom) {
		violations = append(violations, fmt.Sprintf("Adding %q would create a circular BOM", component.InternalItemName))
	}

	return violations
}

// validateQuantity applies the configured quantity policy. Integer policy is
// whole numbers in [1, 100]; decimal policy is any quantity >= 0.01.
func validateQuantity(quantity float64, policy config.QuantityPolicy) []string {
	if math.IsNaN(quantity) {
		return []string{"Quantity must be a valid number"}
	}

	switch policy {
	case config.QuantityPolicyDecimal:
		if quantity < 0.01 {
			return []string{"Quantity must be greater than 0"}
		}
	default:
		if quantity != math.Trunc(quantity) {
			return []string{"Quantity must be a whole number"}
		}
		if quantity < 1 || quantity > maxIntegerQuantity {
			return []string{fmt.Sprintf("Quantity must be between 1 and %d", maxIntegerQuantity)}
		}
	}
	return nil
}

// createsCycle reports whether the candidate edge makes the item reachable
// from its own component graph. The type constraints already rule out the
// one-level cycle; this walks deeper component-of-component chains.
func createsCycle(candidate models.BOMEntry, bom []models.BOMEntry) bool {
	children := make(map[int][]int, len(bom))
	for _, e := range bom {
		children[e.ItemID] = append(children[e.ItemID], e.ComponentID)
	}
	children[candidate.ItemID] = append(children[candidate.ItemID], candidate.ComponentID)

	seen := map[int]bool{}
	stack := []int{candidate.ComponentID}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == candidate.ItemID {
			return true
		}
		if seen[node] {
			continue
		}
		seen[node] = true
		stack = append(stack, children[node]...)
	}
	return false
}

func findItem(items []models.Item, id int) (models.Item, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return models.Item{}, false
}
