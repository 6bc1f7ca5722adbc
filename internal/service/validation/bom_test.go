package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akankshagoel28/masterlist/internal/config"
	"github.com/akankshagoel28/masterlist/internal/domain/models"
)

func bomItems() []models.Item {
	return []models.Item{
		{ID: 1, InternalItemName: "assembly", Type: models.ItemTypeSell, UoM: models.UoMNos},
		{ID: 2, InternalItemName: "bolt", Type: models.ItemTypePurchase, UoM: models.UoMNos},
		{ID: 3, InternalItemName: "sheet-steel", Type: models.ItemTypePurchase, UoM: models.UoMKgs},
		{ID: 4, InternalItemName: "bracket", Type: models.ItemTypeComponent, UoM: models.UoMNos},
		{ID: 5, InternalItemName: "other-assembly", Type: models.ItemTypeSell, UoM: models.UoMNos},
	}
}

func TestValidateBOMEntryAcceptsValidEntry(t *testing.T) {
	entry := models.BOMEntry{ItemID: 1, ComponentID: 2, Quantity: 4}

	violations := ValidateBOMEntry(entry, bomItems(), nil, config.QuantityPolicyInteger, 0)
	assert.Empty(t, violations)
}

func TestValidateBOMEntryRejectsUnknownIDs(t *testing.T) {
	entry := models.BOMEntry{ItemID: 99, ComponentID: 2, Quantity: 1}

	violations := ValidateBOMEntry(entry, bomItems(), nil, config.QuantityPolicyInteger, 0)
	assert.Equal(t, []string{"Invalid item or component selection"}, violations)
}

func TestValidateBOMEntryRejectsNonSellOwner(t *testing.T) {
	entry := models.BOMEntry{ItemID: 2, ComponentID: 4, Quantity: 1}

	violations := ValidateBOMEntry(entry, bomItems(), nil, config.QuantityPolicyInteger, 0)
	assert.Contains(t, violations, `Item "bolt" must be a sell item to own a BOM`)
}

func TestValidateBOMEntryRejectsSellComponent(t *testing.T) {
	entry := models.BOMEntry{ItemID: 1, ComponentID: 5, Quantity: 1}

	violations := ValidateBOMEntry(entry, bomItems(), nil, config.QuantityPolicyInteger, 0)
	assert.Contains(t, violations, `Component "other-assembly" must be a purchase or component item`)
}

func TestValidateBOMEntryIntegerQuantityPolicy(t *testing.T) {
	items := bomItems()

	entry := models.BOMEntry{ItemID: 1, ComponentID: 3, Quantity: 2.5}
	violations := ValidateBOMEntry(entry, items, nil, config.QuantityPolicyInteger, 0)
	assert.Contains(t, violations, "Quantity must be a whole number")

	entry.Quantity = 0
	violations = ValidateBOMEntry(entry, items, nil, config.QuantityPolicyInteger, 0)
	assert.Contains(t, violations, "Quantity must be between 1 and 100")

	entry.Quantity = 101
	violations = ValidateBOMEntry(entry, items, nil, config.QuantityPolicyInteger, 0)
	assert.Contains(t, violations, "Quantity must be between 1 and 100")

	entry.Quantity = 100
	assert.Empty(t, ValidateBOMEntry(entry, items, nil, config.QuantityPolicyInteger, 0))
}

func TestValidateBOMEntryDecimalQuantityPolicy(t *testing.T) {
	items := bomItems()

	// Kgs component, so decimals are allowed under the decimal policy.
	entry := models.BOMEntry{ItemID: 1, ComponentID: 3, Quantity: 2.5}
	assert.Empty(t, ValidateBOMEntry(entry, items, nil, config.QuantityPolicyDecimal, 0))

	entry.Quantity = 0.001
	violations := ValidateBOMEntry(entry, items, nil, config.QuantityPolicyDecimal, 0)
	assert.Contains(t, violations, "Quantity must be greater than 0")
}

func TestValidateBOMEntryNosPairNeedsWholeQuantity(t *testing.T) {
	entry := models.BOMEntry{ItemID: 1, ComponentID: 2, Quantity: 1.5}

	violations := ValidateBOMEntry(entry, bomItems(), nil, config.QuantityPolicyDecimal, 0)
	assert.Contains(t, violations, "Quantity must be a whole number when both items use Nos")
}

func TestValidateBOMEntryRejectsDuplicatePair(t *testing.T) {
	existing := []models.BOMEntry{{ID: 10, ItemID: 1, ComponentID: 2, Quantity: 1}}
	entry := models.BOMEntry{ItemID: 1, ComponentID: 2, Quantity: 2}

	violations := ValidateBOMEntry(entry, bomItems(), existing, config.QuantityPolicyInteger, 0)
	assert.Contains(t, violations, `Component "bolt" is already in this item's BOM`)

	// Editing the same entry does not collide with itself.
	assert.Empty(t, ValidateBOMEntry(entry, bomItems(), existing, config.QuantityPolicyInteger, 10))
}

func TestValidateBOMEntryRejectsSelfReference(t *testing.T) {
	entry := models.BOMEntry{ItemID: 1, ComponentID: 1, Quantity: 1}

	violations := ValidateBOMEntry(entry, bomItems(), nil, config.QuantityPolicyInteger, 0)
	assert.Contains(t, violations, "An item cannot be its own component")
}

func TestValidateBOMEntryRejectsDeepCycle(t *testing.T) {
	// bracket already contains assembly through an intermediate, so adding
	// bracket under assembly closes a loop.
	existing := []models.BOMEntry{
		{ID: 20, ItemID: 4, ComponentID: 6, Quantity: 1},
		{ID: 21, ItemID: 6, ComponentID: 1, Quantity: 1},
	}
	entry := models.BOMEntry{ItemID: 1, ComponentID: 4, Quantity: 1}

	violations := ValidateBOMEntry(entry, bomItems(), existing, config.QuantityPolicyInteger, 0)
	assert.Contains(t, violations, `Adding "bracket" would create a circular BOM`)
}
