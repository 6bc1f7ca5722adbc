package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akankshagoel28/masterlist/internal/domain/models"
)

func validSellItem() models.Item {
	return models.Item{
		InternalItemName: "widget-a",
		TenantID:         1,
		ItemDescription:  "Widget A",
		UoM:              models.UoMNos,
		Type:             models.ItemTypeSell,
		MaxBuffer:        20,
		MinBuffer:        10,
		CustomerItemName: "Customer Widget A",
		AdditionalAttributes: models.AdditionalAttributes{
			ScrapType: "metal",
		},
	}
}

func TestValidateItemAcceptsCompleteSellItem(t *testing.T) {
	violations := ValidateItem(validSellItem(), nil, 0)
	assert.Empty(t, violations)
}

func TestValidateItemRequiresScrapTypeForSellAndPurchase(t *testing.T) {
	for _, itemType := range []models.ItemType{models.ItemTypeSell, models.ItemTypePurchase} {
		candidate := validSellItem()
		candidate.Type = itemType
		candidate.AdditionalAttributes.ScrapType = ""

		violations := ValidateItem(candidate, nil, 0)
		assert.Contains(t, violations, "Scrap type is required for sell/purchase items")
	}

	// Component items have no scrap type requirement.
	candidate := validSellItem()
	candidate.Type = models.ItemTypeComponent
	candidate.MinBuffer = 0
	candidate.AdditionalAttributes.ScrapType = ""
	assert.Empty(t, ValidateItem(candidate, nil, 0))
}

func TestValidateItemRequiresMinBufferForSellAndPurchase(t *testing.T) {
	candidate := validSellItem()
	candidate.MinBuffer = 0

	violations := ValidateItem(candidate, nil, 0)
	assert.Contains(t, violations, "Min buffer is required for sell/purchase items")
}

func TestValidateItemRejectsMaxBufferBelowMin(t *testing.T) {
	candidate := validSellItem()
	candidate.MaxBuffer = 5
	candidate.MinBuffer = 10

	violations := ValidateItem(candidate, nil, 0)
	assert.Contains(t, violations, "Max buffer must be greater than or equal to min buffer")
}

func TestValidateItemRejectsUnknownTypeAndUoM(t *testing.T) {
	candidate := validSellItem()
	candidate.Type = "resale"
	candidate.UoM = "Lbs"

	violations := ValidateItem(candidate, nil, 0)
	assert.Contains(t, violations, `Invalid type "resale". Must be 'sell', 'purchase', or 'component'`)
	assert.Contains(t, violations, `Invalid UoM "Lbs". Must be 'Nos' or 'Kgs'`)
}

func TestValidateItemRejectsDuplicateNameForTenant(t *testing.T) {
	existing := []models.Item{{ID: 7, InternalItemName: "widget-a", TenantID: 1}}

	violations := ValidateItem(validSellItem(), existing, 0)
	assert.Contains(t, violations, `Item "widget-a" already exists for tenant 1`)

	// Same tenant, different name is fine.
	candidate := validSellItem()
	candidate.InternalItemName = "widget-b"
	assert.Empty(t, ValidateItem(candidate, existing, 0))
}

func TestValidateItemExcludesEditedRecordFromDuplicateCheck(t *testing.T) {
	existing := []models.Item{{ID: 7, InternalItemName: "widget-a", TenantID: 1}}

	violations := ValidateItem(validSellItem(), existing, 7)
	assert.Empty(t, violations)
}

func TestValidateItemCollectsAllMissingFields(t *testing.T) {
	violations := ValidateItem(models.Item{}, nil, 0)

	assert.Contains(t, violations, "Internal item name is required")
	assert.Contains(t, violations, "Tenant ID is required")
	assert.Contains(t, violations, "Item description is required")
	assert.Contains(t, violations, "Customer item name is required")
	assert.Contains(t, violations, "Type is required")
	assert.Contains(t, violations, "UoM is required")
}
