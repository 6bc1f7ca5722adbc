package models

// BOMEntry links a sell item to one of its components with a quantity.
// The (ItemID, ComponentID) pair is unique per item.
type BOMEntry struct {
	ID            int     `json:"id,omitempty"`
	ItemID        int     `json:"item_id"`
	ComponentID   int     `json:"component_id"`
	Quantity      float64 `json:"quantity"`
	CreatedBy     string  `json:"created_by"`
	LastUpdatedBy string  `json:"last_updated_by"`
}

// AllowedComponentTypes is the set of item types that may appear as a BOM
// component. Sell items are excluded, which also rules out the one-level
// self-cycle.
var AllowedComponentTypes = map[ItemType]bool{
	ItemTypePurchase:  true,
	ItemTypeComponent: true,
}
