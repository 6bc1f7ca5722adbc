package models

import "sort"

// ItemType is the closed set of item categories driving validation.
type ItemType string

const (
	ItemTypeSell      ItemType = "sell"
	ItemTypePurchase  ItemType = "purchase"
	ItemTypeComponent ItemType = "component"
)

// Valid reports whether the value is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeSell, ItemTypePurchase, ItemTypeComponent:
		return true
	}
	return false
}

// UoM is a unit of measure.
type UoM string

const (
	UoMNos UoM = "Nos"
	UoMKgs UoM = "Kgs"
)

// Valid reports whether the value is a supported unit of measure.
func (u UoM) Valid() bool {
	return u == UoMNos || u == UoMKgs
}

// TypeRequirements maps each item type to its conditionally required fields.
// Adding a type is a single entry here; validation reads the table instead of
// branching on strings.
type TypeRequirements struct {
	ScrapType bool
	MinBuffer bool
}

var typeRequirements = map[ItemType]TypeRequirements{
	ItemTypeSell:      {ScrapType: true, MinBuffer: true},
	ItemTypePurchase:  {ScrapType: true, MinBuffer: true},
	ItemTypeComponent: {},
}

// RequirementsFor returns the conditional field requirements for a type.
func RequirementsFor(t ItemType) TypeRequirements {
	return typeRequirements[t]
}

// AdditionalAttributes carries the free-form item attributes the API nests
// under additional_attributes.
type AdditionalAttributes struct {
	DrawingRevisionNumber   int    `json:"drawing_revision_number"`
	DrawingRevisionDate     string `json:"drawing_revision_date"`
	AvgWeightNeeded         bool   `json:"avg_weight_needed"`
	ScrapType               string `json:"scrap_type"`
	ShelfFloorAlternateName string `json:"shelf_floor_alternate_name"`
}

// Item is a master-data item as served by the remote API.
type Item struct {
	ID                   int                  `json:"id,omitempty"`
	InternalItemName     string               `json:"internal_item_name"`
	TenantID             int                  `json:"tenant_id"`
	ItemDescription      string               `json:"item_description"`
	UoM                  UoM                  `json:"uom"`
	Type                 ItemType             `json:"type"`
	MaxBuffer            int                  `json:"max_buffer"`
	MinBuffer            int                  `json:"min_buffer"`
	CustomerItemName     string               `json:"customer_item_name"`
	IsDeleted            bool                 `json:"is_deleted"`
	AdditionalAttributes AdditionalAttributes `json:"additional_attributes"`
	CreatedBy            string               `json:"created_by"`
	LastUpdatedBy        string               `json:"last_updated_by"`
}

// IsComplete reports whether every required field for the item's type is set.
// Pending (incomplete) items stay in the store and are surfaced for follow-up
// instead of being deleted.
func (i Item) IsComplete() bool {
	if i.InternalItemName == "" || i.TenantID == 0 || i.ItemDescription == "" ||
		i.CustomerItemName == "" || !i.Type.Valid() || !i.UoM.Valid() {
		return false
	}

	req := RequirementsFor(i.Type)
	if req.ScrapType && i.AdditionalAttributes.ScrapType == "" {
		return false
	}
	if req.MinBuffer && i.MinBuffer == 0 {
		return false
	}
	return i.MaxBuffer >= i.MinBuffer
}

// SortItems orders items by type, then by internal name within a type,
// mirroring how the dashboard lists them. Component items sort last.
func SortItems(items []Item) {
	sort.SliceStable(items, func(a, b int) bool {
		if items[a].Type == items[b].Type {
			return items[a].InternalItemName < items[b].InternalItemName
		}
		if items[a].Type == ItemTypeComponent {
			return false
		}
		if items[b].Type == ItemTypeComponent {
			return true
		}
		return items[a].Type < items[b].Type
	})
}
