package bulkupload

import (
	"strconv"
	"strings"

	"github.com/akankshagoel28/masterlist/internal/domain/models"
)

// normalizeItems coerces absent optional cells to their documented defaults
// so the staging table never shows holes a later parse would trip over.
func normalizeItems(rows []RawRow) []RawRow {
	out := make([]RawRow, 0, len(rows))
	for _, row := range rows {
		n := RawRow{}
		for _, column := range itemTemplateColumns {
			n[column] = row[column]
		}
		defaultTo(n, "max_buffer", "0")
		defaultTo(n, "min_buffer", "0")
		defaultTo(n, "drawing_revision_number", "0")
		defaultTo(n, "avg_weight_needed", "false")
		defaultTo(n, "created_by", "user1")
		defaultTo(n, "last_updated_by", "user1")
		n["avg_weight_needed"] = strconv.FormatBool(strings.EqualFold(n["avg_weight_needed"], "true"))
		out = append(out, n)
	}
	return out
}

func normalizeBOM(rows []RawRow) []RawRow {
	out := make([]RawRow, 0, len(rows))
	for _, row := range rows {
		n := RawRow{}
		for _, column := range bomTemplateColumns {
			n[column] = row[column]
		}
		defaultTo(n, "quantity", "1")
		defaultTo(n, "created_by", "user1")
		defaultTo(n, "last_updated_by", "user1")
		out = append(out, n)
	}
	return out
}

func defaultTo(row RawRow, column, fallback string) {
	if row[column] == "" {
		row[column] = fallback
	}
}

// itemFromRow converts a normalized staging row into a typed candidate.
// Numeric coercion failures come back as violations, not silent drops.
func itemFromRow(row RawRow) (models.Item, []string) {
	var violations []string

	tenantID, err := atoiCell(row["tenant_id"])
	if err != nil && row["tenant_id"] != "" {
		violations = append(violations, "Tenant ID must be a valid number")
	}
	maxBuffer, err := atoiCell(row["max_buffer"])
	if err != nil {
		violations = append(violations, "Buffer values must be valid numbers")
	}
	minBuffer, err := atoiCell(row["min_buffer"])
	if err != nil {
		violations = append(violations, "Buffer values must be valid numbers")
	}
	revision, err := atoiCell(row["drawing_revision_number"])
	if err != nil {
		violations = append(violations, "Drawing revision number must be a valid number")
	}

	item := models.Item{
		InternalItemName: row["internal_item_name"],
		TenantID:         tenantID,
		ItemDescription:  row["item_description"],
		UoM:              models.UoM(row["uom"]),
		Type:             models.ItemType(row["type"]),
		MaxBuffer:        maxBuffer,
		MinBuffer:        minBuffer,
		CustomerItemName: row["customer_item_name"],
		AdditionalAttributes: models.AdditionalAttributes{
			DrawingRevisionNumber:   revision,
			DrawingRevisionDate:     row["drawing_revision_date"],
			AvgWeightNeeded:         row["avg_weight_needed"] == "true",
			ScrapType:               row["scrap_type"],
			ShelfFloorAlternateName: row["shelf_floor_alternate_name"],
		},
		CreatedBy:     row["created_by"],
		LastUpdatedBy: row["last_updated_by"],
	}

	return item, violations
}

func bomFromRow(row RawRow) (models.BOMEntry, []string) {
	var violations []string

	itemID, err := atoiCell(row["item_id"])
	if err != nil {
		violations = append(violations, "Item ID must be a valid number")
	}
	componentID, err := atoiCell(row["component_id"])
	if err != nil {
		violations = append(violations, "Component ID must be a valid number")
	}
	quantity, err := strconv.ParseFloat(row["quantity"], 64)
	if err != nil {
		violations = append(violations, "Quantity must be a valid number")
	}

	entry := models.BOMEntry{
		ItemID:        itemID,
		ComponentID:   componentID,
		Quantity:      quantity,
		CreatedBy:     row["created_by"],
		LastUpdatedBy: row["last_updated_by"],
	}

	return entry, violations
}

func atoiCell(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}
