package bulkupload

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Entity names a bulk-uploadable entity type.
type Entity string

const (
	EntityItems Entity = "items"
	EntityBOM   Entity = "bom"
)

// itemTemplateColumns is the fixed 15-column header of the items template,
// matching the upload format exactly.
var itemTemplateColumns = []string{
	"internal_item_name",
	"tenant_id",
	"item_description",
	"uom",
	"type",
	"max_buffer",
	"min_buffer",
	"customer_item_name",
	"drawing_revision_number",
	"drawing_revision_date",
	"avg_weight_needed",
	"scrap_type",
	"shelf_floor_alternate_name",
	"created_by",
	"last_updated_by",
}

var bomTemplateColumns = []string{
	"item_id",
	"component_id",
	"quantity",
	"created_by",
	"last_updated_by",
}

// TemplateColumns returns the upload header for an entity.
func TemplateColumns(entity Entity) ([]string, error) {
	switch entity {
	case EntityItems:
		return itemTemplateColumns, nil
	case EntityBOM:
		return bomTemplateColumns, nil
	default:
		return nil, fmt.Errorf("no template for entity %q", entity)
	}
}

// TemplateCSV renders the downloadable CSV template: the header row only, in
// the same format expected on upload.
func TemplateCSV(entity Entity) ([]byte, error) {
	columns, err := TemplateColumns(entity)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("write template header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TemplateXLSX renders the downloadable XLSX template.
func TemplateXLSX(entity Entity) ([]byte, error) {
	columns, err := TemplateColumns(entity)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, column := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, column); err != nil {
			return nil, fmt.Errorf("write template cell: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render template workbook: %w", err)
	}
	return buf.Bytes(), nil
}
