package models

// ProcessName enumerates the known manufacturing process types.
type ProcessName string

const (
	ProcessManufacturing     ProcessName = "manufacturing"
	ProcessAssembly          ProcessName = "assembly"
	ProcessQualityInspection ProcessName = "quality_inspection"
	ProcessPackaging         ProcessName = "packaging"
	ProcessMachining         ProcessName = "machining"
	ProcessWelding           ProcessName = "welding"
	ProcessPainting          ProcessName = "painting"
	ProcessHeatTreatment     ProcessName = "heat_treatment"
	ProcessSurfaceTreatment  ProcessName = "surface_treatment"
	ProcessTesting           ProcessName = "testing"
)

// KnownProcessNames lists every supported process name in display order.
var KnownProcessNames = []ProcessName{
	ProcessManufacturing,
	ProcessAssembly,
	ProcessQualityInspection,
	ProcessPackaging,
	ProcessMachining,
	ProcessWelding,
	ProcessPainting,
	ProcessHeatTreatment,
	ProcessSurfaceTreatment,
	ProcessTesting,
}

// Valid reports whether the process name is one of the known types.
func (n ProcessName) Valid() bool {
	for _, known := range KnownProcessNames {
		if n == known {
			return true
		}
	}
	return false
}

// Process is a factory process definition.
type Process struct {
	ID          int         `json:"id,omitempty"`
	ProcessName ProcessName `json:"process_name"`
	TenantID    int         `json:"tenant_id"`
	Type        string      `json:"type"`
	FactoryID   int         `json:"factory_id"`
}

// ProcessStep assigns a process to an item at a position in its routing.
// Sequences for an item should form a contiguous 1..n run; gaps and
// duplicates are surfaced as warnings but persist anyway.
type ProcessStep struct {
	ID            int    `json:"id,omitempty"`
	ItemID        int    `json:"item_id"`
	ProcessID     int    `json:"process_id"`
	Sequence      int    `json:"sequence"`
	CreatedBy     string `json:"created_by"`
	LastUpdatedBy string `json:"last_updated_by"`
}
