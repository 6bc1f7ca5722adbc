package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/akankshagoel28/masterlist/internal/config"
)

// ImportSource reads header-mapped rows from a spreadsheet so a shared sheet
// can feed the same staging pipeline as a file upload.
type ImportSource interface {
	ReadTable(ctx context.Context, sheetRange string) ([]map[string]string, error)
}

// GoogleSheetSource implements ImportSource using the official Sheets API.
type GoogleSheetSource struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetSource builds a Google Sheets backed import source.
func NewGoogleSheetSource(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (ImportSource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetSource{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// ReadTable fetches a rectangular range and maps every data row onto the
// header row, mirroring what the CSV parser produces for uploads.
func (s *GoogleSheetSource) ReadTable(ctx context.Context, sheetRange string) ([]map[string]string, error) {
	if sheetRange == "" {
		return nil, fmt.Errorf("sheetRange must not be empty")
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("range %s has no header row", sheetRange)
	}

	header := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		header[i] = strings.TrimSpace(fmt.Sprint(cell))
	}

	rows := make([]map[string]string, 0, len(resp.Values)-1)
	for _, record := range resp.Values[1:] {
		row := make(map[string]string, len(header))
		for i, column := range header {
			if column == "" {
				continue
			}
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(fmt.Sprint(record[i]))
			}
			row[column] = value
		}
		rows = append(rows, row)
	}

	s.logger.Debug("sheet range read", zap.String("range", sheetRange), zap.Int("rows", len(rows)))
	return rows, nil
}
