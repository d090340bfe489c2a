// Package ingest loads tabular sales data into the store.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/salescope/salescope/internal/model"
)

// requiredColumns must all be present after header normalization.
var requiredColumns = []string{"date", "channel", "product_name", "city", "quantity", "sales"}

// dateLayouts are tried in order when coercing the date column. excelize
// returns formatted cell text, so both ISO and spreadsheet-style forms show up.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06 15:04",
	"01/02/2006",
	"1/2/2006",
	"02-Jan-06",
}

// Inserter is the piece of the store the loader needs.
type Inserter interface {
	InsertSales(ctx context.Context, records []model.SalesRecord) error
}

// Loader reads tabular files and appends their rows to sales_data.
type Loader struct {
	store  Inserter
	logger *slog.Logger

	// Progress, when set, is called with the number of rows loaded.
	Progress func(n int)
}

func NewLoader(store Inserter, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{store: store, logger: logger}
}

// Load dispatches on file extension: .xlsx or .csv.
func (l *Loader) Load(ctx context.Context, path string) (int, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return l.LoadExcel(ctx, path)
	case ".csv":
		return l.LoadCSV(ctx, path)
	default:
		return 0, fmt.Errorf("unsupported file format %q: expected .xlsx or .csv", filepath.Ext(path))
	}
}

// LoadExcel reads the first sheet of a workbook and appends its rows.
func (l *Loader) LoadExcel(ctx context.Context, path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet: %w", err)
	}

	return l.loadRows(ctx, rows)
}

// LoadCSV reads a comma-separated file and appends its rows.
func (l *Loader) LoadCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to parse csv: %w", err)
	}

	return l.loadRows(ctx, rows)
}

func (l *Loader) loadRows(ctx context.Context, rows [][]string) (int, error) {
	if len(rows) < 2 {
		return 0, fmt.Errorf("file needs a header row and at least one data row")
	}

	index, err := columnIndex(rows[0])
	if err != nil {
		return 0, err
	}

	// Parse the whole file before touching the store. A bad row aborts the
	// load with nothing persisted, and InsertSales runs in one transaction.
	records := make([]model.SalesRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		rec, err := parseRecord(row, index)
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return 0, nil
	}
	if err := l.store.InsertSales(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to insert rows: %w", err)
	}
	if l.Progress != nil {
		l.Progress(len(records))
	}

	l.logger.Info("bulk load complete", "rows", len(records))
	return len(records), nil
}

// columnIndex maps normalized headers to their positions and checks that all
// required columns are present.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[NormalizeHeader(h)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return index, nil
}

// NormalizeHeader standardizes a column header: trim, lowercase, spaces to
// underscores.
func NormalizeHeader(h string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
}

func parseRecord(row []string, index map[string]int) (model.SalesRecord, error) {
	get := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	date, err := parseDate(get("date"))
	if err != nil {
		return model.SalesRecord{}, err
	}

	quantity, err := strconv.Atoi(get("quantity"))
	if err != nil {
		return model.SalesRecord{}, fmt.Errorf("invalid quantity %q", get("quantity"))
	}

	sales, err := strconv.ParseFloat(get("sales"), 64)
	if err != nil {
		return model.SalesRecord{}, fmt.Errorf("invalid sales %q", get("sales"))
	}

	return model.SalesRecord{
		Date:        date,
		Channel:     get("channel"),
		ProductName: get("product_name"),
		City:        get("city"),
		Quantity:    quantity,
		Sales:       sales,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	// Date cells without a number format come through as raw Excel serials.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
