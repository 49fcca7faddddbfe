// Package pricelist reads price list spreadsheets uploaded from the admin
// console or the import-prices command.
package pricelist

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"moto-repaint-backend/internal/domain"
)

var (
	ErrNoSheets = errors.New("workbook has no sheets")
	ErrNoHeader = errors.New("missing header row")
	ErrNoName   = errors.New("header has no name column")
	ErrNoRows   = errors.New("no valid price list rows")
)

// RowError explains why a spreadsheet row was skipped. Row is 1-based as
// shown in spreadsheet software.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

type Result struct {
	Sheet   string               `json:"sheet"`
	Items   []domain.CatalogItem `json:"items"`
	Skipped []RowError           `json:"skipped"`
}

const (
	colID          = "id"
	colCategory    = "category"
	colName        = "name"
	colPrice       = "price"
	colDescription = "description"
)

var headerAliases = map[string][]string{
	colID:          {"id", "no", "kode", "code"},
	colCategory:    {"category", "kategori", "group", "grup"},
	colName:        {"name", "nama", "item", "service", "layanan"},
	colPrice:       {"price", "harga", "cost", "biaya", "tarif"},
	colDescription: {"description", "deskripsi", "keterangan", "notes", "catatan"},
}

// Parse reads the first sheet of an xlsx workbook.
func Parse(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	res, err := parseRows(rows)
	if err != nil {
		return nil, err
	}
	res.Sheet = sheets[0]
	return res, nil
}

func parseRows(rows [][]string) (*Result, error) {
	headerAt := -1
	for i, row := range rows {
		if !isEmptyRow(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, ErrNoHeader
	}
	cols := mapColumns(rows[headerAt])
	if _, ok := cols[colName]; !ok {
		return nil, ErrNoName
	}

	res := &Result{}
	seen := map[int64]bool{}
	var pending []int // indexes into res.Items still needing an id
	var maxID int64

	for i := headerAt + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		line := i + 1

		name := cell(row, cols, colName)
		if name == "" {
			res.Skipped = append(res.Skipped, RowError{Row: line, Reason: "name is empty"})
			continue
		}

		var price int64
		if raw := cell(row, cols, colPrice); raw != "" {
			p, err := ParsePrice(raw)
			if err != nil {
				res.Skipped = append(res.Skipped, RowError{Row: line, Reason: err.Error()})
				continue
			}
			price = p
		}

		item := domain.CatalogItem{
			Category:    strings.ToLower(cell(row, cols, colCategory)),
			Name:        name,
			Price:       price,
			Description: cell(row, cols, colDescription),
		}

		if raw := cell(row, cols, colID); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				res.Skipped = append(res.Skipped, RowError{Row: line, Reason: fmt.Sprintf("invalid id %q", raw)})
				continue
			}
			if seen[id] {
				res.Skipped = append(res.Skipped, RowError{Row: line, Reason: fmt.Sprintf("duplicate id %d", id)})
				continue
			}
			seen[id] = true
			item.ID = id
			if id > maxID {
				maxID = id
			}
		} else {
			pending = append(pending, len(res.Items))
		}
		res.Items = append(res.Items, item)
	}

	for _, idx := range pending {
		maxID++
		res.Items[idx].ID = maxID
	}

	if len(res.Items) == 0 {
		return res, ErrNoRows
	}
	return res, nil
}

func mapColumns(header []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		for key, aliases := range headerAliases {
			if _, taken := cols[key]; taken {
				continue
			}
			for _, a := range aliases {
				if h == a {
					cols[key] = i
				}
			}
		}
	}
	return cols
}

func cell(row []string, cols map[string]int, key string) string {
	idx, ok := cols[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ParsePrice accepts whole currency amounts such as "1500000", "1.500.000",
// "1,500,000" or "Rp 1.500.000".
func ParsePrice(raw string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, prefix := range []string{"rp.", "rp", "idr"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.NewReplacer(" ", "", "\u00a0", "", ".", "", ",", "").Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative price %q", raw)
	}
	return v, nil
}
