// Package supplier parses generic supplier stock-list CSV exports.
package supplier

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/fieldbook/internal/encoding"
	"github.com/MrJamesThe3rd/fieldbook/internal/inventory"
)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse reads a CSV with columns name, category, qty, unit, cost_per_unit,
// min_stock. A header row is detected and skipped; category, unit and
// min_stock are optional per row.
func (p *Parser) Parse(r io.Reader) ([]inventory.CreateParams, error) {
	decoded, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var params []inventory.CreateParams

	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if line == 1 && isHeader(record) {
			continue
		}

		item, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		params = append(params, item)
	}

	return params, nil
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "name")
}

func parseRecord(record []string) (inventory.CreateParams, error) {
	if len(record) < 3 {
		return inventory.CreateParams{}, fmt.Errorf("expected at least name, category, qty; got %d fields", len(record))
	}

	name := strings.TrimSpace(record[0])
	if name == "" {
		return inventory.CreateParams{}, fmt.Errorf("empty name")
	}

	qty, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil || qty < 0 {
		return inventory.CreateParams{}, fmt.Errorf("invalid quantity %q", record[2])
	}

	params := inventory.CreateParams{
		Name:     name,
		Category: strings.TrimSpace(record[1]),
		Stock:    qty,
	}

	if len(record) > 3 {
		params.Unit = strings.TrimSpace(record[3])
	}

	if len(record) > 4 && strings.TrimSpace(record[4]) != "" {
		cents, err := parseCents(record[4])
		if err != nil {
			return inventory.CreateParams{}, err
		}

		params.CostPerUnit = cents
	}

	if len(record) > 5 && strings.TrimSpace(record[5]) != "" {
		minStock, err := strconv.Atoi(strings.TrimSpace(record[5]))
		if err != nil || minStock < 0 {
			return inventory.CreateParams{}, fmt.Errorf("invalid min stock %q", record[5])
		}

		params.MinStock = minStock
	}

	return params, nil
}

// parseCents turns "200", "200.5" or "200.50" into cents. Costs are
// non-negative; a leading minus is rejected before the decimal split so the
// fraction cannot cancel against a negative whole part.
func parseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("invalid cost %q", s)
	}

	whole, frac, _ := strings.Cut(s, ".")

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid cost %q", s)
	}

	if frac == "" {
		return units * 100, nil
	}

	if len(frac) > 2 {
		frac = frac[:2]
	}

	for len(frac) < 2 {
		frac += "0"
	}

	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid cost %q", s)
	}

	return units*100 + cents, nil
}
