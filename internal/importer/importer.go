package importer

import (
	"io"

	"github.com/MrJamesThe3rd/fieldbook/internal/inventory"
)

// Format identifies a supported stock-list layout.
type Format string

const (
	// FormatSupplier is the generic supplier spreadsheet export:
	// name, category, qty, unit, cost_per_unit, min_stock.
	FormatSupplier Format = "supplier"
)

type Parser interface {
	Parse(r io.Reader) ([]inventory.CreateParams, error)
}
