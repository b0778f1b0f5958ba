package supplier_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fieldbook/internal/importer/supplier"
	"github.com/MrJamesThe3rd/fieldbook/internal/inventory"
)

func TestParser_Parse(t *testing.T) {
	input := `name,category,qty,unit,cost_per_unit,min_stock
White paint 5L,paint,10,cans,200.50,3
Rope,hardware,25,meters,12,
Sand,,100,kg,,
`

	parser := supplier.New()
	got, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, inventory.CreateParams{
		Name:        "White paint 5L",
		Category:    "paint",
		Stock:       10,
		Unit:        "cans",
		CostPerUnit: 20050,
		MinStock:    3,
	}, got[0])

	assert.Equal(t, int64(1200), got[1].CostPerUnit)
	assert.Equal(t, 0, got[1].MinStock)

	assert.Equal(t, "Sand", got[2].Name)
	assert.Equal(t, int64(0), got[2].CostPerUnit)
}

func TestParser_Parse_NoHeader(t *testing.T) {
	parser := supplier.New()
	got, err := parser.Parse(strings.NewReader("Rope,hardware,25\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Rope", got[0].Name)
	assert.Equal(t, 25, got[0].Stock)
}

func TestParser_Parse_Invalid(t *testing.T) {
	type testCase struct {
		name  string
		input string
	}

	tests := []testCase{
		{name: "TooFewFields", input: "Rope,hardware\n"},
		{name: "EmptyName", input: " ,hardware,25\n"},
		{name: "BadQty", input: "Rope,hardware,lots\n"},
		{name: "NegativeQty", input: "Rope,hardware,-5\n"},
		{name: "BadCost", input: "Rope,hardware,25,meters,cheap\n"},
		{name: "NegativeCost", input: "Rope,hardware,25,meters,-1.50\n"},
		{name: "BadMinStock", input: "Rope,hardware,25,meters,12,none\n"},
	}

	parser := supplier.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParser_Parse_Empty(t *testing.T) {
	parser := supplier.New()
	got, err := parser.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
