package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fieldbook/internal/importer"
	"github.com/MrJamesThe3rd/fieldbook/internal/inventory"
	"github.com/MrJamesThe3rd/fieldbook/internal/memstore"
)

func TestService_Import(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	inv := inventory.NewService(store, inventory.ExactMatcher{})

	existing, err := inv.Add(ctx, inventory.CreateParams{Name: "Rope", Stock: 5})
	require.NoError(t, err)

	svc := importer.NewService(inv)

	input := `name,category,qty,unit,cost_per_unit,min_stock
Rope,hardware,25,meters,12,
White paint 5L,paint,10,cans,200.50,3
`

	result, err := svc.Import(ctx, importer.FormatSupplier, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Restocked)

	restocked, err := inv.Get(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, restocked.Stock)

	items, err := inv.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestService_Import_UnknownFormat(t *testing.T) {
	svc := importer.NewService(inventory.NewService(memstore.New(), nil))

	_, err := svc.Import(context.Background(), "warehouse", strings.NewReader(""))
	assert.Error(t, err)
}

func TestService_Import_DuplicateRowsWithinFile(t *testing.T) {
	// The second row naming a just-created item restocks it rather than
	// creating a duplicate.
	ctx := context.Background()
	inv := inventory.NewService(memstore.New(), inventory.ExactMatcher{})
	svc := importer.NewService(inv)

	input := "Rope,hardware,10\nrope,hardware,5\n"

	result, err := svc.Import(ctx, importer.FormatSupplier, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Restocked)

	items, err := inv.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 15, items[0].Stock)
}
