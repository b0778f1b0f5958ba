package inventory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fieldbook/internal/inventory"
)

func TestService_Add(t *testing.T) {
	type testCase struct {
		name      string
		params    inventory.CreateParams
		setupMock func(m *inventory.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name:   "Success",
			params: inventory.CreateParams{Name: "  Paint  ", Stock: 10, Unit: "liters", CostPerUnit: 200, MinStock: 3},
			setupMock: func(m *inventory.MockRepository) {
				m.EXPECT().
					CreateItem(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, item *inventory.Item) error {
						assert.Equal(t, "Paint", item.Name)
						item.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "EmptyName",
			params:  inventory.CreateParams{Name: "   ", Stock: 10},
			wantErr: true,
		},
		{
			name:    "NegativeStock",
			params:  inventory.CreateParams{Name: "Paint", Stock: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := inventory.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := inventory.NewService(repo, nil)
			got, err := svc.Add(context.Background(), tt.params)

			if tt.wantErr {
				assert.ErrorIs(t, err, inventory.ErrInvalidInput)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Consume(t *testing.T) {
	items := func(stock int) []*inventory.Item {
		return []*inventory.Item{
			{ID: uuid.New(), Name: "White paint 5L", Stock: stock},
		}
	}

	type testCase struct {
		name      string
		stock     int
		material  string
		qty       int
		wantStock int
		wantOK    bool
	}

	tests := []testCase{
		{name: "Deducts", stock: 10, material: "paint", qty: 4, wantStock: 6, wantOK: true},
		{name: "ClampsAtZero", stock: 3, material: "paint", qty: 5, wantStock: 0, wantOK: true},
		{name: "NoMatch", stock: 10, material: "gravel", qty: 2, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := inventory.NewMockRepository(ctrl)
			repo.EXPECT().ListItems(gomock.Any()).Return(items(tt.stock), nil)

			if tt.wantOK {
				repo.EXPECT().
					UpdateItem(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, item *inventory.Item) error {
						assert.Equal(t, tt.wantStock, item.Stock)
						return nil
					})
			}

			svc := inventory.NewService(repo, nil)
			stock, ok, err := svc.Consume(context.Background(), tt.material, tt.qty)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.Equal(t, tt.wantStock, stock)
			}
		})
	}
}

func TestService_Consume_NonPositiveQty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No repository calls expected.
	repo := inventory.NewMockRepository(ctrl)
	svc := inventory.NewService(repo, nil)

	_, ok, err := svc.Consume(context.Background(), "paint", 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_Restore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := inventory.NewMockRepository(ctrl)
	repo.EXPECT().
		ListItems(gomock.Any()).
		Return([]*inventory.Item{{ID: uuid.New(), Name: "White paint 5L", Stock: 6}}, nil)
	repo.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(nil)

	svc := inventory.NewService(repo, nil)
	stock, ok, err := svc.Restore(context.Background(), "paint", 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 9, stock)
}

func TestService_Adjust(t *testing.T) {
	type testCase struct {
		name  string
		stock int
		delta int
		want  int
	}

	tests := []testCase{
		{name: "Up", stock: 5, delta: 3, want: 8},
		{name: "Down", stock: 5, delta: -2, want: 3},
		{name: "ClampsAtZero", stock: 5, delta: -9, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			id := uuid.New()
			repo := inventory.NewMockRepository(ctrl)
			repo.EXPECT().
				GetItem(gomock.Any(), id).
				Return(&inventory.Item{ID: id, Name: "Rope", Stock: tt.stock}, nil)
			repo.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(nil)

			svc := inventory.NewService(repo, nil)
			got, err := svc.Adjust(context.Background(), id, tt.delta)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Restock(t *testing.T) {
	t.Run("Positive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		repo := inventory.NewMockRepository(ctrl)
		repo.EXPECT().
			GetItem(gomock.Any(), id).
			Return(&inventory.Item{ID: id, Name: "Rope", Stock: 2}, nil)
		repo.EXPECT().UpdateItem(gomock.Any(), gomock.Any()).Return(nil)

		svc := inventory.NewService(repo, nil)
		got, err := svc.Restock(context.Background(), id, 10)
		require.NoError(t, err)
		assert.Equal(t, 12, got)
	})

	t.Run("RejectsNonPositive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := inventory.NewMockRepository(ctrl)
		svc := inventory.NewService(repo, nil)

		_, err := svc.Restock(context.Background(), uuid.New(), 0)
		assert.ErrorIs(t, err, inventory.ErrInvalidInput)
	})
}

func TestService_Available(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := inventory.NewMockRepository(ctrl)
	repo.EXPECT().
		ListItems(gomock.Any()).
		Return([]*inventory.Item{{ID: uuid.New(), Name: "White paint 5L", Stock: 7}}, nil).
		Times(2)

	svc := inventory.NewService(repo, nil)

	stock, ok, err := svc.Available(context.Background(), "paint")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, stock)

	_, ok, err = svc.Available(context.Background(), "gravel")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_LowStock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := inventory.NewMockRepository(ctrl)
	repo.EXPECT().
		ListItems(gomock.Any()).
		Return([]*inventory.Item{
			{Name: "Paint", Stock: 2, MinStock: 3},
			{Name: "Rope", Stock: 3, MinStock: 3},
			{Name: "Tape", Stock: 9, MinStock: 3},
		}, nil)

	svc := inventory.NewService(repo, nil)
	low, err := svc.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Paint", low[0].Name)
	assert.Equal(t, "Rope", low[1].Name)
}

func TestMatchers(t *testing.T) {
	contains := inventory.ContainsMatcher{}
	assert.True(t, contains.Match("paint", "White PAINT 5L"))
	assert.False(t, contains.Match("paint", "Rope"))

	exact := inventory.ExactMatcher{}
	assert.True(t, exact.Match("Paint", "paint"))
	assert.False(t, exact.Match("paint", "White paint 5L"))
}
