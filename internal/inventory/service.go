package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=inventory
type Repository interface {
	CreateItem(ctx context.Context, item *Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	UpdateItem(ctx context.Context, item *Item) error
	ListItems(ctx context.Context) ([]*Item, error)
}

type Service struct {
	repo    Repository
	matcher Matcher
}

func NewService(repo Repository, matcher Matcher) *Service {
	if matcher == nil {
		matcher = ContainsMatcher{}
	}

	return &Service{repo: repo, matcher: matcher}
}

type CreateParams struct {
	Name        string
	Category    string
	Stock       int
	Unit        string
	CostPerUnit int64
	MinStock    int
}

func (s *Service) Add(ctx context.Context, params CreateParams) (*Item, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if params.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrInvalidInput)
	}

	item := &Item{
		Name:        strings.TrimSpace(params.Name),
		Category:    params.Category,
		Stock:       params.Stock,
		Unit:        params.Unit,
		CostPerUnit: params.CostPerUnit,
		MinStock:    params.MinStock,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Item, error) {
	return s.repo.ListItems(ctx)
}

// LowStock returns the items at or below their reorder threshold.
func (s *Service) LowStock(ctx context.Context) ([]*Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	var low []*Item

	for _, item := range items {
		if item.LowStock() {
			low = append(low, item)
		}
	}

	return low, nil
}

// Consume deducts qty from the first stocked item the matcher accepts for
/// materialName and returns its new stock level. Stock is floored at zero:
// consumption is advisory, never a hard allocation gate. When no item
// matches, ok is false and nothing changes — the material still appears on
// the job or event as a cost line.
func (s *Service) Consume(ctx context.Context, materialName string, qty int) (newStock int, ok bool, err error) {
	if qty <= 0 {
		return 0, false, nil
	}

	item, err := s.find(ctx, materialName)
	if err != nil || item == nil {
		return 0, false, err
	}

	item.Stock -= qty
	if item.Stock < 0 {
		item.Stock = 0
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return 0, false, err
	}

	return item.Stock, true, nil
}

// Restore adds qty back to the matched item's stock, used when a material
// selection shrinks and restoration is enabled.
func (s *Service) Restore(ctx context.Context, materialName string, qty int) (newStock int, ok bool, err error) {
	if qty <= 0 {
		return 0, false, nil
	}

	item, err := s.find(ctx, materialName)
	if err != nil || item == nil {
		return 0, false, err
	}

	item.Stock += qty

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return 0, false, err
	}

	return item.Stock, true, nil
}

// Adjust applies a manual +/- stock correction, clamped at zero.
func (s *Service) Adjust(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return 0, err
	}

	item.Stock += delta
	if item.Stock < 0 {
		item.Stock = 0
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return 0, err
	}

	return item.Stock, nil
}

// Restock adds a received quantity to an item, distinct from Adjust in that
// it only ever increases stock.
func (s *Service) Restock(ctx context.Context, id uuid.UUID, qty int) (int, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("%w: restock quantity must be positive", ErrInvalidInput)
	}

	return s.Adjust(ctx, id, qty)
}

// Available reports the stock level behind a material name so selection UIs
// can refuse picking more than what is on hand. ok is false when the name
// matches no stocked item; such names are free-form and never blocked.
func (s *Service) Available(ctx context.Context, materialName string) (stock int, ok bool, err error) {
	item, err := s.find(ctx, materialName)
	if err != nil || item == nil {
		return 0, false, err
	}

	return item.Stock, true, nil
}

func (s *Service) find(ctx context.Context, materialName string) (*Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if s.matcher.Match(materialName, item.Name) {
			return item, nil
		}
	}

	return nil, nil
}
