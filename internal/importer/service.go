package importer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/fieldbook/internal/importer/supplier"
	"github.com/MrJamesThe3rd/fieldbook/internal/inventory"
)

type Service struct {
	supplierParser Parser
	inventory      *inventory.Service
}

func NewService(inv *inventory.Service) *Service {
	return &Service{
		supplierParser: supplier.New(),
		inventory:      inv,
	}
}

type Result struct {
	Created   int
	Restocked int
}

// Import parses a stock list and applies it: rows naming an existing item
// (exact name, case-insensitive) add to its stock, the rest become new items.
func (s *Service) Import(ctx context.Context, format Format, r io.Reader) (*Result, error) {
	var parser Parser

	switch format {
	case FormatSupplier:
		parser = s.supplierParser
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	params, err := parser.Parse(r)
	if err != nil {
		return nil, err
	}

	existing, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*inventory.Item, len(existing))
	for _, item := range existing {
		byName[strings.ToLower(item.Name)] = item
	}

	var result Result

	for _, p := range params {
		if item, ok := byName[strings.ToLower(p.Name)]; ok {
			if p.Stock > 0 {
				if _, err := s.inventory.Restock(ctx, item.ID, p.Stock); err != nil {
					return nil, fmt.Errorf("restocking %q: %w", p.Name, err)
				}
			}

			result.Restocked++

			continue
		}

		created, err := s.inventory.Add(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("adding %q: %w", p.Name, err)
		}

		byName[strings.ToLower(created.Name)] = created
		result.Created++
	}

	return &result, nil
}
