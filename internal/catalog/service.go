package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/demo-018/indiveg-hub/pkg/db/models"
	"github.com/demo-018/indiveg-hub/pkg/enums"
)

const (
	featuredLimit       = 6
	relatedDefaultLimit = 4
)

var (
	priceBandLow  = decimal.NewFromInt(50)
	priceBandHigh = decimal.NewFromInt(100)
)

type ListParams struct {
	Search     string
	CategoryID string
	PriceBand  enums.PriceBand
	SortBy     enums.SortBy
}

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) (*Service, error) {
	if repo == nil {
		return nil, errors.New("catalog service: repo is required")
	}
	return &Service{repo: repo}, nil
}

func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.repo.FindCategory(ctx, id)
}

// List filters and sorts the catalog. Search matches name, Hindi name
// and tags case-insensitively; price bands bucket by the estimated
// range, not a single price point.
func (s *Service) List(ctx context.Context, params ListParams) ([]models.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Product, 0, len(products))
	search := strings.ToLower(strings.TrimSpace(params.Search))
	for _, p := range products {
		if params.CategoryID != "" && p.CategoryID != params.CategoryID {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if !matchesPriceBand(p, params.PriceBand) {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, params.SortBy)
	return filtered, nil
}

func matchesSearch(p models.Product, search string) bool {
	if strings.Contains(strings.ToLower(p.Name), search) {
		return true
	}
	if strings.Contains(strings.ToLower(p.HindiName), search) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func matchesPriceBand(p models.Product, band enums.PriceBand) bool {
	switch band {
	case enums.PriceBandUnder50:
		return p.MaxPrice.LessThan(priceBandLow)
	case enums.PriceBand50To100:
		return p.MinPrice.GreaterThanOrEqual(priceBandLow) && p.MaxPrice.LessThanOrEqual(priceBandHigh)
	case enums.PriceBandAbove100:
		return p.MinPrice.GreaterThan(priceBandHigh)
	default:
		return true
	}
}

func sortProducts(products []models.Product, by enums.SortBy) {
	switch by {
	case enums.SortByPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].MinPrice.LessThan(products[j].MinPrice)
		})
	case enums.SortByPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].MaxPrice.GreaterThan(products[j].MaxPrice)
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	}
}

func (s *Service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.FindProduct(ctx, id)
}

// GetProductByName resolves URL-style names: hyphens become spaces and
// the match is case-insensitive against the English or Hindi name.
func (s *Service) GetProductByName(ctx context.Context, name string) (*models.Product, error) {
	formatted := strings.ToLower(strings.ReplaceAll(name, "-", " "))

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if strings.ToLower(products[i].Name) == formatted ||
			strings.ToLower(products[i].HindiName) == formatted {
			return &products[i], nil
		}
	}
	// Fall back to slug lookup so /products/green-chili still resolves.
	return s.repo.FindProduct(ctx, strings.ToLower(name))
}

// Featured returns the first products in display order for the home page.
func (s *Service) Featured(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) > featuredLimit {
		products = products[:featuredLimit]
	}
	return products, nil
}

// Related returns other products from the same category.
func (s *Service) Related(ctx context.Context, productID string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = relatedDefaultLimit
	}

	product, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	related := make([]models.Product, 0, limit)
	for _, p := range products {
		if p.ID == productID || p.CategoryID != product.CategoryID {
			continue
		}
		related = append(related, p)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}

func (s *Service) Reviews(ctx context.Context, productID string) ([]models.Review, error) {
	if _, err := s.repo.FindProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ReviewsByProduct(ctx, productID)
}
