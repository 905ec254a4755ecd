package cart

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/demo-018/indiveg-hub/pkg/db/models"
	"github.com/demo-018/indiveg-hub/pkg/enums"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
	"github.com/demo-018/indiveg-hub/pkg/types"
)

// Line is a cart entry joined with its product and the estimated cost
// of the line at today's quoted range.
type Line struct {
	Product   models.Product  `json:"product"`
	Quantity  decimal.Decimal `json:"quantity"`
	Estimated types.PriceRange `json:"estimatedPrice"`
}

type Cart struct {
	Lines      []Line           `json:"items"`
	TotalItems decimal.Decimal  `json:"totalItems"`
	Estimated  types.PriceRange `json:"estimatedTotal"`
}

type productLoader interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

type snapshotStore interface {
	Load(ctx context.Context, userID string) ([]Entry, error)
	Save(ctx context.Context, userID string, entries []Entry) error
	Clear(ctx context.Context, userID string) error
}

type Service struct {
	store    snapshotStore
	products productLoader
	now      func() time.Time
}

func NewService(store snapshotStore, products productLoader) (*Service, error) {
	if store == nil || products == nil {
		return nil, errors.New("cart service: store and product loader are required")
	}
	return &Service{
		store:    store,
		products: products,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Get materializes the cart view. Entries whose product has vanished
// from the catalog are silently dropped.
func (s *Service) Get(ctx context.Context, userID string) (*Cart, error) {
	entries, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.materialize(ctx, entries)
}

// Add puts a product in the cart, summing quantities when the product
// is already there so the cart keeps one line per product.
func (s *Service) Add(ctx context.Context, userID, productID string, quantity decimal.Decimal) (*Cart, error) {
	if quantity.Sign() <= 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock {
		return nil, apperrors.New(apperrors.CodeConflict, "product is out of stock")
	}
	if err := checkQuantity(product, quantity); err != nil {
		return nil, err
	}

	entries, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range entries {
		if entries[i].ProductID == productID {
			entries[i].Quantity = entries[i].Quantity.Add(quantity)
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, Entry{ProductID: productID, Quantity: quantity, AddedAt: s.now()})
	}

	if err := s.store.Save(ctx, userID, entries); err != nil {
		return nil, err
	}
	return s.materialize(ctx, entries)
}

// UpdateQuantity replaces a line's quantity. Zero or negative removes
// the line.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, quantity decimal.Decimal) (*Cart, error) {
	if quantity.Sign() <= 0 {
		return s.Remove(ctx, userID, productID)
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := checkQuantity(product, quantity); err != nil {
		return nil, err
	}

	entries, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range entries {
		if entries[i].ProductID == productID {
			entries[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.New(apperrors.CodeNotFound, "product not in cart")
	}

	if err := s.store.Save(ctx, userID, entries); err != nil {
		return nil, err
	}
	return s.materialize(ctx, entries)
}

// Remove drops a line. Removing a product that is not in the cart is
// a no-op.
func (s *Service) Remove(ctx context.Context, userID, productID string) (*Cart, error) {
	entries, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}

	if err := s.store.Save(ctx, userID, kept); err != nil {
		return nil, err
	}
	return s.materialize(ctx, kept)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.store.Clear(ctx, userID)
}

// checkQuantity rejects fractional counts for products sold by the
// piece. Weight products accept any positive quantity.
func checkQuantity(product *models.Product, quantity decimal.Decimal) error {
	if product.QuantityType == enums.QuantityPieces && !quantity.IsInteger() {
		return apperrors.New(apperrors.CodeValidation, "quantity must be a whole number for this product")
	}
	return nil
}

func (s *Service) materialize(ctx context.Context, entries []Entry) (*Cart, error) {
	cart := &Cart{Lines: []Line{}}
	for _, entry := range entries {
		product, err := s.products.GetProduct(ctx, entry.ProductID)
		if err != nil {
			if typed := apperrors.As(err); typed != nil && typed.Code() == apperrors.CodeNotFound {
				continue
			}
			return nil, err
		}

		estimated := types.PriceRange{Min: product.MinPrice, Max: product.MaxPrice}.Times(entry.Quantity)
		cart.Lines = append(cart.Lines, Line{
			Product:   *product,
			Quantity:  entry.Quantity,
			Estimated: estimated,
		})
		cart.TotalItems = cart.TotalItems.Add(entry.Quantity)
		cart.Estimated = cart.Estimated.Add(estimated)
	}
	return cart, nil
}
