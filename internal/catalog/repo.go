package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/demo-018/indiveg-hub/pkg/db"
	"github.com/demo-018/indiveg-hub/pkg/db/models"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
)

type Repo struct {
	client *db.Client
}

func NewRepo(client *db.Client) (*Repo, error) {
	if client == nil {
		return nil, errors.New("catalog repo: db client is required")
	}
	return &Repo{client: client}, nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.client.WithContext(ctx).
		Order("position asc").
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *Repo) FindCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := r.client.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.New(apperrors.CodeNotFound, "category not found")
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &category, nil
}

// ListProducts returns the whole catalog in display order. The catalog
// is demo sized, so filtering happens in the service over this list.
func (r *Repo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.client.WithContext(ctx).
		Order("position asc").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *Repo) FindProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.client.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.New(apperrors.CodeNotFound, "product not found")
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &product, nil
}

func (r *Repo) ReviewsByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.client.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (r *Repo) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.client.WithContext(ctx).
		Model(&models.Product{}).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}
