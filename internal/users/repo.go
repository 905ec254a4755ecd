package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/demo-018/indiveg-hub/pkg/db"
	"github.com/demo-018/indiveg-hub/pkg/db/models"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
)

type Repo struct {
	client *db.Client
}

func NewRepo(client *db.Client) (*Repo, error) {
	if client == nil {
		return nil, errors.New("users repo: db client is required")
	}
	return &Repo{client: client}, nil
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.client.WithContext(ctx).
		Preload("Addresses").
		First(&user, "id = ?", id).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *Repo) FindByMobile(ctx context.Context, mobile string) (*models.User, error) {
	var user models.User
	err := r.client.WithContext(ctx).
		Preload("Addresses").
		First(&user, "mobile = ?", mobile).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
		}
		return nil, fmt.Errorf("find user by mobile: %w", err)
	}
	return &user, nil
}

func (r *Repo) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.client.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

func (r *Repo) FindAddress(ctx context.Context, userID, addressID uuid.UUID) (*models.Address, error) {
	var address models.Address
	err := r.client.WithContext(ctx).
		First(&address, "id = ? AND user_id = ?", addressID, userID).Error
	if err != nil {
		if db.IsNotFound(err) {
			return nil, apperrors.New(apperrors.CodeNotFound, "address not found")
		}
		return nil, fmt.Errorf("find address: %w", err)
	}
	return &address, nil
}

func (r *Repo) CreateAddress(ctx context.Context, address *models.Address) error {
	return r.client.Transaction(ctx, func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := clearDefault(tx, address.UserID); err != nil {
				return err
			}
		}
		if err := tx.Create(address).Error; err != nil {
			return fmt.Errorf("create address: %w", err)
		}
		return nil
	})
}

func (r *Repo) UpdateAddress(ctx context.Context, address *models.Address) error {
	result := r.client.WithContext(ctx).
		Model(&models.Address{}).
		Where("id = ? AND user_id = ?", address.ID, address.UserID).
		Updates(map[string]any{
			"label":   address.Label,
			"street":  address.Street,
			"area":    address.Area,
			"city":    address.City,
			"state":   address.State,
			"pincode": address.Pincode,
		})
	if result.Error != nil {
		return fmt.Errorf("update address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeNotFound, "address not found")
	}
	return nil
}

func (r *Repo) DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	result := r.client.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&models.Address{})
	if result.Error != nil {
		return fmt.Errorf("delete address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeNotFound, "address not found")
	}
	return nil
}

// SetDefaultAddress flips the default flag atomically so a user never
// ends up with two defaults.
func (r *Repo) SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	return r.client.Transaction(ctx, func(tx *gorm.DB) error {
		var address models.Address
		err := tx.First(&address, "id = ? AND user_id = ?", addressID, userID).Error
		if err != nil {
			if db.IsNotFound(err) {
				return apperrors.New(apperrors.CodeNotFound, "address not found")
			}
			return fmt.Errorf("find address: %w", err)
		}
		if err := clearDefault(tx, userID); err != nil {
			return err
		}
		if err := tx.Model(&models.Address{}).
			Where("id = ?", addressID).
			Update("is_default", true).Error; err != nil {
			return fmt.Errorf("set default address: %w", err)
		}
		return nil
	})
}

func clearDefault(tx *gorm.DB, userID uuid.UUID) error {
	if err := tx.Model(&models.Address{}).
		Where("user_id = ? AND is_default", userID).
		Update("is_default", false).Error; err != nil {
		return fmt.Errorf("clear default address: %w", err)
	}
	return nil
}
