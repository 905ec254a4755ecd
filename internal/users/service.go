package users

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/demo-018/indiveg-hub/pkg/db/models"
	"github.com/demo-018/indiveg-hub/pkg/types"
)

type AddAddressInput struct {
	Label     string `json:"label" validate:"max=64"`
	Street    string `json:"street" validate:"required,max=256"`
	Area      string `json:"area" validate:"max=128"`
	City      string `json:"city" validate:"required,max=128"`
	State     string `json:"state" validate:"required,max=128"`
	Pincode   string `json:"pincode" validate:"required,len=6,numeric"`
	IsDefault bool   `json:"isDefault"`
}

type Service struct {
	repo *Repo
}

func NewService(repo *Repo) (*Service, error) {
	if repo == nil {
		return nil, errors.New("users service: repo is required")
	}
	return &Service{repo: repo}, nil
}

func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *Service) Addresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	return s.repo.ListAddresses(ctx, userID)
}

func (s *Service) AddAddress(ctx context.Context, userID uuid.UUID, input AddAddressInput) (*models.Address, error) {
	existing, err := s.repo.ListAddresses(ctx, userID)
	if err != nil {
		return nil, err
	}

	address := &models.Address{
		ID:      uuid.New(),
		UserID:  userID,
		Label:   input.Label,
		Street:  input.Street,
		Area:    input.Area,
		City:    input.City,
		State:   input.State,
		Pincode: input.Pincode,
		// The first address always becomes the default.
		IsDefault: input.IsDefault || len(existing) == 0,
	}
	if err := s.repo.CreateAddress(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// UpdateAddress rewrites an address in place. The default flag is not
// touched here; SetDefaultAddress owns that invariant.
func (s *Service) UpdateAddress(ctx context.Context, userID, addressID uuid.UUID, input AddAddressInput) (*models.Address, error) {
	address, err := s.repo.FindAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	address.Label = input.Label
	address.Street = input.Street
	address.Area = input.Area
	address.City = input.City
	address.State = input.State
	address.Pincode = input.Pincode
	if err := s.repo.UpdateAddress(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *Service) RemoveAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	return s.repo.DeleteAddress(ctx, userID, addressID)
}

func (s *Service) SetDefaultAddress(ctx context.Context, userID, addressID uuid.UUID) error {
	return s.repo.SetDefaultAddress(ctx, userID, addressID)
}

// DefaultAddress resolves the delivery address used when checkout does
// not name one explicitly.
func (s *Service) DefaultAddress(ctx context.Context, userID uuid.UUID) (*types.AddressSnapshot, error) {
	addresses, err := s.repo.ListAddresses(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, a := range addresses {
		if a.IsDefault {
			snapshot := snapshotOf(a)
			return &snapshot, nil
		}
	}
	if len(addresses) > 0 {
		snapshot := snapshotOf(addresses[0])
		return &snapshot, nil
	}
	return nil, nil
}

// SnapshotByID freezes one of the user's addresses for embedding in
// an order.
func (s *Service) SnapshotByID(ctx context.Context, userID, addressID uuid.UUID) (*types.AddressSnapshot, error) {
	address, err := s.repo.FindAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}
	snapshot := snapshotOf(*address)
	return &snapshot, nil
}

func snapshotOf(a models.Address) types.AddressSnapshot {
	return types.AddressSnapshot{
		Label:   a.Label,
		Street:  a.Street,
		Area:    a.Area,
		City:    a.City,
		State:   a.State,
		Pincode: a.Pincode,
	}
}
