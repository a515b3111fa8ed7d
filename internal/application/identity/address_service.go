package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plantstore/backend/internal/domain/identity"
	"github.com/plantstore/backend/internal/domain/shared"
)

// AddressService manages a user's address book
type AddressService struct {
	addressRepo identity.AddressRepository
	logger      *zap.Logger
}

// NewAddressService creates a new address service
func NewAddressService(addressRepo identity.AddressRepository, logger *zap.Logger) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		logger:      logger,
	}
}

// List returns all addresses of a user, default first
func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list addresses", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list addresses")
	}
	return ToAddressResponses(addresses), nil
}

// Get returns a single address. Owners see their own; staff can read any.
func (s *AddressService) Get(ctx context.Context, requesterID uuid.UUID, isStaff bool, addressID uuid.UUID) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Address not found")
	}
	if !isStaff && address.UserID != requesterID {
		return nil, shared.NewDomainError("NOT_FOUND", "Address not found")
	}
	resp := ToAddressResponse(address)
	return &resp, nil
}

// Create adds an address. The first address of a user always becomes the
// default.
func (s *AddressService) Create(ctx context.Context, userID uuid.UUID, req AddressRequest) (*AddressResponse, error) {
	address, err := identity.NewAddress(userID, req.ReceiverName, req.Province, req.City, req.Street, req.PostalCode, req.Phone)
	if err != nil {
		return nil, err
	}

	existing, err := s.addressRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load addresses", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create address")
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		s.logger.Error("Failed to save address", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create address")
	}

	if req.IsDefault || len(existing) == 0 {
		if err := s.addressRepo.SetDefault(ctx, userID, address.ID); err != nil {
			s.logger.Error("Failed to set default address", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create address")
		}
		address.IsDefault = true
	}

	resp := ToAddressResponse(address)
	return &resp, nil
}

// Update modifies an address owned by the user
func (s *AddressService) Update(ctx context.Context, userID, addressID uuid.UUID, req AddressRequest) (*AddressResponse, error) {
	address, err := s.ownedAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	if err := address.Update(req.ReceiverName, req.Province, req.City, req.Street, req.PostalCode, req.Phone); err != nil {
		return nil, err
	}

	if err := s.addressRepo.Save(ctx, address); err != nil {
		s.logger.Error("Failed to save address", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update address")
	}

	if req.IsDefault && !address.IsDefault {
		if err := s.addressRepo.SetDefault(ctx, userID, address.ID); err != nil {
			s.logger.Error("Failed to set default address", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update address")
		}
		address.IsDefault = true
	}

	resp := ToAddressResponse(address)
	return &resp, nil
}

// SetDefault makes an address the user's only default
func (s *AddressService) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	if _, err := s.ownedAddress(ctx, userID, addressID); err != nil {
		return err
	}

	if err := s.addressRepo.SetDefault(ctx, userID, addressID); err != nil {
		s.logger.Error("Failed to set default address", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to set default address")
	}
	return nil
}

// Delete removes an address owned by the user
func (s *AddressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	if _, err := s.ownedAddress(ctx, userID, addressID); err != nil {
		return err
	}

	if err := s.addressRepo.Delete(ctx, addressID); err != nil {
		s.logger.Error("Failed to delete address", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete address")
	}
	return nil
}

func (s *AddressService) ownedAddress(ctx context.Context, userID, addressID uuid.UUID) (*identity.Address, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Address not found")
	}
	if address.UserID != userID {
		return nil, shared.NewDomainError("NOT_FOUND", "Address not found")
	}
	return address, nil
}
