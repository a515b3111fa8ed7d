package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/plantstore/backend/internal/domain/shared"
)

// Address is a shipping address owned by a user. A user has at most
// one default address; the repository enforces this transactionally.
type Address struct {
	shared.BaseAggregateRoot
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiverName string    `gorm:"type:varchar(100);not null"`
	Province     string    `gorm:"type:varchar(100);not null"`
	City         string    `gorm:"type:varchar(100);not null"`
	Street       string    `gorm:"type:text;not null"`
	PostalCode   string    `gorm:"type:varchar(20);not null"`
	Phone        string    `gorm:"type:varchar(20);not null"`
	IsDefault    bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

// NewAddress creates a new address for a user
func NewAddress(userID uuid.UUID, receiverName, province, city, street, postalCode, phone string) (*Address, error) {
	if strings.TrimSpace(receiverName) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Receiver name is required")
	}
	if strings.TrimSpace(province) == "" || strings.TrimSpace(city) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Province and city are required")
	}
	if strings.TrimSpace(street) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Street is required")
	}
	if strings.TrimSpace(postalCode) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Postal code is required")
	}

	normalizedPhone, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	return &Address{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		ReceiverName:      strings.TrimSpace(receiverName),
		Province:          strings.TrimSpace(province),
		City:              strings.TrimSpace(city),
		Street:            strings.TrimSpace(street),
		PostalCode:        strings.TrimSpace(postalCode),
		Phone:             normalizedPhone,
	}, nil
}

// Update replaces the address fields
func (a *Address) Update(receiverName, province, city, street, postalCode, phone string) error {
	updated, err := NewAddress(a.UserID, receiverName, province, city, street, postalCode, phone)
	if err != nil {
		return err
	}

	a.ReceiverName = updated.ReceiverName
	a.Province = updated.Province
	a.City = updated.City
	a.Street = updated.Street
	a.PostalCode = updated.PostalCode
	a.Phone = updated.Phone
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}
