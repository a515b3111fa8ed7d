package identity

import (
	"regexp"
	"strings"

	"github.com/plantstore/backend/internal/domain/shared"
)

// IdentifierKind distinguishes the two supported login identifiers
type IdentifierKind string

const (
	IdentifierEmail IdentifierKind = "email"
	IdentifierPhone IdentifierKind = "phone"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	// Iranian mobile numbers, either local (09...) or international (+989...)
	phoneRegex = regexp.MustCompile(`^(\+98|0)9\d{9}$`)
)

// NormalizeIdentifier classifies a raw login identifier and returns its
// canonical form: lowercased for emails, +989XXXXXXXXX for phones.
func NormalizeIdentifier(raw string) (IdentifierKind, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", shared.NewDomainError("INVALID_IDENTIFIER", "Email or phone number is required")
	}

	if strings.Contains(raw, "@") {
		email, err := NormalizeEmail(raw)
		if err != nil {
			return "", "", err
		}
		return IdentifierEmail, email, nil
	}

	phone, err := NormalizePhone(raw)
	if err != nil {
		return "", "", err
	}
	return IdentifierPhone, phone, nil
}

// NormalizeEmail validates and lowercases an email address
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(email) > 200 {
		return "", shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return "", shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return email, nil
}

// NormalizePhone validates an Iranian mobile number and converts it to
// the international +989XXXXXXXXX form
func NormalizePhone(phone string) (string, error) {
	phone = strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	if !phoneRegex.MatchString(phone) {
		return "", shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	if strings.HasPrefix(phone, "0") {
		phone = "+98" + phone[1:]
	}
	return phone, nil
}
