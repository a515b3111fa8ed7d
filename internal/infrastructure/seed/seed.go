// Package seed loads fixture data into the database. Loading is
// idempotent: records already present by natural key are skipped, so
// the seeder can run on every deploy.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/plantstore/backend/internal/domain/catalog"
	"github.com/plantstore/backend/internal/domain/identity"
)

// Seeder loads fixture files into the store schema.
type Seeder struct {
	db          *gorm.DB
	fixturesDir string
	logger      *zap.Logger
}

// NewSeeder creates a Seeder reading JSON fixtures from fixturesDir.
func NewSeeder(db *gorm.DB, fixturesDir string, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:          db,
		fixturesDir: fixturesDir,
		logger:      logger,
	}
}

type categoryFixture struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type productFixture struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Inventory   int    `json:"inventory"`
	Category    string `json:"category"`
	IsActive    *bool  `json:"is_active"`
}

type userFixture struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Nickname   string `json:"nickname"`
	IsStaff    bool   `json:"is_staff"`
}

// Run loads all known fixture files. Missing files are skipped so a
// partial fixtures directory is not an error.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedCategories(ctx); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if err := s.seedUsers(ctx); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := s.seedProducts(ctx); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	return nil
}

func (s *Seeder) seedCategories(ctx context.Context) error {
	var fixtures []categoryFixture
	ok, err := s.loadFixture("categories.json", &fixtures)
	if err != nil || !ok {
		return err
	}

	created := 0
	for _, f := range fixtures {
		var count int64
		if err := s.db.WithContext(ctx).Model(&catalog.Category{}).
			Where("name = ?", f.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		category, err := catalog.NewCategory(f.Name, f.Description)
		if err != nil {
			return fmt.Errorf("category %q: %w", f.Name, err)
		}
		if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
			return err
		}
		created++
	}

	s.logger.Info("Seeded categories", zap.Int("created", created), zap.Int("total", len(fixtures)))
	return nil
}

func (s *Seeder) seedProducts(ctx context.Context) error {
	var fixtures []productFixture
	ok, err := s.loadFixture("products.json", &fixtures)
	if err != nil || !ok {
		return err
	}

	created := 0
	for _, f := range fixtures {
		var count int64
		if err := s.db.WithContext(ctx).Model(&catalog.Product{}).
			Where("slug = ?", f.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		price, err := decimal.NewFromString(f.Price)
		if err != nil {
			return fmt.Errorf("product %q: %w", f.Slug, err)
		}

		var categoryID *uuid.UUID
		if f.Category != "" {
			var category catalog.Category
			err := s.db.WithContext(ctx).Where("name = ?", f.Category).First(&category).Error
			switch {
			case err == nil:
				categoryID = &category.ID
			case errors.Is(err, gorm.ErrRecordNotFound):
				s.logger.Warn("Fixture references unknown category",
					zap.String("product", f.Slug),
					zap.String("category", f.Category))
			default:
				return err
			}
		}

		product, err := catalog.NewProduct(f.Name, f.Slug, f.Description, price, f.Inventory, categoryID)
		if err != nil {
			return fmt.Errorf("product %q: %w", f.Slug, err)
		}
		if f.IsActive != nil && !*f.IsActive {
			product.Deactivate()
		}
		if err := s.db.WithContext(ctx).Omit("Category", "Images").Create(product).Error; err != nil {
			return err
		}
		created++
	}

	s.logger.Info("Seeded products", zap.Int("created", created), zap.Int("total", len(fixtures)))
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	var fixtures []userFixture
	ok, err := s.loadFixture("users.json", &fixtures)
	if err != nil || !ok {
		return err
	}

	created := 0
	for _, f := range fixtures {
		kind, normalized, err := identity.NormalizeIdentifier(f.Identifier)
		if err != nil {
			return fmt.Errorf("user %q: %w", f.Identifier, err)
		}

		column := "email"
		if kind == identity.IdentifierPhone {
			column = "phone"
		}
		var count int64
		if err := s.db.WithContext(ctx).Model(&identity.User{}).
			Where(column+" = ?", normalized).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		user, err := identity.NewUser(f.Identifier, f.Password)
		if err != nil {
			return fmt.Errorf("user %q: %w", f.Identifier, err)
		}
		user.ClearDomainEvents()
		user.Nickname = f.Nickname
		user.IsStaff = f.IsStaff
		// Seeded accounts are treated as verified so they can log in
		// without going through the OTP flow.
		switch kind {
		case identity.IdentifierEmail:
			user.EmailVerified = true
		case identity.IdentifierPhone:
			user.PhoneVerified = true
		}
		if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
			return err
		}
		created++
	}

	s.logger.Info("Seeded users", zap.Int("created", created), zap.Int("total", len(fixtures)))
	return nil
}

// loadFixture reads one fixture file. The boolean reports whether the
// file exists.
func (s *Seeder) loadFixture(name string, out interface{}) (bool, error) {
	path := filepath.Join(s.fixturesDir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("Fixture file absent, skipping", zap.String("file", name))
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("parse %s: %w", name, err)
	}
	return true, nil
}
