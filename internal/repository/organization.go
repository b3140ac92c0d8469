// internal/repository/organization.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/relivo/orgportal/internal/domain"
	"github.com/relivo/orgportal/internal/model"
	"gorm.io/gorm"
)

type OrganizationRepositoryIface interface {
	Create(ctx context.Context, org *model.Organization) error
	CreateWithUser(ctx context.Context, org *model.Organization, user *model.User) error
	FindByContactEmail(ctx context.Context, email string) (*model.Organization, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error)
	Update(ctx context.Context, org *model.Organization) error
	UpdateWithUser(ctx context.Context, org *model.Organization, user *model.User) error
}

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) Create(ctx context.Context, org *model.Organization) error {
	if err := r.db.WithContext(ctx).Create(org).Error; err != nil {
		return fmt.Errorf("creating organization: %w", err)
	}
	return nil
}

// CreateWithUser persists a new user and its organization in one
// transaction. The organization's UserID is stamped from the created
// user.
func (r *OrganizationRepository) CreateWithUser(ctx context.Context, org *model.Organization, user *model.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if user.ID == uuid.Nil {
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("creating user: %w", err)
			}
		} else {
			if err := tx.Save(user).Error; err != nil {
				return fmt.Errorf("updating user: %w", err)
			}
		}

		org.UserID = user.ID
		if err := tx.Create(org).Error; err != nil {
			return fmt.Errorf("creating organization: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

func (r *OrganizationRepository) FindByContactEmail(ctx context.Context, email string) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).Where("contact_email = ?", email).First(&org).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("finding organization: %w", err)
	}
	return &org, nil
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("finding organization: %w", err)
	}
	return &org, nil
}

func (r *OrganizationRepository) Update(ctx context.Context, org *model.Organization) error {
	if err := r.db.WithContext(ctx).Save(org).Error; err != nil {
		return fmt.Errorf("updating organization: %w", err)
	}
	return nil
}

// UpdateWithUser saves the organization and its linked user in one
// transaction. Used wherever credentials are dual-written (verification,
// password change, reset, registration retry). A nil user saves only
// the organization.
func (r *OrganizationRepository) UpdateWithUser(ctx context.Context, org *model.Organization, user *model.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if user != nil {
			if user.ID == uuid.Nil {
				if err := tx.Create(user).Error; err != nil {
					return fmt.Errorf("creating user: %w", err)
				}
			} else if err := tx.Save(user).Error; err != nil {
				return fmt.Errorf("updating user: %w", err)
			}
			org.UserID = user.ID
		}

		if err := tx.Save(org).Error; err != nil {
			return fmt.Errorf("updating organization: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}
