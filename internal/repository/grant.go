// internal/repository/grant.go
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

// GrantCounts aggregates a tenant's listings for the dashboard.
type GrantCounts struct {
	Total  int64
	Active int64
	Trash  int64
}

type GrantRepositoryIface interface {
	Create(ctx context.Context, grant *model.Grant) error
	FindOwned(ctx context.Context, id, orgID uuid.UUID) (*model.Grant, error)
	FindOwnedWithStatus(ctx context.Context, id, orgID uuid.UUID, status model.GrantStatus) (*model.Grant, error)
	Update(ctx context.Context, grant *model.Grant) error
	Delete(ctx context.Context, grant *model.Grant) error
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Grant, error)
	CountByOrganization(ctx context.Context, orgID uuid.UUID) (GrantCounts, error)
}

type GrantRepository struct {
	db *gorm.DB
}

func NewGrantRepository(db *gorm.DB) *GrantRepository {
	return &GrantRepository{db: db}
}

func (r *GrantRepository) Create(ctx context.Context, grant *model.Grant) error {
	if err := r.db.WithContext(ctx).Create(grant).Error; err != nil {
		return fmt.Errorf("creating grant: %w", err)
	}
	return nil
}

// FindOwned looks a grant up scoped to the owning organization.
// Cross-tenant ids surface as ErrGrantNotFound so existence never
// leaks.
func (r *GrantRepository) FindOwned(ctx context.Context, id, orgID uuid.UUID) (*model.Grant, error) {
	var grant model.Grant
	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", id, orgID).
		First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGrantNotFound
		}
		return nil, fmt.Errorf("finding grant: %w", err)
	}
	return &grant, nil
}

// FindOwnedWithStatus additionally narrows by lifecycle status; a grant
// in any other state reports not found.
func (r *GrantRepository) FindOwnedWithStatus(ctx context.Context, id, orgID uuid.UUID, status model.GrantStatus) (*model.Grant, error) {
	var grant model.Grant
	err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ? AND status = ?", id, orgID, status).
		First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGrantNotFound
		}
		return nil, fmt.Errorf("finding grant: %w", err)
	}
	return &grant, nil
}

func (r *GrantRepository) Update(ctx context.Context, grant *model.Grant) error {
	if err := r.db.WithContext(ctx).Save(grant).Error; err != nil {
		return fmt.Errorf("updating grant: %w", err)
	}
	return nil
}

func (r *GrantRepository) Delete(ctx context.Context, grant *model.Grant) error {
	if err := r.db.WithContext(ctx).Delete(grant).Error; err != nil {
		return fmt.Errorf("deleting grant: %w", err)
	}
	return nil
}

func (r *GrantRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*model.Grant, error) {
	var grants []*model.Grant
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Find(&grants).Error
	if err != nil {
		return nil, fmt.Errorf("listing grants: %w", err)
	}
	return grants, nil
}

func (r *GrantRepository) CountByOrganization(ctx context.Context, orgID uuid.UUID) (GrantCounts, error) {
	var counts GrantCounts

	base := r.db.WithContext(ctx).Model(&model.Grant{}).Where("organization_id = ?", orgID)

	if err := base.Session(&gorm.Session{}).Count(&counts.Total).Error; err != nil {
		return counts, fmt.Errorf("counting grants: %w", err)
	}

	if err := base.Session(&gorm.Session{}).
		Where("status = ?", model.GrantStatusDeletionPending).
		Count(&counts.Trash).Error; err != nil {
		return counts, fmt.Errorf("counting trashed grants: %w", err)
	}

	if err := base.Session(&gorm.Session{}).
		Where("is_active = ? AND status <> ?", true, model.GrantStatusDeletionPending).
		Count(&counts.Active).Error; err != nil {
		return counts, fmt.Errorf("counting active grants: %w", err)
	}

	return counts, nil
}
