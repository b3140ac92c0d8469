// internal/service/grant.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/relivo/orgportal/internal/domain"
	"github.com/relivo/orgportal/internal/model"
	"github.com/relivo/orgportal/internal/repository"
)

// GrantService owns the grant lifecycle: LIVE listings, the
// pending-deletion trash state, restore and permanent removal. Every
// operation is scoped to the calling organization; foreign ids report
// not found.
type GrantService struct {
	grantRepo repository.GrantRepositoryIface
	validate  *validator.Validate
}

func NewGrantService(grantRepo repository.GrantRepositoryIface) *GrantService {
	return &GrantService{
		grantRepo: grantRepo,
		validate:  validator.New(),
	}
}

type GrantInput struct {
	Title          string `json:"title" validate:"required"`
	Organizer      string `json:"organizer"`
	ApplyURL       string `json:"apply_url" validate:"required"`
	Deadline       string `json:"deadline"`
	Description    string `json:"description"`
	Eligibility    string `json:"eligibility"`
	RefugeeCountry string `json:"refugee_country"`
	Amount         string `json:"amount"`
	Category       string `json:"category"`
}

// deadlineLayouts are tried in order; anything unparsable stores as a
// null deadline rather than failing the request.
var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDeadline leniently parses an ISO-8601 date or datetime.
func ParseDeadline(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

// Create opens a new LIVE listing. Suspended organizations are blocked
// here and only here; edit and delete stay available to them.
func (s *GrantService) Create(ctx context.Context, org *model.Organization, input GrantInput) (*model.Grant, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	if org.IsSuspended() {
		return nil, domain.ErrSuspended
	}

	organizer := input.Organizer
	if organizer == "" {
		organizer = org.Name
	}

	orgID := org.ID
	creatorID := org.UserID

	grant := &model.Grant{
		Title:          input.Title,
		Organizer:      organizer,
		ApplyURL:       input.ApplyURL,
		Deadline:       ParseDeadline(input.Deadline),
		Description:    input.Description,
		Eligibility:    input.Eligibility,
		RefugeeCountry: input.RefugeeCountry,
		Amount:         input.Amount,
		Category:       input.Category,
		Source:         "manual",
		IsVerified:     true,
		IsActive:       true,
		OrganizationID: &orgID,
		CreatorID:      &creatorID,
		CreatedByType:  "ORGANIZATION",
		CreatedByID:    &orgID,
		Status:         model.GrantStatusLive,
	}

	if err := s.grantRepo.Create(ctx, grant); err != nil {
		return nil, err
	}

	return grant, nil
}

// Edit overwrites the listing with the submitted form. Title and apply
// URL are required; organizer is kept when the form leaves it blank;
// every other field takes the submitted value, empty included. The
// lifecycle status never moves here.
func (s *GrantService) Edit(ctx context.Context, org *model.Organization, grantID uuid.UUID, input GrantInput) (*model.Grant, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	grant, err := s.grantRepo.FindOwned(ctx, grantID, org.ID)
	if err != nil {
		return nil, err
	}

	grant.Title = input.Title
	if input.Organizer != "" {
		grant.Organizer = input.Organizer
	}
	grant.ApplyURL = input.ApplyURL
	grant.Deadline = ParseDeadline(input.Deadline)
	grant.Description = input.Description
	grant.Eligibility = input.Eligibility
	grant.RefugeeCountry = input.RefugeeCountry
	grant.Amount = input.Amount
	grant.Category = input.Category

	if err := s.grantRepo.Update(ctx, grant); err != nil {
		return nil, err
	}

	return grant, nil
}

// SoftDelete moves a listing into the trash. The current status is not
// checked, so repeating the call is an idempotent no-op that ends in
// DELETION_PENDING.
func (s *GrantService) SoftDelete(ctx context.Context, org *model.Organization, grantID uuid.UUID) error {
	grant, err := s.grantRepo.FindOwned(ctx, grantID, org.ID)
	if err != nil {
		return err
	}

	grant.Status = model.GrantStatusDeletionPending
	return s.grantRepo.Update(ctx, grant)
}

// Restore brings a trashed listing back to LIVE. Anything not in the
// trash reports not found.
func (s *GrantService) Restore(ctx context.Context, org *model.Organization, grantID uuid.UUID) error {
	grant, err := s.grantRepo.FindOwnedWithStatus(ctx, grantID, org.ID, model.GrantStatusDeletionPending)
	if err != nil {
		return err
	}

	grant.Status = model.GrantStatusLive
	return s.grantRepo.Update(ctx, grant)
}

// PermanentDelete removes a trashed listing for good. A LIVE grant can
// never be hard-deleted directly.
func (s *GrantService) PermanentDelete(ctx context.Context, org *model.Organization, grantID uuid.UUID) error {
	grant, err := s.grantRepo.FindOwnedWithStatus(ctx, grantID, org.ID, model.GrantStatusDeletionPending)
	if err != nil {
		return err
	}

	return s.grantRepo.Delete(ctx, grant)
}

// Get returns an owned listing whatever its lifecycle state.
func (s *GrantService) Get(ctx context.Context, org *model.Organization, grantID uuid.UUID) (*model.Grant, error) {
	return s.grantRepo.FindOwned(ctx, grantID, org.ID)
}

type GrantSummary struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Organizer   string            `json:"organizer"`
	IsActive    bool              `json:"is_active"`
	Status      model.GrantStatus `json:"status"`
}

type DashboardData struct {
	Org                *model.Organization `json:"-"`
	MustChangePassword bool                `json:"must_change_password"`
	Grants             []GrantSummary      `json:"grants"`
	TotalGrants        int64               `json:"total_grants"`
	ActiveGrants       int64               `json:"active_grants"`
	InactiveGrants     int64               `json:"inactive_grants"`
	TrashCount         int64               `json:"trash_count"`
}

// Dashboard aggregates the tenant's listings. Trashed rows are listed
// (the client renders the trash view from them) but excluded from the
// visible totals: total = all - trash, inactive = total - active.
func (s *GrantService) Dashboard(ctx context.Context, org *model.Organization) (*DashboardData, error) {
	grants, err := s.grantRepo.ListByOrganization(ctx, org.ID)
	if err != nil {
		return nil, err
	}

	counts, err := s.grantRepo.CountByOrganization(ctx, org.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]GrantSummary, 0, len(grants))
	for _, g := range grants {
		summaries = append(summaries, GrantSummary{
			ID:          g.ID,
			Title:       g.Title,
			Description: g.Description,
			Organizer:   g.Organizer,
			IsActive:    g.IsActive,
			Status:      g.Status,
		})
	}

	totalVisible := counts.Total - counts.Trash

	return &DashboardData{
		Org:                org,
		MustChangePassword: org.MustChangePassword,
		Grants:             summaries,
		TotalGrants:        totalVisible,
		ActiveGrants:       counts.Active,
		InactiveGrants:     totalVisible - counts.Active,
		TrashCount:         counts.Trash,
	}, nil
}
