// internal/service/session.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/relivo/orgportal/internal/auth"
	"github.com/relivo/orgportal/internal/domain"
	"github.com/relivo/orgportal/internal/email"
	"github.com/relivo/orgportal/internal/email/mailer"
	"github.com/relivo/orgportal/internal/model"
	"github.com/relivo/orgportal/internal/repository"
	"github.com/relivo/orgportal/internal/task"
)

// SessionService handles login and password maintenance for an
// authenticated organization.
type SessionService struct {
	userRepo       repository.UserRepositoryIface
	orgRepo        repository.OrganizationRepositoryIface
	passwordHasher *auth.PasswordHasher
	tokenManager   *auth.TokenManager
	emailService   email.Sender
	tasks          *task.Dispatcher
}

func NewSessionService(
	userRepo repository.UserRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	passwordHasher *auth.PasswordHasher,
	tokenManager *auth.TokenManager,
	emailService email.Sender,
	tasks *task.Dispatcher,
) *SessionService {
	return &SessionService{
		userRepo:       userRepo,
		orgRepo:        orgRepo,
		passwordHasher: passwordHasher,
		tokenManager:   tokenManager,
		emailService:   emailService,
		tasks:          tasks,
	}
}

type LoginOutput struct {
	Token    string
	Redirect string
	Org      *model.Organization
}

// Login verifies credentials against the organization's stored hash
// and issues a token regardless of status. Redirect is an advisory
// hint for the client; it gates nothing server-side.
func (s *SessionService) Login(ctx context.Context, contactEmail, password string) (*LoginOutput, error) {
	contactEmail = NormalizeEmail(contactEmail)

	org, err := s.orgRepo.FindByContactEmail(ctx, contactEmail)
	if err != nil {
		return nil, err
	}

	verified, err := s.passwordHasher.Verify(password, org.Password)
	if err != nil || !verified {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenManager.Generate(org.ContactEmail, org.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &LoginOutput{
		Token:    token,
		Redirect: redirectFor(org),
		Org:      org,
	}, nil
}

func redirectFor(org *model.Organization) string {
	switch model.OrganizationStatus(strings.ToLower(string(org.Status))) {
	case model.OrgStatusActive, model.OrgStatusApproved:
		return "dashboard"
	case model.OrgStatusSuspended:
		return "suspended"
	case model.OrgStatusRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// ChangePassword swaps the credential after checking the old one. The
// organization row and the linked user are written in one transaction
// so the duplicated hashes cannot drift.
func (s *SessionService) ChangePassword(ctx context.Context, org *model.Organization, oldPassword, newPassword string) error {
	verified, err := s.passwordHasher.Verify(oldPassword, org.Password)
	if err != nil || !verified {
		return domain.ErrWrongOldPassword
	}

	hashedPassword, err := s.passwordHasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	org.Password = hashedPassword
	org.MustChangePassword = false

	user, err := s.userRepo.FindByID(ctx, org.UserID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if user != nil {
		user.HashedPassword = hashedPassword
	}

	if err := s.orgRepo.UpdateWithUser(ctx, org, user); err != nil {
		return err
	}

	to := org.ContactEmail
	s.tasks.Enqueue("send_password_changed_email", func() error {
		return mailer.SendPasswordChangedEmail(s.emailService, to)
	})

	return nil
}
