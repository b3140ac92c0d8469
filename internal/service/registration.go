// internal/service/registration.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/relivo/orgportal/internal/auth"
	"github.com/relivo/orgportal/internal/domain"
	"github.com/relivo/orgportal/internal/email"
	"github.com/relivo/orgportal/internal/email/mailer"
	"github.com/relivo/orgportal/internal/model"
	"github.com/relivo/orgportal/internal/otp"
	"github.com/relivo/orgportal/internal/repository"
	"github.com/relivo/orgportal/internal/task"
)

// RegistrationService drives the self-registration, OTP verification
// and password-recovery flows.
type RegistrationService struct {
	userRepo       repository.UserRepositoryIface
	orgRepo        repository.OrganizationRepositoryIface
	passwordHasher *auth.PasswordHasher
	otpEngine      *otp.Engine
	emailService   email.Sender
	tasks          *task.Dispatcher
	validate       *validator.Validate
}

func NewRegistrationService(
	userRepo repository.UserRepositoryIface,
	orgRepo repository.OrganizationRepositoryIface,
	passwordHasher *auth.PasswordHasher,
	otpEngine *otp.Engine,
	emailService email.Sender,
	tasks *task.Dispatcher,
) *RegistrationService {
	return &RegistrationService{
		userRepo:       userRepo,
		orgRepo:        orgRepo,
		passwordHasher: passwordHasher,
		otpEngine:      otpEngine,
		emailService:   emailService,
		tasks:          tasks,
		validate:       validator.New(),
	}
}

type RegisterInput struct {
	Name         string `json:"name" validate:"required"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	Country      string `json:"country" validate:"required"`
	OrgType      string `json:"org_type" validate:"required"`
	Website      string `json:"website"`
}

// NormalizeEmail lowercases and trims an address; every flow keyed by
// email goes through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates or refreshes a pending organization and issues a
// verification code. Re-registering an approved organization is a
// conflict; re-registering a pending/rejected/suspended one overwrites
// its profile in place so unique constraints never trip.
func (s *RegistrationService) Register(ctx context.Context, input RegisterInput) (string, error) {
	input.ContactEmail = NormalizeEmail(input.ContactEmail)
	if err := s.validate.Struct(input); err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidInput, err)
	}

	existingOrg, err := s.orgRepo.FindByContactEmail(ctx, input.ContactEmail)
	if err != nil && !errors.Is(err, domain.ErrOrganizationNotFound) {
		return "", err
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, input.ContactEmail)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	hashedPassword, err := s.passwordHasher.Hash(input.Password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	if existingOrg != nil {
		if existingOrg.IsApproved() {
			return "", domain.ErrAlreadyApproved
		}
		return s.refreshPendingRegistration(ctx, existingOrg, existingUser, input, hashedPassword)
	}

	user := existingUser
	if user != nil {
		user.HashedPassword = hashedPassword
		user.FullName = input.Name
		user.IsVerified = false
	} else {
		user = &model.User{
			Email:          input.ContactEmail,
			HashedPassword: hashedPassword,
			FullName:       input.Name,
			Role:           auth.RoleOrganization,
			IsActive:       true,
			IsVerified:     false,
		}
	}

	org := &model.Organization{
		Name:         input.Name,
		ContactEmail: input.ContactEmail,
		Password:     hashedPassword,
		Country:      input.Country,
		Type:         input.OrgType,
		Website:      input.Website,
		Status:       model.OrgStatusPending,
		// The applicant chose this password themselves.
		MustChangePassword: false,
	}

	code, err := s.otpEngine.Issue(org)
	if err != nil {
		return "", err
	}

	if err := s.orgRepo.CreateWithUser(ctx, org, user); err != nil {
		return "", err
	}

	s.dispatchOTPEmail(org.ContactEmail, code)
	return org.ContactEmail, nil
}

// refreshPendingRegistration treats a repeat registration as a retry:
// profile fields and credentials are overwritten, status falls back to
// pending, and a fresh code replaces whatever was outstanding.
func (s *RegistrationService) refreshPendingRegistration(
	ctx context.Context,
	org *model.Organization,
	user *model.User,
	input RegisterInput,
	hashedPassword string,
) (string, error) {
	if user != nil {
		user.HashedPassword = hashedPassword
		user.FullName = input.Name
		user.IsVerified = false
	} else {
		user = &model.User{
			Email:          input.ContactEmail,
			HashedPassword: hashedPassword,
			FullName:       input.Name,
			Role:           auth.RoleOrganization,
			IsActive:       true,
			IsVerified:     false,
		}
	}

	org.Name = input.Name
	org.Country = input.Country
	org.Type = input.OrgType
	org.Website = input.Website
	org.Status = model.OrgStatusPending
	org.Password = hashedPassword
	org.MustChangePassword = false

	code, err := s.otpEngine.Issue(org)
	if err != nil {
		return "", err
	}

	if err := s.orgRepo.UpdateWithUser(ctx, org, user); err != nil {
		return "", err
	}

	s.dispatchOTPEmail(org.ContactEmail, code)
	return org.ContactEmail, nil
}

// ResendOTP reissues the pending code. It works any time a code is
// outstanding, expired or not; an organization with no pending code is
// already verified.
func (s *RegistrationService) ResendOTP(ctx context.Context, contactEmail string) error {
	contactEmail = NormalizeEmail(contactEmail)

	org, err := s.orgRepo.FindByContactEmail(ctx, contactEmail)
	if err != nil {
		return err
	}

	if !otp.HasPending(org) {
		return domain.ErrAlreadyVerified
	}

	code, err := s.otpEngine.Issue(org)
	if err != nil {
		return err
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return err
	}

	s.dispatchOTPEmail(org.ContactEmail, code)
	return nil
}

// Verify redeems the code and marks the linked user verified. The
// organization's status is untouched; approval happens out of band.
func (s *RegistrationService) Verify(ctx context.Context, contactEmail, code string) error {
	contactEmail = NormalizeEmail(contactEmail)

	org, err := s.orgRepo.FindByContactEmail(ctx, contactEmail)
	if err != nil {
		return err
	}

	if err := s.otpEngine.Validate(org, code); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, org.UserID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if user != nil {
		user.IsVerified = true
	}

	return s.orgRepo.UpdateWithUser(ctx, org, user)
}

// ForgotPasswordRequest issues a recovery code without revealing
// whether the address is registered; an unknown email is a silent
// no-op.
func (s *RegistrationService) ForgotPasswordRequest(ctx context.Context, contactEmail string) error {
	contactEmail = NormalizeEmail(contactEmail)

	org, err := s.orgRepo.FindByContactEmail(ctx, contactEmail)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return nil
		}
		return err
	}

	code, err := s.otpEngine.Issue(org)
	if err != nil {
		return err
	}

	if err := s.orgRepo.Update(ctx, org); err != nil {
		return err
	}

	s.dispatchOTPEmail(org.ContactEmail, code)
	return nil
}

// ForgotPasswordReset redeems a recovery code and replaces the
// password on both the organization and its user. Unlike the request
// leg, a miss here is specific: unknown email and wrong code collapse
// into one error, an expired window reports as expired.
func (s *RegistrationService) ForgotPasswordReset(ctx context.Context, contactEmail, code, newPassword string) error {
	contactEmail = NormalizeEmail(contactEmail)

	org, err := s.orgRepo.FindByContactEmail(ctx, contactEmail)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return domain.ErrInvalidOTPOrEmail
		}
		return err
	}

	if org.Otp == nil || *org.Otp != code {
		return domain.ErrInvalidOTPOrEmail
	}

	if s.otpEngine.Expired(org) {
		return domain.ErrOTPExpired
	}

	hashedPassword, err := s.passwordHasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	org.Password = hashedPassword
	org.Otp = nil
	org.OtpExpires = nil

	user, err := s.userRepo.FindByID(ctx, org.UserID)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if user != nil {
		user.HashedPassword = hashedPassword
	}

	return s.orgRepo.UpdateWithUser(ctx, org, user)
}

// dispatchOTPEmail queues the code for delivery after the row is
// committed. Delivery failures are logged by the dispatcher, never
// surfaced.
func (s *RegistrationService) dispatchOTPEmail(to, code string) {
	s.tasks.Enqueue("send_otp_email", func() error {
		return mailer.SendOTPEmail(s.emailService, to, code)
	})
}
