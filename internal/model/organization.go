// internal/model/organization.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrganizationStatus string

const (
	OrgStatusPending   OrganizationStatus = "pending"
	OrgStatusActive    OrganizationStatus = "active"
	OrgStatusApproved  OrganizationStatus = "approved"
	OrgStatusSuspended OrganizationStatus = "suspended"
	OrgStatusRejected  OrganizationStatus = "rejected"
)

// Organization is a tenant profile, one-to-one with a User. The OTP
// columns hold the pending verification code; Otp and OtpExpires are
// either both set or both null.
type Organization struct {
	ID                    uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID                uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name                  string             `gorm:"type:text;not null;index" json:"name"`
	Description           string             `gorm:"type:text" json:"description"`
	VerificationDocuments JSONMap            `gorm:"type:jsonb" json:"verification_documents"`
	Status                OrganizationStatus `gorm:"type:text;default:'pending';index" json:"status"`
	Website               string             `gorm:"type:text" json:"website"`
	ContactEmail          string             `gorm:"type:text;uniqueIndex" json:"contact_email"`
	Country               string             `gorm:"type:text" json:"country"`
	Type                  string             `gorm:"type:text" json:"type"`
	Password              string             `gorm:"type:text" json:"-"`
	Otp                   *string            `gorm:"type:varchar(10)" json:"-"`
	OtpExpires            *time.Time         `json:"-"`
	MustChangePassword    bool               `gorm:"default:true" json:"must_change_password"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// IsApproved reports whether the organization has passed admin review.
// Status values are matched case-insensitively; legacy rows carry both
// "active" and "approved".
func (o *Organization) IsApproved() bool {
	switch OrganizationStatus(strings.ToLower(string(o.Status))) {
	case OrgStatusActive, OrgStatusApproved:
		return true
	}
	return false
}

func (o *Organization) IsSuspended() bool {
	return OrganizationStatus(strings.ToLower(string(o.Status))) == OrgStatusSuspended
}
