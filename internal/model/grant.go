// internal/model/grant.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GrantStatus string

const (
	GrantStatusLive            GrantStatus = "LIVE"
	GrantStatusDeletionPending GrantStatus = "DELETION_PENDING"
)

// Grant is a funding listing owned by an organization. The owning
// columns are nullable so that rows ingested from external sources can
// exist without a tenant attached.
type Grant struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title           string     `gorm:"type:varchar(500);not null;index" json:"title"`
	Organizer       string     `gorm:"type:varchar(200);not null" json:"organizer"`
	Deadline        *time.Time `gorm:"index" json:"deadline"`
	Description     string     `gorm:"type:text" json:"description"`
	Eligibility     string     `gorm:"type:text" json:"eligibility"`
	ApplyURL        string     `gorm:"type:varchar(500);not null" json:"apply_url"`
	Source          string     `gorm:"type:varchar(50);default:'manual';index" json:"source"`
	ExternalID      *string    `gorm:"type:varchar(100);uniqueIndex" json:"external_id"`
	RefugeeCountry  string     `gorm:"type:varchar(100);index" json:"refugee_country"`
	IsVerified      bool       `gorm:"default:false;index" json:"is_verified"`
	IsActive        bool       `gorm:"default:true;index" json:"is_active"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason"`

	CreatorID      *uuid.UUID `gorm:"type:uuid;index" json:"creator_id"`
	OrganizationID *uuid.UUID `gorm:"type:uuid;index" json:"organization_id"`

	Amount              string  `gorm:"type:varchar(100)" json:"amount"`
	Location            string  `gorm:"type:varchar(200)" json:"location"`
	EligibilityCriteria JSONMap `gorm:"type:jsonb" json:"eligibility_criteria"`
	RequiredDocuments   JSONMap `gorm:"type:jsonb" json:"required_documents"`

	CreatedByType string      `gorm:"type:varchar(50)" json:"created_by_type"`
	CreatedByID   *uuid.UUID  `gorm:"type:uuid" json:"created_by_id"`
	Status        GrantStatus `gorm:"type:varchar(50)" json:"status"`
	Category      string      `gorm:"type:varchar(100)" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Creator      *User         `gorm:"foreignKey:CreatorID" json:"-"`
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

func (g *Grant) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// JSONMap is an arbitrary JSON object column.
type JSONMap map[string]interface{}

// Scan implements the sql.Scanner interface
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported Scan, storing driver.Value type %T into type %T", value, m)
	}

	return json.Unmarshal(data, m)
}

// Value implements the driver.Valuer interface
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}
