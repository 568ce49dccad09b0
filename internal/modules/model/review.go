package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewStatus is the canonical lowercase representation used in the
// database, the JSON API, and logs.
type ReviewStatus string

const (
	StatusPending           ReviewStatus = "pending"
	StatusApproved          ReviewStatus = "approved"
	StatusRevisionRequested ReviewStatus = "revision_requested"
)

func (s ReviewStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRevisionRequested:
		return true
	}
	return false
}

// Review is one shareable round of feedback for a project. The share-link
// token is the sole client-facing identifier; status only changes through
// an Approval or an explicit admin override.
type Review struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID    `gorm:"type:uuid;not null;index" json:"project_id"`
	ShareLink string       `gorm:"type:varchar(64);uniqueIndex;not null" json:"share_link"`
	Status    ReviewStatus `gorm:"type:varchar(32);not null;default:pending" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Review <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"project,omitempty"`

	// Review <-> DesignItem
	DesignItems []DesignItem `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"design_items,omitempty"`

	// Review <-> Approval
	Approvals []Approval `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"approvals,omitempty"`
}

func (Review) TableName() string { return "reviews" }

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	return nil
}
