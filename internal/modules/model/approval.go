package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Decision is the recorded outcome of a client review pass.
type Decision string

const (
	DecisionApproved          Decision = "approved"
	DecisionRevisionRequested Decision = "revision_requested"
)

func (d Decision) Valid() bool {
	return d == DecisionApproved || d == DecisionRevisionRequested
}

// Status returns the review status this decision drives.
func (d Decision) Status() ReviewStatus {
	if d == DecisionApproved {
		return StatusApproved
	}
	return StatusRevisionRequested
}

// Approval is one decision event on a review. A review accumulates
// approvals over time; the latest one determines the review's status.
type Approval struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReviewID  uuid.UUID `gorm:"type:uuid;not null;index" json:"review_id"`
	FirstName string    `gorm:"type:varchar(128);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(128);not null" json:"last_name"`
	Decision  Decision  `gorm:"type:varchar(32);not null" json:"decision"`
	Notes     string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Approval <-> Review
	Review *Review `gorm:"foreignKey:ReviewID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"review,omitempty"`
}

func (Approval) TableName() string { return "approvals" }

func (a *Approval) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
