package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Known action vocabulary for the audit trail. Action is free-form text in
// the schema; writers should stick to these.
const (
	ActionProjectCreated    = "PROJECT_CREATED"
	ActionProjectUpdated    = "PROJECT_UPDATED"
	ActionReviewCreated     = "REVIEW_CREATED"
	ActionDesignItemAdded   = "DESIGN_ITEM_ADDED"
	ActionCommentAdded      = "COMMENT_ADDED"
	ActionAnnotationAdded   = "ANNOTATION_ADDED"
	ActionReviewApproved    = "REVIEW_APPROVED"
	ActionRevisionRequested = "REVISION_REQUESTED"
	ActionStatusUpdated     = "STATUS_UPDATED"
)

// ActivityLog is the append-only audit trail across all entities.
type ActivityLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	UserName  string    `gorm:"type:varchar(255);not null" json:"user_name"`
	Action    string    `gorm:"type:varchar(64);not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ActivityLog) TableName() string { return "activity_logs" }

func (l *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
