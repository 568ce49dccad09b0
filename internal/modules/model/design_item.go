package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DesignItem is one uploaded file under a review. OrderIndex is unique
// within the owning review and drives stable thumbnail ordering; Version
// is informational and inherited from the review round.
type DesignItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReviewID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_review_order" json:"review_id"`
	FileURL  string    `gorm:"type:text;not null" json:"file_url"`
	FileName string    `gorm:"type:varchar(255);not null" json:"file_name"`

	// FileKey is the object-store key backing FileURL, when the file lives
	// in the blob store. Empty for externally hosted references.
	FileKey string `gorm:"type:text" json:"file_key,omitempty"`

	Version    int `gorm:"not null;default:1" json:"version"`
	OrderIndex int `gorm:"not null;uniqueIndex:idx_review_order" json:"order_index"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// DesignItem <-> Review
	Review *Review `gorm:"foreignKey:ReviewID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"review,omitempty"`

	// DesignItem <-> Comment
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"comments,omitempty"`
}

func (DesignItem) TableName() string { return "design_items" }

func (d *DesignItem) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
