package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectNumber string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"project_number"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	ClientEmail   string    `gorm:"type:varchar(255)" json:"client_email"`

	// Projects are never hard-deleted; Archived is a visibility flag and
	// does not touch the project's reviews.
	Archived        bool `gorm:"not null;default:false;index" json:"archived"`
	DownloadEnabled bool `gorm:"not null;default:false" json:"download_enabled"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Project <-> Review
	Reviews []Review `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"reviews,omitempty"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
