package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EntryType tags a feedback entry as a plain comment or a positional
// annotation. Only annotations may carry a drawing payload.
type EntryType string

const (
	EntryComment    EntryType = "comment"
	EntryAnnotation EntryType = "annotation"
)

func (t EntryType) Valid() bool {
	return t == EntryComment || t == EntryAnnotation
}

// Comment is one entry in a design item's feedback thread. Threads are
// append-only: there is no update or delete path for rows of this table.
type Comment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DesignItemID uuid.UUID `gorm:"type:uuid;not null;index:idx_review_item" json:"design_item_id"`
	ReviewID     uuid.UUID `gorm:"type:uuid;not null;index:idx_review_item" json:"review_id"`

	Author  string    `gorm:"type:varchar(255);not null" json:"author"`
	Content string    `gorm:"type:text;not null" json:"content"`
	Type    EntryType `gorm:"type:varchar(16);not null;default:comment" json:"type"`

	// Drawing holds the encoded raster of freehand marks when the entry is
	// an annotation drawn on the file. When the blob store is configured
	// the raster lives there and DrawingKey points at it instead.
	Drawing    string `gorm:"type:text" json:"drawing,omitempty"`
	DrawingKey string `gorm:"type:text" json:"drawing_key,omitempty"`
	HasDrawing bool   `gorm:"not null;default:false" json:"has_drawing"`

	// Meta carries positional data supplied by the viewer (x, y, color).
	Meta datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"meta,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Comment <-> DesignItem
	DesignItem *DesignItem `gorm:"foreignKey:DesignItemID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"design_item,omitempty"`
}

func (Comment) TableName() string { return "comments" }

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
