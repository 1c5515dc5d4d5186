package models

import (
	"time"

	"gorm.io/datatypes"
)

// ChecklistItem is one row of the static inspection catalog (the printed
// item lists on the card), seeded at startup and served read-only.
type ChecklistItem struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Station   string         `json:"station" gorm:"size:64;index;uniqueIndex:idx_station_label"`
	Label     string         `json:"label" gorm:"size:128;uniqueIndex:idx_station_label"`
	APIKey    string         `json:"api_key,omitempty" gorm:"size:64;index"` // set only for remotely updatable items
	ItemOrder int            `json:"item_order" gorm:"index"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	Meta      datatypes.JSON `json:"meta,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ChecklistItem) TableName() string { return "fic_checklist_items" }
