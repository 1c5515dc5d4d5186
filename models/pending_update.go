package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Form types a pending update can target. One per page of the card.
const (
	FormTypeBack  = "back_form"
	FormTypeFront = "front_trunk_tailgate"
)

// Sections of the back form a payload may address.
const (
	SectionPaintMicrons = "paintMicrons"
	SectionPartsChanges = "partsChanges"
	SectionBoth         = "both"
)

// PendingUpdate is a queued partial-field change awaiting application to an
// open form. Rows are inserted by the submission endpoints and only ever
// mutated to flip Processed true; nothing deletes them.
type PendingUpdate struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	VIN       string         `json:"vin" gorm:"size:32;index"`
	FormType  string         `json:"form_type" gorm:"size:32;index"`
	Section   string         `json:"section,omitempty" gorm:"size:16"` // back form only
	Data      datatypes.JSON `json:"data" gorm:"type:jsonb"`
	Processed bool           `json:"processed" gorm:"index;default:false"`

	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (PendingUpdate) TableName() string { return "fic_pending_updates" }

func (p *PendingUpdate) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func ValidFormType(ft string) bool {
	return ft == FormTypeBack || ft == FormTypeFront
}

func ValidSection(s string) bool {
	return s == SectionPaintMicrons || s == SectionPartsChanges || s == SectionBoth
}

// SectionCoversPaint reports whether a section value addresses the paint
// microns table.
func SectionCoversPaint(s string) bool {
	return s == SectionPaintMicrons || s == SectionBoth
}

func SectionCoversParts(s string) bool {
	return s == SectionPartsChanges || s == SectionBoth
}
