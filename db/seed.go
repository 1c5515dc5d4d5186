package db

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"FIC_Backend/formstate"
	"FIC_Backend/models"
)

type itemMeta struct {
	RemoteUpdatable bool   `json:"remote_updatable,omitempty"`
	Page            int    `json:"page,omitempty"`
	Note            string `json:"note,omitempty"`
}

// SeedChecklistItems loads the static front-form catalog. Items carrying an
// API key are the four the trunk/tailgate endpoint can address.
func SeedChecklistItems(db *gorm.DB) error {
	apiKeys := make(map[string]string, len(formstate.TrunkTailgateAPIFields))
	for key, item := range formstate.TrunkTailgateAPIFields {
		apiKeys[item] = key
	}

	order := 0
	var items []models.ChecklistItem
	for _, st := range formstate.Stations() {
		for _, label := range st.Items {
			order++
			item := models.ChecklistItem{
				Station:   st.Name,
				Label:     label,
				APIKey:    apiKeys[label],
				ItemOrder: order,
				IsActive:  true,
			}
			if item.APIKey != "" {
				item.Meta = mustMeta(itemMeta{RemoteUpdatable: true, Page: 1})
			}
			items = append(items, item)
		}
	}

	for _, item := range items {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "station"}, {Name: "label"}},
			DoNothing: true,
		}).Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

func mustMeta(m itemMeta) datatypes.JSON {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
