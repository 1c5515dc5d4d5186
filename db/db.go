package db

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"FIC_Backend/config"
	"FIC_Backend/models"
)

var instance *gorm.DB

func Connect() (*gorm.DB, error) {
	if instance != nil {
		return instance, nil
	}

	dsn := config.GetDSN()
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(60 * time.Minute)

	if err := db.AutoMigrate(&models.PendingUpdate{}, &models.ChecklistItem{}); err != nil {
		return nil, err
	}

	// Catch-up queries filter on (form_type, processed) and walk created_at.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_fic_pending_catchup ON fic_pending_updates (form_type, processed, created_at)`).Error; err != nil {
		return nil, err
	}

	// Insert trigger feeding the LISTEN/NOTIFY subscription. The payload
	// carries only the id and form type: NOTIFY payloads are capped at
	// ~8000 bytes, and form data is unbounded, so notifying the row itself
	// could make the trigger raise and roll back a valid insert.
	// Subscribers fetch the row by id.
	if err := db.Exec(`
		CREATE OR REPLACE FUNCTION fic_pending_notify() RETURNS trigger AS $$
		BEGIN
			PERFORM pg_notify('fic_pending_updates', json_build_object('id', NEW.id, 'form_type', NEW.form_type)::text);
			RETURN NEW;
		END;
		$$ LANGUAGE plpgsql`).Error; err != nil {
		return nil, err
	}
	if err := db.Exec(`DROP TRIGGER IF EXISTS fic_pending_notify_insert ON fic_pending_updates`).Error; err != nil {
		return nil, err
	}
	if err := db.Exec(`
		CREATE TRIGGER fic_pending_notify_insert
		AFTER INSERT ON fic_pending_updates
		FOR EACH ROW EXECUTE FUNCTION fic_pending_notify()`).Error; err != nil {
		return nil, err
	}

	if err := SeedChecklistItems(db); err != nil {
		return nil, err
	}

	instance = db
	return instance, nil
}
