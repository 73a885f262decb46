package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgres returns a connected GORM DB instance.
func NewPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// EnsurePostGIS installs the PostGIS extension and the location machinery
// on ski_resorts: a geography(Point,4326) column kept in sync with
// latitude/longitude by a row trigger, plus a GIST index for radius queries.
// All statements are idempotent so this runs on every startup after
// AutoMigrate.
func EnsurePostGIS(db *gorm.DB) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis`,
		`ALTER TABLE ski_resorts ADD COLUMN IF NOT EXISTS location GEOGRAPHY(Point, 4326)`,
		`CREATE OR REPLACE FUNCTION update_location_from_lat_lng()
		RETURNS TRIGGER AS $$
		BEGIN
			NEW.location := ST_SetSRID(ST_MakePoint(NEW.longitude, NEW.latitude), 4326)::geography;
			RETURN NEW;
		END;
		$$ LANGUAGE plpgsql`,
		`DROP TRIGGER IF EXISTS ski_resorts_location_trigger ON ski_resorts`,
		`CREATE TRIGGER ski_resorts_location_trigger
		BEFORE INSERT OR UPDATE ON ski_resorts
		FOR EACH ROW
		EXECUTE FUNCTION update_location_from_lat_lng()`,
		`CREATE INDEX IF NOT EXISTS ski_resorts_location_idx ON ski_resorts USING GIST (location)`,
	}

	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("postgis migration: %w", err)
		}
	}
	return nil
}
