package repository

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS regions (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS prefectures (
	code   CHAR(2) PRIMARY KEY,
	name   TEXT NOT NULL,
	region TEXT NOT NULL REFERENCES regions (name)
);

CREATE TABLE IF NOT EXISTS cities (
	code      TEXT PRIMARY KEY,
	name      TEXT NOT NULL,
	pref_code CHAR(2) NOT NULL REFERENCES prefectures (code)
);

CREATE TABLE IF NOT EXISTS addresses (
	id        BIGSERIAL PRIMARY KEY,
	pref_code CHAR(2) NOT NULL REFERENCES prefectures (code),
	city_code TEXT NOT NULL REFERENCES cities (code),
	town_code TEXT NOT NULL,
	town      TEXT NOT NULL DEFAULT '',
	koaza     TEXT NOT NULL DEFAULT '',
	lat       DOUBLE PRECISION NOT NULL,
	lng       DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT addresses_city_town_koaza_key UNIQUE (city_code, town_code, koaza)
);

CREATE INDEX IF NOT EXISTS addresses_pref_code_idx ON addresses (pref_code);
CREATE INDEX IF NOT EXISTS cities_pref_code_idx ON cities (pref_code);
`

// Migrate creates the tables and indexes when they do not exist
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("repository: failed to migrate schema: %w", err)
	}
	return nil
}
