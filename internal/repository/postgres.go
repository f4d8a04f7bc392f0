package repository

import (
	"context"
	"errors"
	"fmt"

	"japan-address-api/internal/apperror"
	"japan-address-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository implements address storage on PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Ping checks that the database is reachable
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("repository: ping failed: %w", err)
	}
	return nil
}

// SeedReferenceData inserts the region and prefecture catalog into empty tables.
// Tables that already hold rows are left alone.
func (r *Repository) SeedReferenceData(ctx context.Context, regions []models.Region, prefectures []models.Prefecture) (int64, error) {
	var seeded int64

	var regionCount int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM regions`).Scan(&regionCount); err != nil {
		return 0, persistenceError("count regions", err)
	}
	if regionCount == 0 {
		ids := make([]string, len(regions))
		names := make([]string, len(regions))
		for i, region := range regions {
			ids[i], names[i] = region.ID, region.Name
		}
		tag, err := r.db.Exec(ctx, `
			INSERT INTO regions (id, name)
			SELECT * FROM unnest($1::text[], $2::text[])
			ON CONFLICT (id) DO NOTHING
		`, ids, names)
		if err != nil {
			return 0, persistenceError("seed regions", err)
		}
		seeded += tag.RowsAffected()
	}

	var prefectureCount int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM prefectures`).Scan(&prefectureCount); err != nil {
		return seeded, persistenceError("count prefectures", err)
	}
	if prefectureCount == 0 {
		codes := make([]string, len(prefectures))
		names := make([]string, len(prefectures))
		regionNames := make([]string, len(prefectures))
		for i, p := range prefectures {
			codes[i], names[i], regionNames[i] = p.Code, p.Name, p.Region
		}
		tag, err := r.db.Exec(ctx, `
			INSERT INTO prefectures (code, name, region)
			SELECT * FROM unnest($1::text[], $2::text[], $3::text[])
			ON CONFLICT (code) DO NOTHING
		`, codes, names, regionNames)
		if err != nil {
			return seeded, persistenceError("seed prefectures", err)
		}
		seeded += tag.RowsAffected()
	}

	return seeded, nil
}

// SaveBatch writes one batch in a single transaction: cities first, then addresses.
// Rows whose key already exists are skipped. It returns the number of newly
// written address rows.
func (r *Repository) SaveBatch(ctx context.Context, cities []models.City, records []models.AddressRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, persistenceError("begin batch", err)
	}
	defer tx.Rollback(ctx)

	if err := insertCities(ctx, tx, cities); err != nil {
		return 0, err
	}

	written, err := insertAddresses(ctx, tx, records)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, persistenceError("commit batch", err)
	}
	return written, nil
}

func insertCities(ctx context.Context, tx pgx.Tx, cities []models.City) error {
	if len(cities) == 0 {
		return nil
	}

	codes := make([]string, len(cities))
	names := make([]string, len(cities))
	prefCodes := make([]string, len(cities))
	for i, c := range cities {
		codes[i], names[i], prefCodes[i] = c.Code, c.Name, c.PrefCode
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO cities (code, name, pref_code)
		SELECT * FROM unnest($1::text[], $2::text[], $3::text[])
		ON CONFLICT (code) DO NOTHING
	`, codes, names, prefCodes)
	if err != nil {
		return persistenceError("insert cities", err)
	}
	return nil
}

// insertAddresses bulk loads the batch into a transaction-scoped staging table
// and moves it into addresses, skipping existing keys.
func insertAddresses(ctx context.Context, tx pgx.Tx, records []models.AddressRecord) (int64, error) {
	_, err := tx.Exec(ctx, `
		CREATE TEMP TABLE address_stage (
			pref_code TEXT,
			city_code TEXT,
			town_code TEXT,
			town      TEXT,
			koaza     TEXT,
			lat       DOUBLE PRECISION,
			lng       DOUBLE PRECISION
		) ON COMMIT DROP
	`)
	if err != nil {
		return 0, persistenceError("create staging table", err)
	}

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"address_stage"},
		[]string{"pref_code", "city_code", "town_code", "town", "koaza", "lat", "lng"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			rec := records[i]
			return []any{rec.PrefCode, rec.CityCode, rec.TownCode, rec.TownName, rec.Koaza, rec.Latitude, rec.Longitude}, nil
		}),
	)
	if err != nil {
		return 0, persistenceError("copy addresses", err)
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO addresses (pref_code, city_code, town_code, town, koaza, lat, lng)
		SELECT pref_code, city_code, town_code, town, koaza, lat, lng FROM address_stage
		ON CONFLICT (city_code, town_code, koaza) DO NOTHING
	`)
	if err != nil {
		return 0, persistenceError("insert addresses", err)
	}
	return tag.RowsAffected(), nil
}

// ListAddresses returns a page of addresses, optionally limited to one prefecture
func (r *Repository) ListAddresses(ctx context.Context, prefCode string, limit, offset int) ([]models.Address, error) {
	sql := `
		SELECT
			a.id,
			a.pref_code,
			p.name,
			a.city_code,
			c.name,
			a.town_code,
			a.town,
			a.koaza,
			a.lat,
			a.lng
		FROM addresses a
		JOIN prefectures p ON a.pref_code = p.code
		JOIN cities c ON a.city_code = c.code
		WHERE ($1::text = '' OR a.pref_code = $1::text)
		ORDER BY a.id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, sql, prefCode, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute address query: %w", err)
	}
	defer rows.Close()

	addresses := []models.Address{}
	for rows.Next() {
		var a models.Address
		err := rows.Scan(
			&a.ID,
			&a.PrefCode,
			&a.PrefName,
			&a.CityCode,
			&a.CityName,
			&a.TownCode,
			&a.TownName,
			&a.Koaza,
			&a.Latitude,
			&a.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return addresses, nil
}

// CountAddresses counts stored addresses, optionally limited to one prefecture
func (r *Repository) CountAddresses(ctx context.Context, prefCode string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM addresses WHERE ($1::text = '' OR pref_code = $1::text)`, prefCode).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to count addresses: %w", err)
	}
	return count, nil
}

// CountByPrefecture groups stored addresses by prefecture
func (r *Repository) CountByPrefecture(ctx context.Context) ([]models.PrefectureCount, error) {
	sql := `
		SELECT p.code, p.name, COUNT(a.id)
		FROM addresses a
		JOIN prefectures p ON a.pref_code = p.code
		GROUP BY p.code, p.name
		ORDER BY p.code
	`

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute prefecture count query: %w", err)
	}

	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PrefectureCount, error) {
		var c models.PrefectureCount
		err := row.Scan(&c.PrefCode, &c.PrefName, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to scan prefecture counts: %w", err)
	}
	return counts, nil
}

// CountByCity groups the addresses of one prefecture by city
func (r *Repository) CountByCity(ctx context.Context, prefCode string) ([]models.CityCount, error) {
	sql := `
		SELECT c.code, c.name, COUNT(a.id)
		FROM addresses a
		JOIN cities c ON a.city_code = c.code
		WHERE a.pref_code = $1
		GROUP BY c.code, c.name
		ORDER BY c.code
	`

	rows, err := r.db.Query(ctx, sql, prefCode)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute city count query: %w", err)
	}

	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CityCount, error) {
		var c models.CityCount
		err := row.Scan(&c.CityCode, &c.CityName, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("repository: failed to scan city counts: %w", err)
	}
	return counts, nil
}

func persistenceError(op string, err error) error {
	pe := &apperror.PersistenceError{Op: op, Err: err}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		pe.Code = pgErr.Code
		pe.Constraint = pgErr.ConstraintName
	}
	return pe
}
