package repository

import (
	"context"
	"time"

	"github.com/deppfellow/venues/internal/model"
	"github.com/deppfellow/venues/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type venueRow struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	URL      string `db:"url"`
	District string `db:"district"`
}

func (r venueRow) toModel() model.Venue {
	return model.Venue{
		ID:       model.SequentialIDs{}.Format(r.ID),
		Name:     r.Name,
		URL:      r.URL,
		District: r.District,
	}
}

type userRow struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r userRow) toModel() *model.User {
	return &model.User{
		ID:           model.SequentialIDs{}.Format(r.ID),
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

// PostgresVenueStore keeps venues in the venues table with identity ids.
type PostgresVenueStore struct {
	pool *pgxpool.Pool
	ids  model.SequentialIDs
}

func NewPostgresVenueStore(pool *pgxpool.Pool) *PostgresVenueStore {
	return &PostgresVenueStore{pool: pool}
}

func (r *PostgresVenueStore) IDs() model.IDCodec {
	return r.ids
}

func (r *PostgresVenueStore) List(ctx context.Context) ([]model.Venue, error) {
	stmt := `
		SELECT id, name, url, district
		FROM venues
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, stmt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute list venues query")
	}

	venueRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[venueRow])
	if err != nil {
		return nil, errors.Wrap(err, "failed to collect venue rows")
	}

	venues := make([]model.Venue, 0, len(venueRows))
	for _, row := range venueRows {
		venues = append(venues, row.toModel())
	}
	return venues, nil
}

func (r *PostgresVenueStore) Create(ctx context.Context, params model.VenueParams) (*model.Venue, error) {
	stmt := `
		INSERT INTO venues (name, url, district)
		VALUES (@name, @url, @district)
		RETURNING id, name, url, district
	`

	rows, err := r.pool.Query(ctx, stmt, pgx.NamedArgs{
		"name":     params.Name,
		"url":      params.URL,
		"district": params.District,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute create venue query")
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[venueRow])
	if err != nil {
		return nil, errors.Wrap(err, "failed to collect created venue")
	}

	venue := row.toModel()
	return &venue, nil
}

func (r *PostgresVenueStore) Update(ctx context.Context, id model.ID, params model.VenueParams) (*model.Venue, error) {
	key, err := r.ids.Int64(id)
	if err != nil {
		return nil, err
	}

	stmt := `
		UPDATE venues
		SET name = @name, url = @url, district = @district, updated_at = now()
		WHERE id = @id
		RETURNING id, name, url, district
	`

	rows, err := r.pool.Query(ctx, stmt, pgx.NamedArgs{
		"id":       key,
		"name":     params.Name,
		"url":      params.URL,
		"district": params.District,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to execute update venue query for id=%s", id)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[venueRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "failed to collect updated venue id=%s", id)
	}

	venue := row.toModel()
	return &venue, nil
}

func (r *PostgresVenueStore) Delete(ctx context.Context, id model.ID) error {
	key, err := r.ids.Int64(id)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM venues WHERE id = @id`, pgx.NamedArgs{"id": key})
	if err != nil {
		return errors.Wrapf(err, "failed to execute delete venue query for id=%s", id)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresVenueStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM venues`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count venues")
	}
	return count, nil
}

// PostgresUserStore keeps credentials in the users table. Uniqueness is the
// users_username_key constraint.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

func (r *PostgresUserStore) Create(ctx context.Context, username, passwordHash string) (*model.User, error) {
	stmt := `
		INSERT INTO users (username, password_hash)
		VALUES (@username, @password_hash)
		RETURNING id, username, password_hash, created_at
	`

	rows, err := r.pool.Query(ctx, stmt, pgx.NamedArgs{
		"username":      username,
		"password_hash": passwordHash,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute create user query")
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		if sqlerr.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, errors.Wrap(err, "failed to collect created user")
	}

	return row.toModel(), nil
}

func (r *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	stmt := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = @username
	`

	rows, err := r.pool.Query(ctx, stmt, pgx.NamedArgs{"username": username})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute get user query")
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to collect user")
	}

	return row.toModel(), nil
}
