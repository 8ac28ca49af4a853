package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AuditoriumRepository interface {
	Create(ctx context.Context, auditorium *entity.Auditorium) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Auditorium, error)
	// FindByName matches the name exactly, case-sensitive.
	FindByName(ctx context.Context, name string) (*entity.Auditorium, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Auditorium, error)
	CountAll(ctx context.Context) (int64, error)
}

type auditoriumRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuditoriumRepository(db database.PgxIface, log *zap.Logger) AuditoriumRepository {
	return &auditoriumRepository{
		db:  db,
		log: log.With(zap.String("repository", "auditorium")),
	}
}

const auditoriumColumns = `id, name, total_seats, movie_id, total_shows, place, admin_id, created_at, updated_at`

func (r *auditoriumRepository) Create(ctx context.Context, a *entity.Auditorium) error {
	query := `
		INSERT INTO auditoriums (id, name, total_seats, movie_id, total_shows, place, admin_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		a.ID,
		a.Name,
		a.TotalSeats,
		a.MovieID,
		a.TotalShows,
		a.Place,
		a.AdminID,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create auditorium",
			zap.Error(err),
			zap.String("name", a.Name),
		)
		return fmt.Errorf("create auditorium %s: %w", a.Name, err)
	}

	return nil
}

func (r *auditoriumRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Auditorium, error) {
	query := `SELECT ` + auditoriumColumns + ` FROM auditoriums WHERE id = $1`

	a, err := scanAuditorium(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find auditorium by ID",
			zap.Error(err),
			zap.String("auditorium_id", id.String()),
		)
		return nil, fmt.Errorf("find auditorium by ID %s: %w", id.String(), err)
	}

	return a, nil
}

func (r *auditoriumRepository) FindByName(ctx context.Context, name string) (*entity.Auditorium, error) {
	query := `SELECT ` + auditoriumColumns + ` FROM auditoriums WHERE name = $1 ORDER BY created_at, id LIMIT 1`

	a, err := scanAuditorium(database.Conn(ctx, r.db).QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find auditorium by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find auditorium by name %s: %w", name, err)
	}

	return a, nil
}

func (r *auditoriumRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Auditorium, error) {
	query := `SELECT ` + auditoriumColumns + ` FROM auditoriums ORDER BY name, id LIMIT $1 OFFSET $2`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list auditoriums", zap.Error(err))
		return nil, fmt.Errorf("list auditoriums: %w", err)
	}
	defer rows.Close()

	auditoriums := make([]*entity.Auditorium, 0)
	for rows.Next() {
		a, err := scanAuditorium(rows)
		if err != nil {
			r.log.Error("Failed to scan auditorium row", zap.Error(err))
			return nil, fmt.Errorf("scan auditorium row: %w", err)
		}
		auditoriums = append(auditoriums, a)
	}

	return auditoriums, rows.Err()
}

func (r *auditoriumRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM auditoriums`).Scan(&count); err != nil {
		r.log.Error("Failed to count auditoriums", zap.Error(err))
		return 0, fmt.Errorf("count auditoriums: %w", err)
	}
	return count, nil
}

func scanAuditorium(row pgx.Row) (*entity.Auditorium, error) {
	var a entity.Auditorium
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.TotalSeats,
		&a.MovieID,
		&a.TotalShows,
		&a.Place,
		&a.AdminID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
