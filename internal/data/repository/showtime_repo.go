package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.ShowtimeDetail, error)
	// FindByTimeOfDay returns the earliest showtime of the pairing whose UTC
	// wall-clock time equals timeOfDay ("15:04:05"), on any date.
	FindByTimeOfDay(ctx context.Context, movieID, auditoriumID uuid.UUID, timeOfDay string) (*entity.Showtime, error)
	// UpdateStatus moves the showtime from one status to another and reports
	// false when the row was not in the from status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.ShowtimeStatus, now time.Time) (bool, error)
	FindAll(ctx context.Context, filter ShowtimeFilter, limit, offset int) ([]*entity.ShowtimeDetail, error)
	CountAll(ctx context.Context, filter ShowtimeFilter) (int64, error)
}

// ShowtimeFilter narrows listings. Zero values match everything.
type ShowtimeFilter struct {
	MovieID      uuid.UUID
	AuditoriumID uuid.UUID
	Status       entity.ShowtimeStatus
}

func (f ShowtimeFilter) where() (string, []any) {
	clause := ` WHERE 1 = 1`
	args := make([]any, 0, 3)
	if f.MovieID != uuid.Nil {
		args = append(args, f.MovieID)
		clause += fmt.Sprintf(" AND st.movie_id = $%d", len(args))
	}
	if f.AuditoriumID != uuid.Nil {
		args = append(args, f.AuditoriumID)
		clause += fmt.Sprintf(" AND st.auditorium_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		clause += fmt.Sprintf(" AND st.status = $%d", len(args))
	}
	return clause, args
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

const showtimeColumns = `st.id, st.movie_id, st.auditorium_id, st.status, st.start_time, st.created_at, st.updated_at`

const showtimeDetailSelect = `
	SELECT ` + showtimeColumns + `, m.title, a.name
	FROM showtimes st
	JOIN movies m ON m.id = st.movie_id
	JOIN auditoriums a ON a.id = st.auditorium_id
`

func (r *showtimeRepository) Create(ctx context.Context, s *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (id, movie_id, auditorium_id, status, start_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		s.ID,
		s.MovieID,
		s.AuditoriumID,
		string(s.Status),
		s.StartTime,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.String("movie_id", s.MovieID.String()),
			zap.String("auditorium_id", s.AuditoriumID.String()),
		)
		return fmt.Errorf("create showtime: %w", err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	query := `SELECT ` + showtimeColumns + ` FROM showtimes st WHERE st.id = $1`

	s, err := scanShowtime(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("find showtime by ID %s: %w", id.String(), err)
	}

	return s, nil
}

func (r *showtimeRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.ShowtimeDetail, error) {
	query := showtimeDetailSelect + ` WHERE st.id = $1`

	d, err := scanShowtimeDetail(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime detail",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("find showtime detail %s: %w", id.String(), err)
	}

	return d, nil
}

func (r *showtimeRepository) FindByTimeOfDay(ctx context.Context, movieID, auditoriumID uuid.UUID, timeOfDay string) (*entity.Showtime, error) {
	query := `
		SELECT ` + showtimeColumns + `
		FROM showtimes st
		WHERE st.movie_id = $1
		  AND st.auditorium_id = $2
		  AND (st.start_time AT TIME ZONE 'UTC')::time = $3::time
		ORDER BY st.start_time, st.id
		LIMIT 1
	`

	s, err := scanShowtime(database.Conn(ctx, r.db).QueryRow(ctx, query, movieID, auditoriumID, timeOfDay))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by time of day",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.String("auditorium_id", auditoriumID.String()),
			zap.String("time_of_day", timeOfDay),
		)
		return nil, fmt.Errorf("find showtime at %s: %w", timeOfDay, err)
	}

	return s, nil
}

func (r *showtimeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.ShowtimeStatus, now time.Time) (bool, error) {
	query := `UPDATE showtimes SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`

	tag, err := database.Conn(ctx, r.db).Exec(ctx, query, string(to), now, id, string(from))
	if err != nil {
		r.log.Error("Failed to update showtime status",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
			zap.String("status", string(to)),
		)
		return false, fmt.Errorf("update showtime %s status: %w", id.String(), err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *showtimeRepository) FindAll(ctx context.Context, filter ShowtimeFilter, limit, offset int) ([]*entity.ShowtimeDetail, error) {
	where, args := filter.where()
	query := showtimeDetailSelect + where +
		fmt.Sprintf(" ORDER BY st.start_time, st.id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list showtimes", zap.Error(err))
		return nil, fmt.Errorf("list showtimes: %w", err)
	}
	defer rows.Close()

	showtimes := make([]*entity.ShowtimeDetail, 0)
	for rows.Next() {
		d, err := scanShowtimeDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		showtimes = append(showtimes, d)
	}

	return showtimes, rows.Err()
}

func (r *showtimeRepository) CountAll(ctx context.Context, filter ShowtimeFilter) (int64, error) {
	where, args := filter.where()
	query := `SELECT COUNT(*) FROM showtimes st` + where

	var count int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count showtimes", zap.Error(err))
		return 0, fmt.Errorf("count showtimes: %w", err)
	}
	return count, nil
}

func scanShowtime(row pgx.Row) (*entity.Showtime, error) {
	var s entity.Showtime
	var status string
	err := row.Scan(
		&s.ID,
		&s.MovieID,
		&s.AuditoriumID,
		&status,
		&s.StartTime,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Status = entity.ShowtimeStatus(status)
	s.StartTime = s.StartTime.UTC()
	return &s, nil
}

func scanShowtimeDetail(row pgx.Row) (*entity.ShowtimeDetail, error) {
	var d entity.ShowtimeDetail
	var status string
	err := row.Scan(
		&d.ID,
		&d.MovieID,
		&d.AuditoriumID,
		&status,
		&d.StartTime,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.MovieTitle,
		&d.AuditoriumName,
	)
	if err != nil {
		return nil, err
	}
	d.Status = entity.ShowtimeStatus(status)
	d.StartTime = d.StartTime.UTC()
	return &d, nil
}
