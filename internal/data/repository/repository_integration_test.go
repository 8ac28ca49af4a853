package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"movie-booking/internal/access"
	"movie-booking/internal/data/cache"
	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/migrations"
	"movie-booking/pkg/apperr"
	"movie-booking/pkg/clock"
	"movie-booking/pkg/database"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
)

var (
	// booking happens two days before the show
	integrationNow   = time.Date(2030, 4, 11, 18, 0, 0, 0, time.UTC)
	integrationStart = time.Date(2030, 4, 13, 18, 0, 0, 0, time.UTC)
)

type RepositoryIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	repo      *repository.Repository
	log       *zap.Logger
}

func TestRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	suite.Run(t, new(RepositoryIntegrationSuite))
}

func (s *RepositoryIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.log = zap.NewNop()

	container, err := postgres.Run(s.ctx, "postgres:16-alpine",
		postgres.WithDatabase("movie_booking"),
		postgres.WithUsername("movie"),
		postgres.WithPassword("movie"),
		postgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.pool, err = pgxpool.New(s.ctx, connStr)
	s.Require().NoError(err)
	s.Require().NoError(migrations.Apply(s.ctx, s.pool, s.log))

	s.repo = repository.NewRepository(database.NewFromPool(s.pool), s.log)
}

func (s *RepositoryIntegrationSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = testcontainers.TerminateContainer(s.container)
	}
}

func (s *RepositoryIntegrationSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE booking_histories, seats, showtimes, auditoriums, movies, sessions, users CASCADE`)
	s.Require().NoError(err)
}

func (s *RepositoryIntegrationSuite) createUser(role entity.UserRole) *entity.User {
	u := &entity.User{Name: "Jane", Email: uuid.NewString() + "@example.com", PasswordHash: "x", Role: role, IsActive: true}
	u.ID = uuid.New()
	u.CreatedAt, u.UpdatedAt = integrationNow, integrationNow
	s.Require().NoError(s.repo.User.Create(s.ctx, u))
	return u
}

// createShowtime stores a movie, an auditorium and a showtime starting at start.
func (s *RepositoryIntegrationSuite) createShowtime(start time.Time) *entity.Showtime {
	movie := &entity.Movie{Title: "Inception", Genres: []string{"sci-fi"}, DurationMinutes: 148, Rate: 8.8}
	movie.ID = uuid.New()
	movie.CreatedAt, movie.UpdatedAt = integrationNow, integrationNow
	s.Require().NoError(s.repo.Movie.Create(s.ctx, movie))

	auditorium := &entity.Auditorium{Name: "Hall " + uuid.NewString()[:8], Place: "Level 1", TotalSeats: 2}
	auditorium.ID = uuid.New()
	auditorium.CreatedAt, auditorium.UpdatedAt = integrationNow, integrationNow
	s.Require().NoError(s.repo.Auditorium.Create(s.ctx, auditorium))

	showtime := &entity.Showtime{MovieID: movie.ID, AuditoriumID: auditorium.ID, Status: entity.ShowtimeScheduled, StartTime: start}
	showtime.ID = uuid.New()
	showtime.CreatedAt, showtime.UpdatedAt = integrationNow, integrationNow
	s.Require().NoError(s.repo.Showtime.Create(s.ctx, showtime))
	return showtime
}

func (s *RepositoryIntegrationSuite) createSeats(showtimeID uuid.UUID, numbers ...string) []*entity.Seat {
	seats := make([]*entity.Seat, 0, len(numbers))
	for i, n := range numbers {
		seat := &entity.Seat{ShowtimeID: showtimeID, SeatNumber: n}
		seat.ID = uuid.New()
		seat.CreatedAt = integrationNow.Add(time.Duration(i) * time.Microsecond)
		seats = append(seats, seat)
	}
	s.Require().NoError(s.repo.Seat.CreateBatch(s.ctx, seats))
	return seats
}

func (s *RepositoryIntegrationSuite) book(user *entity.User, showtime *entity.Showtime, seat *entity.Seat) *entity.BookingHistory {
	b := &entity.BookingHistory{
		ID:         uuid.New(),
		UserID:     user.ID,
		MovieID:    showtime.MovieID,
		ShowtimeID: showtime.ID,
		SeatID:     &seat.ID,
		Tickets:    1,
		BookedAt:   integrationNow,
	}
	s.Require().NoError(s.repo.Booking.Create(s.ctx, b))
	return b
}

func (s *RepositoryIntegrationSuite) TestFindByTimeOfDayIgnoresDate() {
	showtime := s.createShowtime(integrationStart)

	found, err := s.repo.Showtime.FindByTimeOfDay(s.ctx, showtime.MovieID, showtime.AuditoriumID, "18:00:00")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Equal(showtime.ID, found.ID)
	s.True(integrationStart.Equal(found.StartTime))

	missing, err := s.repo.Showtime.FindByTimeOfDay(s.ctx, showtime.MovieID, showtime.AuditoriumID, "19:00:00")
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *RepositoryIntegrationSuite) TestAvailabilityFollowsBookings() {
	user := s.createUser(entity.RoleUser)
	showtime := s.createShowtime(integrationStart)
	seats := s.createSeats(showtime.ID, "A1", "A2")

	booking := s.book(user, showtime, seats[0])

	available, err := s.repo.Seat.ListAvailable(s.ctx, showtime.ID)
	s.Require().NoError(err)
	s.Require().Len(available, 1)
	s.Equal("A2", available[0].SeatNumber)

	all, err := s.repo.Seat.ListByShowtime(s.ctx, showtime.ID)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.True(all[0].IsBooked)
	s.False(all[1].IsBooked)

	s.Require().NoError(s.repo.Booking.Delete(s.ctx, booking.ID))

	available, err = s.repo.Seat.ListAvailable(s.ctx, showtime.ID)
	s.Require().NoError(err)
	s.Len(available, 2)
}

func (s *RepositoryIntegrationSuite) TestConstraintsTranslate() {
	user := s.createUser(entity.RoleUser)
	showtime := s.createShowtime(integrationStart)
	seats := s.createSeats(showtime.ID, "A1")

	dup := &entity.Seat{ShowtimeID: showtime.ID, SeatNumber: "A1"}
	dup.ID = uuid.New()
	dup.CreatedAt = integrationNow
	err := s.repo.Seat.CreateBatch(s.ctx, []*entity.Seat{dup})
	s.ErrorIs(err, apperr.ErrDuplicateSeat)

	s.book(user, showtime, seats[0])
	second := &entity.BookingHistory{
		ID:         uuid.New(),
		UserID:     user.ID,
		MovieID:    showtime.MovieID,
		ShowtimeID: showtime.ID,
		SeatID:     &seats[0].ID,
		Tickets:    1,
		BookedAt:   integrationNow,
	}
	err = s.repo.Booking.Create(s.ctx, second)
	s.ErrorIs(err, apperr.ErrConflict)

	taken := s.createUser(entity.RoleUser)
	taken.ID = uuid.New()
	err = s.repo.User.Create(s.ctx, taken)
	s.ErrorIs(err, apperr.ErrConflict)
}

func (s *RepositoryIntegrationSuite) TestConcurrentReservationsHaveOneWinner() {
	showtime := s.createShowtime(integrationStart)
	seat := s.createSeats(showtime.ID, "A1")[0]

	service := usecase.NewService(
		s.repo,
		cache.NewSeatAvailabilityCache(nil, time.Minute, s.log),
		clock.NewFixed(integrationNow),
		&utils.Config{Session: utils.SessionConfig{ExpiryHours: 24}},
		s.log,
	)

	const attempts = 10
	actors := make([]*access.Actor, attempts)
	for i := range actors {
		u := s.createUser(entity.RoleUser)
		actors[i] = &access.Actor{ID: u.ID, Role: u.Role}
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for _, actor := range actors {
		wg.Add(1)
		go func(actor *access.Actor) {
			defer wg.Done()
			_, err := service.Booking.ReserveSeat(s.ctx, actor, &request.ReserveSeatRequest{
				SeatID:     seat.ID.String(),
				ShowtimeID: showtime.ID.String(),
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case apperr.KindOf(err) == apperr.KindConflict:
				conflicts++
			default:
				s.Failf("unexpected error", "%v", err)
			}
		}(actor)
	}
	wg.Wait()

	s.Equal(1, successes)
	s.Equal(attempts-1, conflicts)

	var rows int
	s.Require().NoError(s.pool.QueryRow(s.ctx, `SELECT COUNT(*) FROM booking_histories WHERE seat_id = $1`, seat.ID).Scan(&rows))
	s.Equal(1, rows)
}

func (s *RepositoryIntegrationSuite) TestMigrationsReapplyAsNoop() {
	s.Require().NoError(migrations.Apply(s.ctx, s.pool, s.log))

	var version int64
	var dirty bool
	s.Require().NoError(s.pool.QueryRow(s.ctx, `SELECT version, dirty FROM schema_migrations`).Scan(&version, &dirty))
	s.Equal(int64(1), version)
	s.False(dirty)
}

func (s *RepositoryIntegrationSuite) TestLockRoleRequiresTransaction() {
	s.Error(s.repo.User.LockRole(s.ctx, entity.RoleAdmin))
}

func (s *RepositoryIntegrationSuite) TestConcurrentAdminBootstrapHasOneWinner() {
	service := usecase.NewService(
		s.repo,
		cache.NewSeatAvailabilityCache(nil, time.Minute, s.log),
		clock.NewFixed(integrationNow),
		&utils.Config{Session: utils.SessionConfig{ExpiryHours: 24}},
		s.log,
	)

	const attempts = 6
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		forbidden int
	)
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := service.Auth.Register(s.ctx, nil, &request.RegisterRequest{
				Name:     "Root",
				Email:    fmt.Sprintf("root%d@example.com", i),
				Password: "correct-horse",
			}, entity.RoleAdmin)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case apperr.KindOf(err) == apperr.KindForbidden:
				forbidden++
			default:
				s.T().Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(1, successes)
	s.Equal(attempts-1, forbidden)

	var admins int
	s.Require().NoError(s.pool.QueryRow(s.ctx, `SELECT COUNT(*) FROM users WHERE role = 'admin'`).Scan(&admins))
	s.Equal(1, admins)
}
