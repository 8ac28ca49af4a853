package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/apperr"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the PostgreSQL repositories. WithTx
// holds txMu for the whole unit of work, which gives the same serialization
// the seat row lock gives in the database.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	users       map[uuid.UUID]entity.User
	sessions    map[uuid.UUID]entity.Session
	movies      []entity.Movie
	auditoriums []entity.Auditorium
	showtimes   map[uuid.UUID]entity.Showtime
	seats       []entity.Seat
	bookings    []entity.BookingHistory
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[uuid.UUID]entity.User),
		sessions:  make(map[uuid.UUID]entity.Session),
		showtimes: make(map[uuid.UUID]entity.Showtime),
	}
}

func (m *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Tx:         memTx{m},
		User:       memUserRepo{m},
		Session:    memSessionRepo{m},
		Movie:      memMovieRepo{m},
		Auditorium: memAuditoriumRepo{m},
		Showtime:   memShowtimeRepo{m},
		Seat:       memSeatRepo{m},
		Booking:    memBookingRepo{m},
	}
}

type txMarker struct{}

type memTx struct{ m *memStore }

func (t memTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txMarker{}) != nil {
		return fn(ctx)
	}
	t.m.txMu.Lock()
	defer t.m.txMu.Unlock()
	return fn(context.WithValue(ctx, txMarker{}, true))
}

// ---- seeding helpers ----

func (m *memStore) addUser(role entity.UserRole) entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := entity.User{Name: string(role), Email: uuid.NewString() + "@example.com", Role: role, IsActive: true}
	u.ID = uuid.New()
	m.users[u.ID] = u
	return u
}

func (m *memStore) addMovie(title string) entity.Movie {
	m.mu.Lock()
	defer m.mu.Unlock()
	mv := entity.Movie{Title: title, DurationMinutes: 120}
	mv.ID = uuid.New()
	m.movies = append(m.movies, mv)
	return mv
}

func (m *memStore) addAuditorium(name string) entity.Auditorium {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := entity.Auditorium{Name: name, TotalSeats: 100, Place: "Main"}
	a.ID = uuid.New()
	m.auditoriums = append(m.auditoriums, a)
	return a
}

func (m *memStore) addShowtime(movie entity.Movie, auditorium entity.Auditorium, start time.Time) entity.Showtime {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := entity.Showtime{MovieID: movie.ID, AuditoriumID: auditorium.ID, Status: entity.ShowtimeScheduled, StartTime: start.UTC()}
	st.ID = uuid.New()
	st.CreatedAt = start
	m.showtimes[st.ID] = st
	return st
}

func (m *memStore) addSeat(showtime entity.Showtime, number string) entity.Seat {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := entity.Seat{ShowtimeID: showtime.ID, SeatNumber: number}
	s.ID = uuid.New()
	s.CreatedAt = time.Unix(int64(len(m.seats)), 0)
	m.seats = append(m.seats, s)
	return s
}

func (m *memStore) bookingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

func (m *memStore) seatBookedLocked(seatID uuid.UUID) bool {
	for _, b := range m.bookings {
		if b.SeatID != nil && *b.SeatID == seatID {
			return true
		}
	}
	return false
}

// ---- users & sessions ----

type memUserRepo struct{ m *memStore }

func (r memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == user.Email {
			return apperr.Conflict("email %s is already registered", user.Email)
		}
	}
	r.m.users[user.ID] = *user
	return nil
}

func (r memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if u, ok := r.m.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUserRepo) ExistsWithRole(_ context.Context, role entity.UserRole) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

// LockRole relies on txMu, which already serializes every transaction.
func (r memUserRepo) LockRole(ctx context.Context, _ entity.UserRole) error {
	if ctx.Value(txMarker{}) == nil {
		return errors.New("lock role outside a transaction")
	}
	return nil
}

type memSessionRepo struct{ m *memStore }

func (r memSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.sessions[session.Token] = *session
	return nil
}

func (r memSessionRepo) FindValidSession(_ context.Context, token uuid.UUID, now time.Time) (*entity.Session, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.sessions[token]
	if !ok || s.RevokedAt != nil || !s.ExpiresAt.After(now) {
		return nil, nil
	}
	return &s, nil
}

func (r memSessionRepo) Revoke(_ context.Context, token uuid.UUID, now time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if s, ok := r.m.sessions[token]; ok {
		s.RevokedAt = &now
		r.m.sessions[token] = s
	}
	return nil
}

// ---- catalog ----

type memMovieRepo struct{ m *memStore }

func (r memMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.movies = append(r.m.movies, *movie)
	return nil
}

func (r memMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, mv := range r.m.movies {
		if mv.ID == id {
			return &mv, nil
		}
	}
	return nil, nil
}

func (r memMovieRepo) FindByTitle(_ context.Context, title string) (*entity.Movie, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, mv := range r.m.movies {
		if mv.Title == title {
			return &mv, nil
		}
	}
	return nil, nil
}

func (r memMovieRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Movie, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*entity.Movie, 0)
	for i := offset; i < len(r.m.movies) && len(out) < limit; i++ {
		mv := r.m.movies[i]
		out = append(out, &mv)
	}
	return out, nil
}

func (r memMovieRepo) CountAll(context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.movies)), nil
}

type memAuditoriumRepo struct{ m *memStore }

func (r memAuditoriumRepo) Create(_ context.Context, a *entity.Auditorium) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.auditoriums = append(r.m.auditoriums, *a)
	return nil
}

func (r memAuditoriumRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Auditorium, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, a := range r.m.auditoriums {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, nil
}

func (r memAuditoriumRepo) FindByName(_ context.Context, name string) (*entity.Auditorium, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, a := range r.m.auditoriums {
		if a.Name == name {
			return &a, nil
		}
	}
	return nil, nil
}

func (r memAuditoriumRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Auditorium, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*entity.Auditorium, 0)
	for i := offset; i < len(r.m.auditoriums) && len(out) < limit; i++ {
		a := r.m.auditoriums[i]
		out = append(out, &a)
	}
	return out, nil
}

func (r memAuditoriumRepo) CountAll(context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.m.auditoriums)), nil
}

// ---- showtimes & seats ----

type memShowtimeRepo struct{ m *memStore }

func (r memShowtimeRepo) Create(_ context.Context, s *entity.Showtime) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.showtimes[s.ID] = *s
	return nil
}

func (r memShowtimeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Showtime, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if s, ok := r.m.showtimes[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r memShowtimeRepo) FindDetailByID(_ context.Context, id uuid.UUID) (*entity.ShowtimeDetail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.showtimes[id]
	if !ok {
		return nil, nil
	}
	return r.detailLocked(s), nil
}

func (r memShowtimeRepo) detailLocked(s entity.Showtime) *entity.ShowtimeDetail {
	d := &entity.ShowtimeDetail{Showtime: s}
	for _, mv := range r.m.movies {
		if mv.ID == s.MovieID {
			d.MovieTitle = mv.Title
		}
	}
	for _, a := range r.m.auditoriums {
		if a.ID == s.AuditoriumID {
			d.AuditoriumName = a.Name
		}
	}
	return d
}

func (r memShowtimeRepo) FindByTimeOfDay(_ context.Context, movieID, auditoriumID uuid.UUID, timeOfDay string) (*entity.Showtime, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var match *entity.Showtime
	for _, s := range r.m.showtimes {
		if s.MovieID != movieID || s.AuditoriumID != auditoriumID {
			continue
		}
		if s.StartTime.UTC().Format("15:04:05") != timeOfDay {
			continue
		}
		if match == nil || s.StartTime.Before(match.StartTime) {
			s := s
			match = &s
		}
	}
	return match, nil
}

func (r memShowtimeRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to entity.ShowtimeStatus, now time.Time) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.showtimes[id]
	if !ok || s.Status != from {
		return false, nil
	}
	s.Status = to
	s.UpdatedAt = now
	r.m.showtimes[id] = s
	return true, nil
}

func (r memShowtimeRepo) FindAll(_ context.Context, filter repository.ShowtimeFilter, limit, offset int) ([]*entity.ShowtimeDetail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	matched := r.filterLocked(filter)
	out := make([]*entity.ShowtimeDetail, 0)
	for i := offset; i < len(matched) && len(out) < limit; i++ {
		out = append(out, r.detailLocked(matched[i]))
	}
	return out, nil
}

func (r memShowtimeRepo) CountAll(_ context.Context, filter repository.ShowtimeFilter) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return int64(len(r.filterLocked(filter))), nil
}

func (r memShowtimeRepo) filterLocked(f repository.ShowtimeFilter) []entity.Showtime {
	out := make([]entity.Showtime, 0)
	for _, s := range r.m.showtimes {
		if f.MovieID != uuid.Nil && s.MovieID != f.MovieID {
			continue
		}
		if f.AuditoriumID != uuid.Nil && s.AuditoriumID != f.AuditoriumID {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

type memSeatRepo struct{ m *memStore }

func (r memSeatRepo) CreateBatch(_ context.Context, seats []*entity.Seat) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range seats {
		for _, existing := range r.m.seats {
			if existing.ShowtimeID == s.ShowtimeID && existing.SeatNumber == s.SeatNumber {
				return apperr.DuplicateSeat(s.SeatNumber)
			}
		}
	}
	for _, s := range seats {
		r.m.seats = append(r.m.seats, *s)
	}
	return nil
}

func (r memSeatRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Seat, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range r.m.seats {
		if s.ID == id {
			s.IsBooked = r.m.seatBookedLocked(s.ID)
			return &s, nil
		}
	}
	return nil, nil
}

func (r memSeatRepo) FindForUpdate(ctx context.Context, id, showtimeID uuid.UUID) (*entity.Seat, error) {
	seat, err := r.FindByID(ctx, id)
	if err != nil || seat == nil || seat.ShowtimeID != showtimeID {
		return nil, err
	}
	return seat, nil
}

func (r memSeatRepo) ListByShowtime(_ context.Context, showtimeID uuid.UUID) ([]*entity.Seat, error) {
	return r.list(showtimeID, false), nil
}

func (r memSeatRepo) ListAvailable(_ context.Context, showtimeID uuid.UUID) ([]*entity.Seat, error) {
	return r.list(showtimeID, true), nil
}

func (r memSeatRepo) list(showtimeID uuid.UUID, availableOnly bool) []*entity.Seat {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*entity.Seat, 0)
	for _, s := range r.m.seats {
		if s.ShowtimeID != showtimeID {
			continue
		}
		s.IsBooked = r.m.seatBookedLocked(s.ID)
		if availableOnly && s.IsBooked {
			continue
		}
		out = append(out, &s)
	}
	return out
}

// ---- bookings ----

type memBookingRepo struct{ m *memStore }

func (r memBookingRepo) Create(_ context.Context, b *entity.BookingHistory) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if b.SeatID != nil && r.m.seatBookedLocked(*b.SeatID) {
		return apperr.Conflict("seat is already booked")
	}
	r.m.bookings = append(r.m.bookings, *b)
	return nil
}

func (r memBookingRepo) ExistsBySeat(_ context.Context, seatID uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return r.m.seatBookedLocked(seatID), nil
}

func (r memBookingRepo) ExistsByUserAndShowtime(_ context.Context, userID, showtimeID uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, b := range r.m.bookings {
		if b.UserID == userID && b.ShowtimeID == showtimeID {
			return true, nil
		}
	}
	return false, nil
}

func (r memBookingRepo) FindOwnedForUpdate(_ context.Context, id, userID uuid.UUID) (*entity.BookingHistory, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, b := range r.m.bookings {
		if b.ID == id && b.UserID == userID {
			return &b, nil
		}
	}
	return nil, nil
}

func (r memBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	kept := r.m.bookings[:0]
	for _, b := range r.m.bookings {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	r.m.bookings = kept
	return nil
}

func (r memBookingRepo) FindByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	return r.list(func(b entity.BookingHistory) bool { return b.UserID == userID }, limit, offset), nil
}

func (r memBookingRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return int64(len(r.list(func(b entity.BookingHistory) bool { return b.UserID == userID }, 1<<30, 0))), nil
}

func (r memBookingRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.BookingDetail, error) {
	return r.list(func(entity.BookingHistory) bool { return true }, limit, offset), nil
}

func (r memBookingRepo) CountAll(context.Context) (int64, error) {
	return int64(r.m.bookingCount()), nil
}

func (r memBookingRepo) list(keep func(entity.BookingHistory) bool, limit, offset int) []*entity.BookingDetail {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	matched := make([]entity.BookingHistory, 0)
	for _, b := range r.m.bookings {
		if keep(b) {
			matched = append(matched, b)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].BookedAt.After(matched[j].BookedAt) })

	out := make([]*entity.BookingDetail, 0)
	for i := offset; i < len(matched) && len(out) < limit; i++ {
		d := &entity.BookingDetail{BookingHistory: matched[i]}
		if st, ok := r.m.showtimes[d.ShowtimeID]; ok {
			d.ShowtimeStartTime = st.StartTime
		}
		for _, mv := range r.m.movies {
			if mv.ID == d.MovieID {
				d.MovieTitle = mv.Title
			}
		}
		out = append(out, d)
	}
	return out
}

// recordingCache is an in-memory SeatAvailabilityCache with the same
// generation rule as the Redis one. It counts invalidations per showtime.
type recordingCache struct {
	mu         sync.Mutex
	entries    map[uuid.UUID][]*entity.Seat
	generation map[uuid.UUID]int64
}

func newRecordingCache() *recordingCache {
	return &recordingCache{
		entries:    make(map[uuid.UUID][]*entity.Seat),
		generation: make(map[uuid.UUID]int64),
	}
}

func (c *recordingCache) Get(_ context.Context, showtimeID uuid.UUID) ([]*entity.Seat, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	seats, ok := c.entries[showtimeID]
	return seats, c.generation[showtimeID], ok
}

func (c *recordingCache) Set(_ context.Context, showtimeID uuid.UUID, generation int64, seats []*entity.Seat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation[showtimeID] != generation {
		return
	}
	c.entries[showtimeID] = seats
}

func (c *recordingCache) Invalidate(_ context.Context, showtimeID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, showtimeID)
	c.generation[showtimeID]++
}

func (c *recordingCache) invalidations(showtimeID uuid.UUID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int(c.generation[showtimeID])
}
