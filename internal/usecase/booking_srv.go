package usecase

import (
	"context"
	"fmt"

	"movie-booking/internal/access"
	"movie-booking/internal/data/cache"
	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/apperr"
	"movie-booking/pkg/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReservationScope selects whose reservations ListReservations returns.
type ReservationScope int

const (
	ScopeSelf ReservationScope = iota
	ScopeAll
)

// BookingService is the ledger of seat reservations. A seat is booked exactly
// when a booking row references it.
type BookingService interface {
	ReserveSeat(ctx context.Context, actor *access.Actor, req *request.ReserveSeatRequest) (*response.ReservationResponse, error)
	CancelReservation(ctx context.Context, actor *access.Actor, req *request.CancelReservationRequest) error
	ListReservations(ctx context.Context, actor *access.Actor, scope ReservationScope, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetSeatDetails(ctx context.Context, actor *access.Actor, req *request.SeatDetailsRequest) (*response.SeatDetailsResponse, error)
}

type bookingService struct {
	repo  *repository.Repository
	seats cache.SeatAvailabilityCache
	clock clock.Clock
	log   *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	seats cache.SeatAvailabilityCache,
	clk clock.Clock,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:  repo,
		seats: seats,
		clock: clk,
		log:   log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) ReserveSeat(ctx context.Context, actor *access.Actor, req *request.ReserveSeatRequest) (*response.ReservationResponse, error) {
	if err := access.CanBook(actor); err != nil {
		return nil, err
	}

	seatID, err := parseID("seat_id", req.SeatID)
	if err != nil {
		return nil, err
	}
	showtimeID, err := parseID("showtime_id", req.ShowtimeID)
	if err != nil {
		return nil, err
	}
	tickets := req.Tickets
	if tickets == 0 {
		tickets = 1
	}
	if tickets < 1 {
		return nil, apperr.Validation("tickets must be at least 1")
	}

	var (
		booking  *entity.BookingHistory
		seat     *entity.Seat
		showtime *entity.ShowtimeDetail
	)

	// The seat row lock serializes concurrent reservations of one seat; the
	// unique index on booking_histories.seat_id backs it up.
	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		seat, err = s.repo.Seat.FindForUpdate(ctx, seatID, showtimeID)
		if err != nil {
			return err
		}
		if seat == nil {
			return apperr.NotFound("seat or showtime not found")
		}

		showtime, err = s.repo.Showtime.FindDetailByID(ctx, showtimeID)
		if err != nil {
			return err
		}
		if showtime == nil {
			return apperr.NotFound("seat or showtime not found")
		}

		// A started showtime rejects every reservation, booked seat or not.
		now := s.clock.Now()
		if showtime.HasStarted(now) {
			return apperr.Validation("cannot book a seat for a past or ongoing showtime")
		}

		booked, err := s.repo.Booking.ExistsBySeat(ctx, seat.ID)
		if err != nil {
			return err
		}
		if booked {
			return apperr.Conflict("seat is already booked")
		}

		booking = &entity.BookingHistory{
			ID:         uuid.New(),
			UserID:     actor.ID,
			MovieID:    showtime.MovieID,
			ShowtimeID: showtime.ID,
			SeatID:     &seat.ID,
			Tickets:    tickets,
			BookedAt:   now,
		}
		return s.repo.Booking.Create(ctx, booking)
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			s.log.Error("Failed to reserve seat",
				zap.Error(err),
				zap.String("user_id", actor.ID.String()),
				zap.String("seat_id", seatID.String()),
				zap.String("showtime_id", showtimeID.String()),
			)
			return nil, fmt.Errorf("reserve seat: %w", err)
		}
		s.log.Info("Reservation rejected",
			zap.String("user_id", actor.ID.String()),
			zap.String("seat_id", seatID.String()),
			zap.String("reason", apperr.Message(err)),
		)
		return nil, err
	}

	s.seats.Invalidate(ctx, showtimeID)

	s.log.Info("Seat reserved",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", actor.ID.String()),
		zap.String("seat_id", seatID.String()),
		zap.String("showtime_id", showtimeID.String()),
	)

	return &response.ReservationResponse{
		BookingID:  booking.ID.String(),
		SeatID:     seat.ID.String(),
		SeatNumber: seat.SeatNumber,
		ShowtimeID: showtime.ID.String(),
		StartTime:  showtime.StartTime,
		MovieTitle: showtime.MovieTitle,
		Tickets:    booking.Tickets,
		BookedAt:   booking.BookedAt,
	}, nil
}

func (s *bookingService) CancelReservation(ctx context.Context, actor *access.Actor, req *request.CancelReservationRequest) error {
	if actor == nil {
		return apperr.Unauthorized("authentication required")
	}

	bookingID, err := parseID("booking_id", req.BookingID)
	if err != nil {
		return err
	}

	var showtimeID uuid.UUID
	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		// Someone else's booking is reported as missing.
		booking, err := s.repo.Booking.FindOwnedForUpdate(ctx, bookingID, actor.ID)
		if err != nil {
			return err
		}
		if booking == nil {
			return apperr.NotFound("reservation not found")
		}
		showtimeID = booking.ShowtimeID

		showtime, err := s.repo.Showtime.FindByID(ctx, booking.ShowtimeID)
		if err != nil {
			return err
		}
		if showtime == nil {
			return apperr.NotFound("reservation not found")
		}
		if showtime.HasStarted(s.clock.Now()) {
			return apperr.Validation("cannot cancel past or ongoing showtime reservations")
		}

		return s.repo.Booking.Delete(ctx, booking.ID)
	})
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			s.log.Error("Failed to cancel reservation",
				zap.Error(err),
				zap.String("booking_id", bookingID.String()),
				zap.String("user_id", actor.ID.String()),
			)
			return fmt.Errorf("cancel reservation: %w", err)
		}
		return err
	}

	s.seats.Invalidate(ctx, showtimeID)

	s.log.Info("Reservation cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("user_id", actor.ID.String()),
	)
	return nil
}

func (s *bookingService) ListReservations(ctx context.Context, actor *access.Actor, scope ReservationScope, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if actor == nil {
		return nil, apperr.Unauthorized("authentication required")
	}
	if scope == ScopeAll {
		if err := access.CanListAllReservations(actor); err != nil {
			return nil, err
		}
	}

	req.Page, req.PerPage = paginate(req.Page, req.PerPage)

	var (
		bookings []*entity.BookingDetail
		total    int64
		err      error
	)
	if scope == ScopeAll {
		bookings, err = s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
		if err == nil {
			total, err = s.repo.Booking.CountAll(ctx)
		}
	} else {
		bookings, err = s.repo.Booking.FindByUser(ctx, actor.ID, req.Limit(), req.Offset())
		if err == nil {
			total, err = s.repo.Booking.CountByUser(ctx, actor.ID)
		}
	}
	if err != nil {
		s.log.Error("Failed to list reservations",
			zap.Error(err),
			zap.String("user_id", actor.ID.String()),
			zap.Int("page", req.Page),
		)
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, response.BookingToResponse(b))
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *bookingService) GetSeatDetails(ctx context.Context, actor *access.Actor, req *request.SeatDetailsRequest) (*response.SeatDetailsResponse, error) {
	if actor == nil {
		return nil, apperr.Unauthorized("authentication required")
	}

	seatID, err := parseID("seat_id", req.SeatID)
	if err != nil {
		return nil, err
	}

	seat, err := s.repo.Seat.FindByID(ctx, seatID)
	if err != nil {
		s.log.Error("Failed to get seat", zap.Error(err), zap.String("seat_id", seatID.String()))
		return nil, fmt.Errorf("get seat: %w", err)
	}
	if seat == nil {
		return nil, apperr.NotFound("seat not found")
	}

	// Access is granted per showtime: any booking of the actor in the seat's
	// showtime unlocks every seat of it.
	hasBooking, err := s.repo.Booking.ExistsByUserAndShowtime(ctx, actor.ID, seat.ShowtimeID)
	if err != nil {
		s.log.Error("Failed to check reservation", zap.Error(err), zap.String("seat_id", seatID.String()))
		return nil, fmt.Errorf("check reservation: %w", err)
	}
	if !hasBooking {
		return nil, apperr.Forbidden("you do not have a reservation for this showtime")
	}

	showtime, err := s.repo.Showtime.FindDetailByID(ctx, seat.ShowtimeID)
	if err != nil {
		s.log.Error("Failed to get showtime", zap.Error(err), zap.String("showtime_id", seat.ShowtimeID.String()))
		return nil, fmt.Errorf("get showtime: %w", err)
	}
	if showtime == nil {
		return nil, apperr.NotFound("showtime not found")
	}
	if showtime.HasStarted(s.clock.Now()) {
		return nil, apperr.Validation("cannot view details for past or ongoing showtimes")
	}

	return &response.SeatDetailsResponse{
		Seat:       response.SeatToResponse(seat),
		ShowtimeID: showtime.ID.String(),
		StartTime:  showtime.StartTime,
		MovieTitle: showtime.MovieTitle,
	}, nil
}
