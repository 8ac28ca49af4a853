package request

type ReserveSeatRequest struct {
	SeatID     string `json:"seat_id" validate:"required,uuid"`
	ShowtimeID string `json:"showtime_id" validate:"required,uuid"`
	// Tickets defaults to 1 when omitted.
	Tickets int `json:"tickets" validate:"gte=0"`
}

type CancelReservationRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
}

type SeatDetailsRequest struct {
	SeatID string `json:"seat_id" validate:"required,uuid"`
}
