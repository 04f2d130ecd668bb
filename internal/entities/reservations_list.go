package entities

import "tricoterie/internal/db"

type ReservationsList struct {
	Total        int              `json:"total"`
	Reservations []db.Reservation `json:"reservations"`
}
