package db

import (
	"database/sql"
	"time"
)

type Reservation struct {
	ID              int          `json:"id"`
	Code            string       `json:"code"`
	Nom             string       `json:"nom"`
	Prenom          string       `json:"prenom"`
	Email           string       `json:"email"`
	StartTime       sql.NullTime `json:"start_time"`
	Message         string       `json:"message"`
	Forfait         string       `json:"forfait"`
	Variant         string       `json:"variant"`
	Status          string       `json:"status"`
	PaymentStatus   string       `json:"payment_status"`
	StripeSessionID string       `json:"stripe_session_id,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
