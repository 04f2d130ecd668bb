package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"tricoterie/internal/db"
)

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

func (r *ReservationRepository) CreateReservation(res *db.Reservation) error {
	query := `
		INSERT INTO reservations
		(code, nom, prenom, email, start_time, message, forfait, variant, status, payment_status, stripe_session_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	return r.DB.QueryRow(query,
		res.Code,
		res.Nom,
		res.Prenom,
		res.Email,
		res.StartTime,
		res.Message,
		res.Forfait,
		res.Variant,
		res.Status,
		res.PaymentStatus,
		res.StripeSessionID,
		res.CreatedAt,
		res.UpdatedAt,
	).Scan(&res.ID)
}

func (r *ReservationRepository) GetReservationByStripeSessionID(sessionID string) (*db.Reservation, error) {
	var res db.Reservation
	query := `
		SELECT id, code, nom, prenom, email, start_time, message, forfait, variant, status, payment_status, stripe_session_id, created_at, updated_at
		FROM reservations WHERE stripe_session_id = $1`
	err := r.DB.QueryRow(query, sessionID).Scan(
		&res.ID, &res.Code, &res.Nom, &res.Prenom, &res.Email, &res.StartTime, &res.Message,
		&res.Forfait, &res.Variant, &res.Status, &res.PaymentStatus, &res.StripeSessionID,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reservation for session '%s' not found: %w", sessionID, err)
		}
		return nil, fmt.Errorf("error querying reservation: %w", err)
	}
	return &res, nil
}

func (r *ReservationRepository) UpdateStatusBySessionID(sessionID, status, paymentStatus string) error {
	result, err := r.DB.Exec(
		`UPDATE reservations SET status = $2, payment_status = $3, updated_at = NOW() WHERE stripe_session_id = $1`,
		sessionID, status, paymentStatus,
	)
	if err != nil {
		return fmt.Errorf("error updating reservation for session %s: %w", sessionID, err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("no reservation found for session %s", sessionID)
	}
	return nil
}

func (r *ReservationRepository) ListReservations(date, variant, status string) ([]db.Reservation, error) {
	query := `
	SELECT id, code, nom, prenom, email, start_time, message, forfait, variant, status, payment_status, stripe_session_id, created_at, updated_at
	FROM reservations
	WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if date != "" {
		query += " AND DATE(start_time) = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	if variant != "" {
		query += " AND variant = $" + strconv.Itoa(idx)
		args = append(args, variant)
		idx++
	}
	if status != "" {
		query += " AND status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []db.Reservation
	for rows.Next() {
		var res db.Reservation
		err := rows.Scan(
			&res.ID, &res.Code, &res.Nom, &res.Prenom, &res.Email, &res.StartTime, &res.Message,
			&res.Forfait, &res.Variant, &res.Status, &res.PaymentStatus, &res.StripeSessionID,
			&res.CreatedAt, &res.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (r *ReservationRepository) DeletePendingReservationsOlderThan(before time.Time) (int64, error) {
	result, err := r.DB.Exec(`DELETE FROM reservations WHERE status = 'pending' AND created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("error deleting stale pending reservations: %w", err)
	}
	return result.RowsAffected()
}
