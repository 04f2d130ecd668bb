package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"tricoterie/internal/booking"
	"tricoterie/internal/calendar"
	"tricoterie/internal/db"
	"tricoterie/internal/entities"
	apperrors "tricoterie/internal/errors"
	"tricoterie/internal/slots"
)

const (
	statusPending   = "pending"
	statusConfirmed = "confirmed"
	statusCanceled  = "canceled"
	statusSucceeded = "succeeded"
	statusRefunded  = "refunded"
)

// CheckoutClient creates a hosted payment session for a pay-now reservation.
type CheckoutClient interface {
	CreateCheckoutSession(amount int64, currency, description, customerEmail string) (url string, id string, err error)
}

// ReservationStore records dispatched reservations.
type ReservationStore interface {
	CreateReservation(res *db.Reservation) error
	GetReservationByStripeSessionID(sessionID string) (*db.Reservation, error)
	UpdateStatusBySessionID(sessionID, status, paymentStatus string) error
}

type ReservationService struct {
	store     ReservationStore
	tracker   *slots.Tracker
	mailer    Mailer
	checkout  CheckoutClient
	sender    *SenderService
	serviceID string
}

func NewReservationService(store ReservationStore, tracker *slots.Tracker, mailer Mailer, checkout CheckoutClient, sender *SenderService, emailServiceID string) *ReservationService {
	return &ReservationService{
		store:     store,
		tracker:   tracker,
		mailer:    mailer,
		checkout:  checkout,
		sender:    sender,
		serviceID: emailServiceID,
	}
}

// ValidateDate runs the variant's opening rules over a raw date value.
func (s *ReservationService) ValidateDate(variant booking.Variant, raw string) (bool, string) {
	return booking.ValidateDateTime(variant, raw)
}

// CheckAvailability reports whether the date is valid and, for slot-tracked
// variants, whether its hour bucket is still open. Nothing is reserved.
func (s *ReservationService) CheckAvailability(ctx context.Context, variant booking.Variant, raw string) (*entities.AvailabilityResponse, error) {
	if ok, reason := booking.ValidateDateTime(variant, raw); !ok {
		return &entities.AvailabilityResponse{Available: false, Message: reason}, nil
	}
	if raw == "" || !variant.Config().TracksSlots {
		return &entities.AvailabilityResponse{Available: true}, nil
	}
	start, err := booking.ParseLocalDateTime(raw)
	if err != nil {
		return &entities.AvailabilityResponse{Available: false, Message: apperrors.ErrInvalidDate.Message}, nil
	}
	free, err := s.tracker.IsFree(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("checking slot availability: %w", err)
	}
	if !free {
		return &entities.AvailabilityResponse{Available: false, Message: apperrors.ErrSlotTaken.Message}, nil
	}
	return &entities.AvailabilityResponse{Available: true}, nil
}

// SubmitReservation is the submit handler the forms used to run in the
// browser: validate, reserve the hour bucket, then either start a checkout
// session (boutique pay-now) or build the calendar links and dispatch the
// reservation email. Every failure is terminal for this attempt; nothing is
// retried.
func (s *ReservationService) SubmitReservation(ctx context.Context, variant booking.Variant, req entities.ReservationRequest) (*entities.SubmitResult, error) {
	cfg := variant.Config()

	if ok, reason := booking.ValidateDateTime(variant, req.Date); !ok {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, reason)
	}

	if req.PayNow && cfg.AllowsPayNow {
		return s.submitWithPayment(ctx, variant, req)
	}

	var start time.Time
	hasStart := false
	if req.Date != "" {
		parsed, err := booking.ParseLocalDateTime(req.Date)
		if err != nil {
			return nil, apperrors.ErrInvalidDate
		}
		start = parsed
		hasStart = true
		if cfg.TracksSlots {
			if err := s.reserveSlot(ctx, start); err != nil {
				return nil, err
			}
		}
	}

	params := entities.ReservationEmailParams{
		Nom:     req.Nom,
		Prenom:  req.Prenom,
		Email:   req.Email,
		Date:    req.Date,
		Message: req.Message,
		Forfait: req.Forfait,
	}
	if hasStart {
		links := calendar.BuildLinks(calendar.Event{
			Title:       fmt.Sprintf("%s - %s %s", cfg.TitlePrefix, req.Prenom, req.Nom),
			Start:       start,
			Description: req.Message,
			Location:    cfg.Location,
		}, time.Now())
		params.EventLink = links.GoogleURL
		params.ICSLink = links.ICSDataURI
		params.EventDate = links.OutlookURL
		params.EventDateHTML = calendar.OutlookAnchor(links.OutlookURL)
	}

	if err := s.mailer.SendReservation(ctx, s.serviceID, cfg.TemplateID, params); err != nil {
		log.Printf("EmailJS send failed for %s reservation: %v", variant, err)
		return nil, apperrors.ErrEmailSend
	}

	code := newReservationCode()
	reservation := s.record(variant, req, start, hasStart, code, statusConfirmed, "", "")
	if s.sender != nil {
		s.sender.NotifyOwner(reservation, statusConfirmed)
	}

	return &entities.SubmitResult{
		ReservationCode: code,
		Message:         "Réservation envoyée automatiquement au gérant !",
	}, nil
}

func (s *ReservationService) submitWithPayment(ctx context.Context, variant booking.Variant, req entities.ReservationRequest) (*entities.SubmitResult, error) {
	if req.Forfait == "" {
		return nil, apperrors.ErrMissingForfait
	}
	amount := booking.AmountForForfait(req.Forfait)
	if amount == 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if req.Date == "" {
		return nil, apperrors.ErrMissingDate
	}
	start, err := booking.ParseLocalDateTime(req.Date)
	if err != nil {
		return nil, apperrors.ErrInvalidDate
	}
	if err := s.reserveSlot(ctx, start); err != nil {
		return nil, err
	}

	sessionURL, sessionID, err := s.checkout.CreateCheckoutSession(int64(amount), "eur", req.Forfait, req.Email)
	if err != nil {
		log.Printf("Failed creating checkout session for forfait %q: %v", req.Forfait, err)
		return nil, apperrors.ErrCheckoutSession
	}

	// No email on this path; the confirmation goes out once the webhook lands.
	code := newReservationCode()
	s.record(variant, req, start, true, code, statusPending, statusPending, sessionID)

	return &entities.SubmitResult{
		ReservationCode:   code,
		CheckoutSessionID: sessionID,
		CheckoutURL:       sessionURL,
	}, nil
}

// ConfirmPaidReservation is called when the checkout session completes.
func (s *ReservationService) ConfirmPaidReservation(sessionID string) error {
	if err := s.store.UpdateStatusBySessionID(sessionID, statusConfirmed, statusSucceeded); err != nil {
		return err
	}
	reservation, err := s.store.GetReservationByStripeSessionID(sessionID)
	if err != nil {
		return err
	}
	if s.sender != nil {
		s.sender.NotifyOwner(*reservation, statusConfirmed)
	}
	return nil
}

// CancelRefundedReservation marks a refunded booking canceled and frees its
// hour bucket again.
func (s *ReservationService) CancelRefundedReservation(ctx context.Context, sessionID string) error {
	reservation, err := s.store.GetReservationByStripeSessionID(sessionID)
	if err != nil {
		return err
	}
	if err := s.store.UpdateStatusBySessionID(sessionID, statusCanceled, statusRefunded); err != nil {
		return err
	}
	if reservation.StartTime.Valid {
		if err := s.tracker.Release(ctx, reservation.StartTime.Time); err != nil {
			log.Printf("Could not release slot for canceled reservation %s: %v", reservation.Code, err)
		}
	}
	if s.sender != nil {
		s.sender.NotifyOwner(*reservation, statusCanceled)
	}
	return nil
}

// SlotBuckets exposes the tracker's current state for the admin listing.
func (s *ReservationService) SlotBuckets(ctx context.Context) (map[string]int, error) {
	return s.tracker.Buckets(ctx)
}

// FreeSlotBucket clears one hour bucket by key (admin action).
func (s *ReservationService) FreeSlotBucket(ctx context.Context, key string) error {
	return s.tracker.Free(ctx, key)
}

func (s *ReservationService) reserveSlot(ctx context.Context, start time.Time) error {
	accepted, err := s.tracker.Reserve(ctx, start)
	if err != nil {
		return fmt.Errorf("reserving slot: %w", err)
	}
	if !accepted {
		return apperrors.ErrSlotTaken
	}
	return nil
}

// record persists the reservation. The dispatch already happened by the time
// we get here, so a storage failure is logged rather than surfaced.
func (s *ReservationService) record(variant booking.Variant, req entities.ReservationRequest, start time.Time, hasStart bool, code, status, paymentStatus, sessionID string) db.Reservation {
	now := time.Now().UTC()
	reservation := db.Reservation{
		Code:            code,
		Nom:             req.Nom,
		Prenom:          req.Prenom,
		Email:           req.Email,
		Message:         req.Message,
		Forfait:         req.Forfait,
		Variant:         string(variant),
		Status:          status,
		PaymentStatus:   paymentStatus,
		StripeSessionID: sessionID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if hasStart {
		reservation.StartTime = sql.NullTime{Time: start, Valid: true}
	}
	if s.store != nil {
		if err := s.store.CreateReservation(&reservation); err != nil {
			log.Printf("Error recording reservation %s: %v", code, err)
		}
	}
	return reservation
}

func newReservationCode() string {
	return fmt.Sprintf("%08X", time.Now().UnixNano()%100000000)
}
