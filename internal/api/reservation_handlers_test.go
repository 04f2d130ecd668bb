package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tricoterie/internal/entities"
	"tricoterie/internal/service"
	"tricoterie/internal/slots"
)

type noopMailer struct{}

func (noopMailer) SendReservation(ctx context.Context, serviceID, templateID string, params entities.ReservationEmailParams) error {
	return nil
}

func newTestHandler() *ReservationHandler {
	svc := service.NewReservationService(
		nil,
		slots.NewTracker(slots.NewMemoryStore()),
		noopMailer{},
		&stubCheckout{},
		nil,
		"service_yl0kh3m",
	)
	return NewReservationHandler(svc)
}

func TestValidateDate(t *testing.T) {
	h := newTestHandler()
	tests := []struct {
		name    string
		body    string
		valid   bool
		message string
	}{
		{
			name:  "open tuesday morning",
			body:  `{"variant":"coaching","date":"2026-01-06T10:00"}`,
			valid: true,
		},
		{
			name:    "sunday is closed",
			body:    `{"variant":"coaching","date":"2026-01-04T10:00"}`,
			valid:   false,
			message: "Les réservations ne sont pas possibles le dimanche et le lundi.",
		},
		{
			name:    "lunch break",
			body:    `{"variant":"boutique","date":"2026-01-06T12:30"}`,
			valid:   false,
			message: "Les réservations ne sont pas possibles entre 12:00 et 14:00.",
		},
		{
			name:  "empty date is accepted",
			body:  `{"variant":"atelier","date":""}`,
			valid: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/validate-date", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			h.ValidateDate(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			var resp ValidateDateResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.valid, resp.Valid)
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Message)
			}
		})
	}
}

func TestValidateDate_UnknownVariant(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/validate-date", strings.NewReader(`{"variant":"spa","date":"2026-01-06T10:00"}`))
	rr := httptest.NewRecorder()
	h.ValidateDate(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmitReservation_RoutesVariantFromPath(t *testing.T) {
	h := newTestHandler()
	r := mux.NewRouter()
	r.HandleFunc("/api/reservations/{variant}", h.SubmitReservation).Methods("POST")

	body := `{"nom":"Dupont","prenom":"Anne","email":"anne@example.com","date":"2026-01-06T10:00","forfait":"1 mois"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reservations/coaching", strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var result entities.SubmitResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "Réservation envoyée automatiquement au gérant !", result.Message)
	assert.NotEmpty(t, result.ReservationCode)
}

func TestSubmitReservation_SlotConflictReturns409(t *testing.T) {
	h := newTestHandler()
	r := mux.NewRouter()
	r.HandleFunc("/api/reservations/{variant}", h.SubmitReservation).Methods("POST")

	body := `{"nom":"Dupont","prenom":"Anne","email":"anne@example.com","date":"2026-01-06T10:00"}`
	first := httptest.NewRequest(http.MethodPost, "/api/reservations/coaching", strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, first)
	require.Equal(t, http.StatusOK, rr.Code)

	second := httptest.NewRequest(http.MethodPost, "/api/reservations/coaching", strings.NewReader(body))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, second)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "un coaching est déjà réservé pour cette heure")
}

func TestSubmitReservation_InvalidDateReturns400(t *testing.T) {
	h := newTestHandler()
	r := mux.NewRouter()
	r.HandleFunc("/api/reservations/{variant}", h.SubmitReservation).Methods("POST")

	body := `{"nom":"Dupont","prenom":"Anne","email":"anne@example.com","date":"2026-01-05T10:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/reservations/coaching", strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCheckAvailability(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/availability", strings.NewReader(`{"variant":"coaching","date":"2026-01-06T10:00"}`))
	rr := httptest.NewRecorder()
	h.CheckAvailability(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp entities.AvailabilityResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Available)
}

func TestGetForfaits(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/forfaits", nil)
	rr := httptest.NewRecorder()
	h.GetForfaits(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var forfaits []entities.ForfaitPrice
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &forfaits))
	require.Len(t, forfaits, 3)

	amounts := map[string]int{}
	for _, f := range forfaits {
		amounts[f.Forfait] = f.Amount
	}
	assert.Equal(t, 2000, amounts["1 mois"])
	assert.Equal(t, 8000, amounts["6 mois"])
	assert.Equal(t, 12000, amounts["1 an"])
}
