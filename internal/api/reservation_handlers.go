package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"tricoterie/internal/booking"
	"tricoterie/internal/entities"
	apperrors "tricoterie/internal/errors"
	"tricoterie/internal/service"
)

type ReservationHandler struct {
	Service *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

// ValidateDate backs the form's live field validation.
func (h *ReservationHandler) ValidateDate(w http.ResponseWriter, r *http.Request) {
	var req ValidateDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	variant, err := booking.ParseVariant(req.Variant)
	if err != nil {
		http.Error(w, "Unknown reservation variant", http.StatusBadRequest)
		return
	}
	valid, message := h.Service.ValidateDate(variant, req.Date)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ValidateDateResponse{Valid: valid, Message: message})
}

func (h *ReservationHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req entities.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	variant, err := booking.ParseVariant(req.Variant)
	if err != nil {
		http.Error(w, "Unknown reservation variant", http.StatusBadRequest)
		return
	}
	resp, err := h.Service.CheckAvailability(r.Context(), variant, req.Date)
	if err != nil {
		http.Error(w, "Error checking availability", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *ReservationHandler) SubmitReservation(w http.ResponseWriter, r *http.Request) {
	variant, err := booking.ParseVariant(mux.Vars(r)["variant"])
	if err != nil {
		http.Error(w, "Unknown reservation variant", http.StatusBadRequest)
		return
	}
	var req entities.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	result, err := h.Service.SubmitReservation(r.Context(), variant, req)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetForfaits lists the coaching plans and their prices in euro cents.
func (h *ReservationHandler) GetForfaits(w http.ResponseWriter, r *http.Request) {
	prices := booking.ForfaitPrices()
	forfaits := make([]entities.ForfaitPrice, 0, len(prices))
	for forfait, amount := range prices {
		forfaits = append(forfaits, entities.ForfaitPrice{Forfait: forfait, Amount: amount})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(forfaits)
}

func writeError(w http.ResponseWriter, err error) {
	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		http.Error(w, httpErr.Message, httpErr.Code)
		return
	}
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
