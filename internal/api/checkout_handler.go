package api

import (
	"encoding/json"
	"log"
	"net/http"

	"tricoterie/internal/entities"
	apperrors "tricoterie/internal/errors"
	"tricoterie/internal/service"
)

type CheckoutHandler struct {
	Checkout service.CheckoutClient
}

func NewCheckoutHandler(checkout service.CheckoutClient) *CheckoutHandler {
	return &CheckoutHandler{Checkout: checkout}
}

// CreateCheckoutSession keeps the wire contract the reservation form relies
// on: {amount, forfait, customerEmail} in, {id} out.
func (h *CheckoutHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req entities.CheckoutSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, apperrors.ErrInvalidAmount.Message, http.StatusBadRequest)
		return
	}

	_, sessionID, err := h.Checkout.CreateCheckoutSession(int64(req.Amount), "eur", req.Forfait, req.CustomerEmail)
	if err != nil {
		log.Printf("Failed creating checkout session: %v", err)
		http.Error(w, apperrors.ErrCheckoutSession.Message, http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entities.CheckoutSessionResponse{ID: sessionID})
}
