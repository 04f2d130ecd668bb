package api

import (
	"encoding/json"
	"net/http"

	"tricoterie/internal/entities"
	"tricoterie/internal/repository"
	"tricoterie/internal/service"
)

type AdminHandler struct {
	Service *service.ReservationService
	Repo    *repository.ReservationRepository
}

func NewAdminHandler(svc *service.ReservationService, repo *repository.ReservationRepository) *AdminHandler {
	return &AdminHandler{Service: svc, Repo: repo}
}

func (h *AdminHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	variant := r.URL.Query().Get("variant")
	status := r.URL.Query().Get("status")
	reservations, err := h.Repo.ListReservations(date, variant, status)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entities.ReservationsList{
		Total:        len(reservations),
		Reservations: reservations,
	})
}

func (h *AdminHandler) ListSlotBuckets(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.Service.SlotBuckets(r.Context())
	if err != nil {
		http.Error(w, "Error reading slot buckets", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(buckets)
}

// FreeSlotBucket clears one hour bucket, e.g. after a phone cancellation.
func (h *AdminHandler) FreeSlotBucket(w http.ResponseWriter, r *http.Request) {
	bucket := r.URL.Query().Get("bucket")
	if bucket == "" {
		http.Error(w, "bucket required", http.StatusBadRequest)
		return
	}
	if err := h.Service.FreeSlotBucket(r.Context(), bucket); err != nil {
		http.Error(w, "Error freeing slot bucket", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Slot bucket freed"})
}
