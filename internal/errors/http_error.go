package errors

import "net/http"

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// User-facing messages stay in French, they travel straight to the form.
var (
	ErrSlotTaken       = NewHTTPError(http.StatusConflict, "Désolé, un coaching est déjà réservé pour cette heure. Choisissez une autre heure.")
	ErrMissingForfait  = NewHTTPError(http.StatusBadRequest, "Veuillez choisir un forfait avant de payer.")
	ErrInvalidAmount   = NewHTTPError(http.StatusBadRequest, "Montant invalide pour le forfait sélectionné.")
	ErrMissingDate     = NewHTTPError(http.StatusBadRequest, "Veuillez choisir une date/heure pour le coaching.")
	ErrInvalidDate     = NewHTTPError(http.StatusBadRequest, "Date ou heure invalide.")
	ErrEmailSend       = NewHTTPError(http.StatusBadGateway, "Erreur lors de l'envoi, réessayez.")
	ErrCheckoutSession = NewHTTPError(http.StatusBadGateway, "Impossible de créer la session de paiement. Réessayez plus tard.")
)

// Helper for common errors
var (
	ErrUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
)
