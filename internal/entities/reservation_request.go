package entities

type ReservationRequest struct {
	Nom     string `json:"nom"`
	Prenom  string `json:"prenom"`
	Email   string `json:"email"`
	Date    string `json:"date"` // local wall clock, e.g. "2026-01-08T14:30"
	Message string `json:"message"`
	Forfait string `json:"forfait"`
	PayNow  bool   `json:"pay_now"`
}

type SubmitResult struct {
	Message           string `json:"message,omitempty"`
	ReservationCode   string `json:"reservation_code,omitempty"`
	CheckoutSessionID string `json:"checkout_session_id,omitempty"`
	CheckoutURL       string `json:"checkout_url,omitempty"`
}
