package entities

// CheckoutSessionRequest mirrors the payload the reservation form posts to
// /create-checkout-session. Amount is in euro cents.
type CheckoutSessionRequest struct {
	Amount        int    `json:"amount"`
	Forfait       string `json:"forfait"`
	CustomerEmail string `json:"customerEmail"`
}

type CheckoutSessionResponse struct {
	ID string `json:"id"`
}
