package entities

// ForfaitPrice lists one plan and its price in euro cents.
type ForfaitPrice struct {
	Forfait string `json:"forfait"`
	Amount  int    `json:"amount"`
}
