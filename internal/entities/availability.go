package entities

type AvailabilityRequest struct {
	Variant string `json:"variant"`
	Date    string `json:"date"`
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}
