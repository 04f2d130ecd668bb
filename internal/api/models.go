package api

// Date validation
type ValidateDateRequest struct {
	Variant string `json:"variant"`
	Date    string `json:"date"`
}
type ValidateDateResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// Admin auth
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type LoginResponse struct {
	Token string `json:"token"`
}
