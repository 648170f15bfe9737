package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SalesmanLoginRequest authenticates a delivery worker by id + mobile. The
// issued token carries role "salesman" and only unlocks read endpoints.
type SalesmanLoginRequest struct {
	SalesmanID string `json:"salesman_id" validate:"required,uuid"`
	Mobile     string `json:"mobile" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	ExpiresIn    int          `json:"expires_in"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	SalesmanID *string `json:"salesman_id,omitempty"`
}
