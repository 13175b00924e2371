package types

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}
