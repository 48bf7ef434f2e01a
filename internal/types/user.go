package types

import "time"

// UserResponse is the public subset of a user. The password hash never
// leaves the auth service.
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RegisteredUserResponse additionally carries the creation timestamp,
// returned from registration only.
type RegisteredUserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
