package entities

import "time"

// User is the owning side of a payment. Account management lives in another
// service; payhub only resolves users by id to validate ownership at payment
// creation.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
