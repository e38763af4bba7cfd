package user

import "time"

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose the hash in JSON
	CreatedAt    time.Time `json:"createdAt"`
}
