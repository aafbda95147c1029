package auth

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	RoleName     string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
