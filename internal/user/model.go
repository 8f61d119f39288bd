package user

import "time"

type User struct {
	ID           uint
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Access   string `json:"access"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}
