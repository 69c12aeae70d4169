package entity

import "time"

// User representa um usuário da aplicação.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
