package repository

import "github.com/medstock/medstock-pro/internal/domain/entity"

// UserRepository porta de persistência para usuários.
type UserRepository interface {
	Create(user *entity.User) error
	GetByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}
