package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o email já está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("não autorizado")
	ErrInvalidQuantity    = errors.New("quantidade deve ser maior que zero")
	ErrInsufficientStock  = errors.New("estoque não pode ficar negativo")
	ErrStockConflict      = errors.New("estoque foi alterado por outra sessão")
)
