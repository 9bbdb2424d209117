package entities

import (
	"errors"

	"github.com/sensordash/backend/internal/domain/valueobjects"
)

// Sentinelas de presença; os handlers os mapeiam para erros de
// validação por campo. O binding do Gin não cobre valores só de
// espaços, então a checagem acontece aqui, depois do trim.
var (
	ErrNomeRequired  = errors.New("nome is required")
	ErrEmailRequired = errors.New("email is required")
	ErrSenhaRequired = errors.New("senha is required")
)

// User representa um usuário do painel de sensores.
// SenhaHash guarda o hash bcrypt e nunca é serializado em respostas.
type User struct {
	ID        int64
	Nome      string
	Email     valueobjects.Email
	Funcao    Funcao
	Status    Status
	SenhaHash string
}

// IsAtivo verifica se o usuário está ativo
func (u *User) IsAtivo() bool {
	return u.Status == StatusAtivo
}

// Validate valida regras de negócio da entidade User.
// A API exige apenas presença dos campos obrigatórios; formato fica a
// cargo do cliente, como no sistema original.
func (u *User) Validate() error {
	if u.Nome == "" {
		return ErrNomeRequired
	}

	if u.Email.String() == "" {
		return ErrEmailRequired
	}

	if u.SenhaHash == "" {
		return ErrSenhaRequired
	}

	return nil
}
