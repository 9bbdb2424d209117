package valueobjects

import (
	"errors"
	"strings"
)

var (
	ErrEmptyEmail = errors.New("email must not be empty")
)

// Email é um value object que garante a forma normalizada do email:
// sem espaços nas pontas e em minúsculas. A normalização é a chave
// natural usada nas checagens de conflito, então todo email persistido
// passa por aqui. Não há validação de formato além de presença.
type Email struct {
	value string
}

// NewEmail cria um Email normalizado
func NewEmail(email string) (Email, error) {
	normalized := Normalize(email)
	if normalized == "" {
		return Email{}, ErrEmptyEmail
	}

	return Email{value: normalized}, nil
}

// Normalize aplica trim + lowercase sem validar presença
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// String retorna o valor do email
func (e Email) String() string {
	return e.value
}

// Equals compara dois emails já normalizados
func (e Email) Equals(other Email) bool {
	return e.value == other.value
}
