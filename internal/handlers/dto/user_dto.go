package dto

import (
	"github.com/sensordash/backend/internal/domain/entities"
)

// CreateUserRequest representa a requisição para criar um usuário
type CreateUserRequest struct {
	Nome   string `json:"nome" binding:"required"`
	Email  string `json:"email" binding:"required"`
	Senha  string `json:"senha" binding:"required"`
	Funcao string `json:"funcao"`
	Status string `json:"status"`
}

// UpdateUserRequest representa a requisição para atualizar um usuário.
// Senha é opcional; quando presente exige confirmação idêntica.
type UpdateUserRequest struct {
	Nome           string `json:"nome" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Funcao         string `json:"funcao"`
	Status         string `json:"status"`
	Senha          string `json:"senha"`
	ConfirmarSenha string `json:"confirmar_senha"`
}

// LoginRequest representa a requisição de autenticação
type LoginRequest struct {
	Email string `json:"email" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}

// UserResponse representa a resposta de um usuário; nunca inclui a senha
type UserResponse struct {
	ID     int64  `json:"id"`
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	Funcao string `json:"funcao"`
	Status string `json:"status"`
}

// MessageResponse carrega a mensagem de sucesso das operações sem corpo
type MessageResponse struct {
	Message string `json:"message"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:     user.ID,
		Nome:   user.Nome,
		Email:  user.Email.String(),
		Funcao: string(user.Funcao),
		Status: string(user.Status),
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}
