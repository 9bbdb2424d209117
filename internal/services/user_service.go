package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sensordash/backend/internal/domain/entities"
	"github.com/sensordash/backend/internal/domain/errors"
	"github.com/sensordash/backend/internal/domain/ports"
	"github.com/sensordash/backend/internal/domain/repositories"
	"github.com/sensordash/backend/internal/domain/valueobjects"
)

// UserService contém a lógica de negócio para usuários
type UserService struct {
	userRepo repositories.UserRepository
	events   ports.EventPublisher
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	events ports.EventPublisher,
	logger ports.Logger,
) *UserService {
	if events == nil {
		events = ports.NoopPublisher{}
	}
	return &UserService{
		userRepo: userRepo,
		events:   events,
		logger:   logger,
	}
}

// CreateUserInput representa os dados para criar um usuário
type CreateUserInput struct {
	Nome   string
	Email  string
	Senha  string
	Funcao string
	Status string
}

// UpdateUserInput representa os dados para atualizar um usuário.
// Senha só é trocada quando fornecida junto com a confirmação idêntica.
type UpdateUserInput struct {
	Nome           string
	Email          string
	Funcao         string
	Status         string
	Senha          string
	ConfirmarSenha string
}

// userEvent é o payload publicado no hub; nunca carrega a senha
type userEvent struct {
	ID     int64  `json:"id"`
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	Funcao string `json:"funcao"`
	Status string `json:"status"`
}

func toUserEvent(user *entities.User) userEvent {
	return userEvent{
		ID:     user.ID,
		Nome:   user.Nome,
		Email:  user.Email.String(),
		Funcao: string(user.Funcao),
		Status: string(user.Status),
	}
}

// ListUsers retorna todos os usuários em ordem ascendente de id
func (s *UserService) ListUsers(ctx context.Context) ([]*entities.User, error) {
	return s.userRepo.List(ctx)
}

// CreateUser cria um novo usuário com id = max(id) + 1 (1 quando vazio).
// A varredura max+1 não é atômica sob escritores concorrentes; o índice
// único de id/email no store segura a invariante.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*entities.User, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("creating user", "email", email.String())

	existing, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrEmailAlreadyExists
	}

	maxID, err := s.userRepo.MaxID(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:        maxID + 1,
		Nome:      trimmed(input.Nome),
		Email:     email,
		Funcao:    funcaoOrDefault(input.Funcao),
		Status:    statusOrDefault(input.Status),
		SenhaHash: string(hash),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.events.Publish(ports.EventUserCreated, toUserEvent(user))

	return user, nil
}

// UpdateUser atualiza nome, email e, quando fornecidos, funcao, status e
// senha. Os demais campos ficam intactos.
func (s *UserService) UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}

	// Conflito só quando o email normalizado pertence a outro usuário
	other, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != id {
		return nil, errors.ErrEmailAlreadyExists
	}

	if input.Senha != "" {
		if input.Senha != input.ConfirmarSenha {
			return nil, errors.ErrPasswordMismatch
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Senha), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.SenhaHash = string(hash)
	}

	user.Nome = trimmed(input.Nome)
	user.Email = email
	if input.Funcao != "" {
		user.Funcao = entities.Funcao(input.Funcao)
	}
	if input.Status != "" {
		user.Status = entities.Status(input.Status)
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user updated", "id", id)
	s.events.Publish(ports.EventUserUpdated, toUserEvent(user))

	return user, nil
}

// DeleteUser remove o usuário
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", "id", id)
	s.events.Publish(ports.EventUserDeleted, userEvent{ID: id})

	return nil
}

// Authenticate verifica email e senha. Email desconhecido e senha errada
// retornam o mesmo erro de autenticação, nunca um erro de validação.
func (s *UserService) Authenticate(ctx context.Context, email, senha string) (*entities.User, error) {
	normalized := valueobjects.Normalize(email)

	user, err := s.userRepo.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(senha)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	return user, nil
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

func funcaoOrDefault(funcao string) entities.Funcao {
	if funcao == "" {
		return entities.DefaultFuncao
	}
	return entities.Funcao(funcao)
}

func statusOrDefault(status string) entities.Status {
	if status == "" {
		return entities.DefaultStatus
	}
	return entities.Status(status)
}
