package repositories

import (
	"context"

	"github.com/sensordash/backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id int64) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id int64) error

	// List retorna todos os usuários em ordem ascendente de id
	List(ctx context.Context) ([]*entities.User, error)

	// MaxID retorna o maior id existente, ou 0 quando a coleção está vazia.
	// A alocação max+1 é uma varredura não atômica; ver DESIGN.md.
	MaxID(ctx context.Context) (int64, error)
}
