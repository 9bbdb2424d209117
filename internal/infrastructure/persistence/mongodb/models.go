package mongodb

import (
	"time"

	"github.com/sensordash/backend/internal/domain/entities"
	"github.com/sensordash/backend/internal/domain/valueobjects"
)

// userDocument é o documento BSON da coleção de usuários
type userDocument struct {
	ID     int64  `bson:"id"`
	Nome   string `bson:"nome"`
	Email  string `bson:"email"`
	Funcao string `bson:"funcao"`
	Status string `bson:"status"`
	Senha  string `bson:"senha,omitempty"`
}

// readingDocument é o documento BSON da coleção de sensores.
// O ingestor externo grava leituras parciais, por isso os ponteiros.
type readingDocument struct {
	Field1    *float64  `bson:"field1"`
	Field2    *float64  `bson:"field2"`
	CreatedAt time.Time `bson:"created_at"`
}

func toUserDocument(user *entities.User) *userDocument {
	return &userDocument{
		ID:     user.ID,
		Nome:   user.Nome,
		Email:  user.Email.String(),
		Funcao: string(user.Funcao),
		Status: string(user.Status),
		Senha:  user.SenhaHash,
	}
}

func toUserEntity(doc *userDocument) (*entities.User, error) {
	email, err := valueobjects.NewEmail(doc.Email)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		ID:        doc.ID,
		Nome:      doc.Nome,
		Email:     email,
		Funcao:    entities.Funcao(doc.Funcao),
		Status:    entities.Status(doc.Status),
		SenhaHash: doc.Senha,
	}, nil
}

func toReadingEntity(doc *readingDocument) *entities.SensorReading {
	return &entities.SensorReading{
		Field1:    doc.Field1,
		Field2:    doc.Field2,
		CreatedAt: doc.CreatedAt,
	}
}
