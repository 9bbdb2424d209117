package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sensordash/backend/internal/domain/entities"
	domainerrors "github.com/sensordash/backend/internal/domain/errors"
	"github.com/sensordash/backend/internal/domain/repositories"
)

// UserRepository implementa repositories.UserRepository sobre MongoDB
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *mongo.Database, collection string) repositories.UserRepository {
	return &UserRepository{collection: db.Collection(collection)}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	doc := toUserDocument(user)

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		// O índice único fecha a corrida que a checagem prévia não cobre
		if mongo.IsDuplicateKeyError(err) {
			return domainerrors.ErrEmailAlreadyExists
		}
		return err
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	var doc userDocument

	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return toUserEntity(&doc)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var doc userDocument

	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return toUserEntity(&doc)
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	update := bson.M{"$set": bson.M{
		"nome":   user.Nome,
		"email":  user.Email.String(),
		"funcao": string(user.Funcao),
		"status": string(user.Status),
		"senha":  user.SenhaHash,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"id": user.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainerrors.ErrEmailAlreadyExists
		}
		return err
	}

	if result.MatchedCount == 0 {
		return domainerrors.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return domainerrors.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	// senha nunca sai da projeção de listagem
	opts := options.Find().
		SetSort(bson.D{{Key: "id", Value: 1}}).
		SetProjection(bson.M{"_id": 0, "senha": 0})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(docs))
	for i := range docs {
		user, err := toUserEntity(&docs[i])
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

func (r *UserRepository) MaxID(ctx context.Context) (int64, error) {
	var doc userDocument

	opts := options.FindOne().
		SetSort(bson.D{{Key: "id", Value: -1}}).
		SetProjection(bson.M{"_id": 0, "id": 1})

	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}

	return doc.ID, nil
}
