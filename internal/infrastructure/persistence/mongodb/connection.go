package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/sensordash/backend/internal/domain/ports"
	"github.com/sensordash/backend/internal/infrastructure/config"
)

// Connect cria o cliente MongoDB compartilhado por todos os handlers.
// Falha de ping não é fatal: o driver conecta de forma preguiçosa e as
// requisições seguintes degradam para erro de infraestrutura, como o
// serviço original.
func Connect(cfg *config.MongoConfig, log ports.Logger) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Warn("mongodb unreachable at startup, requests will degrade",
			"database", cfg.Database,
			"error", err,
		)
		return client, nil
	}

	log.Info("mongodb connected",
		"database", cfg.Database,
		"readings_collection", cfg.ReadingsCollection,
		"users_collection", cfg.UsersCollection,
	)

	return client, nil
}

// EnsureUserIndexes cria o índice único de email na coleção de usuários.
// Fecha a corrida de criação concorrente com o mesmo email: a checagem
// prévia continua existindo para dar um 409 amigável, o índice garante a
// invariante. Best effort: com o store fora do ar o startup prossegue.
func EnsureUserIndexes(ctx context.Context, client *mongo.Client, cfg *config.MongoConfig, log ports.Logger) {
	collection := client.Database(cfg.Database).Collection(cfg.UsersCollection)

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		log.Warn("failed to ensure user indexes", "error", err)
	}
}

// Disconnect encerra o cliente no shutdown
func Disconnect(client *mongo.Client, log ports.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		log.Error("failed to disconnect from mongodb", "error", err)
	}
}
