package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/sensordash/backend/internal/domain/entities"
	"github.com/sensordash/backend/internal/domain/repositories"
)

// ReadingRepository implementa repositories.ReadingRepository sobre a
// coleção de sensores. Somente leitura: quem escreve é o ingestor externo.
type ReadingRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewReadingRepository cria um novo ReadingRepository
func NewReadingRepository(client *mongo.Client, db *mongo.Database, collection string) repositories.ReadingRepository {
	return &ReadingRepository{
		client:     client,
		collection: db.Collection(collection),
	}
}

func (r *ReadingRepository) List(ctx context.Context, filter repositories.ReadingFilter) ([]*entities.SensorReading, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(filter.Limit).
		SetProjection(bson.M{"_id": 0, "field1": 1, "field2": 1, "created_at": 1})

	cursor, err := r.collection.Find(ctx, readingRangeFilter(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []readingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	readings := make([]*entities.SensorReading, 0, len(docs))
	for i := range docs {
		readings = append(readings, toReadingEntity(&docs[i]))
	}

	return readings, nil
}

func (r *ReadingRepository) Sample(ctx context.Context) (map[string]any, error) {
	var doc map[string]any

	opts := options.FindOne().SetProjection(bson.M{"_id": 0})

	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return doc, nil
}

func (r *ReadingRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *ReadingRepository) CollectionStats(ctx context.Context) (*entities.CollectionStats, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	withField1, err := r.collection.CountDocuments(ctx, fieldPresentFilter("field1"))
	if err != nil {
		return nil, err
	}

	withField2, err := r.collection.CountDocuments(ctx, fieldPresentFilter("field2"))
	if err != nil {
		return nil, err
	}

	withBoth, err := r.collection.CountDocuments(ctx, fieldPresentFilter("field1", "field2"))
	if err != nil {
		return nil, err
	}

	return &entities.CollectionStats{
		Total:      total,
		WithField1: withField1,
		WithField2: withField2,
		WithBoth:   withBoth,
	}, nil
}

func (r *ReadingRepository) FieldStats(ctx context.Context, field string) (*entities.FieldStats, error) {
	cursor, err := r.collection.Aggregate(ctx, fieldStatsPipeline(field))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Avg   float64 `bson:"avg"`
		Min   float64 `bson:"min"`
		Max   float64 `bson:"max"`
		Count int64   `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, nil
	}

	return &entities.FieldStats{
		Avg:   results[0].Avg,
		Min:   results[0].Min,
		Max:   results[0].Max,
		Count: results[0].Count,
	}, nil
}

func (r *ReadingRepository) DateRange(ctx context.Context) (*time.Time, *time.Time, error) {
	oldest, err := r.boundary(ctx, 1)
	if err != nil {
		return nil, nil, err
	}

	newest, err := r.boundary(ctx, -1)
	if err != nil {
		return nil, nil, err
	}

	return oldest, newest, nil
}

func (r *ReadingRepository) boundary(ctx context.Context, direction int) (*time.Time, error) {
	var doc readingDocument

	opts := options.FindOne().
		SetSort(bson.D{{Key: "created_at", Value: direction}}).
		SetProjection(bson.M{"_id": 0, "created_at": 1})

	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &doc.CreatedAt, nil
}

func (r *ReadingRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}
