package repositories

import (
	"context"
	"time"

	"github.com/sensordash/backend/internal/domain/entities"
)

// ReadingFilter limita a consulta de leituras.
// Bounds nulos não entram no filtro; o limite sempre se aplica.
type ReadingFilter struct {
	Limit     int64
	StartDate *time.Time
	EndDate   *time.Time
}

// ReadingRepository define a interface de leitura sobre a coleção de
// sensores. A coleção é alimentada por um ingestor externo; este serviço
// nunca escreve nela.
type ReadingRepository interface {
	// List retorna até filter.Limit leituras em ordem descendente de
	// created_at, respeitando o intervalo do filtro.
	List(ctx context.Context, filter ReadingFilter) ([]*entities.SensorReading, error)

	// Sample retorna um documento qualquer da coleção (sem _id),
	// ou nil quando vazia.
	Sample(ctx context.Context) (map[string]any, error)

	Count(ctx context.Context) (int64, error)
	CollectionStats(ctx context.Context) (*entities.CollectionStats, error)
	FieldStats(ctx context.Context, field string) (*entities.FieldStats, error)
	DateRange(ctx context.Context) (oldest, newest *time.Time, err error)

	// Ping verifica a conexão com o store
	Ping(ctx context.Context) error
}
