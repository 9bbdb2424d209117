package services

import (
	"context"
	"strings"
	"time"

	"github.com/sensordash/backend/internal/domain/entities"
	"github.com/sensordash/backend/internal/domain/errors"
	"github.com/sensordash/backend/internal/domain/ports"
	"github.com/sensordash/backend/internal/domain/repositories"
)

// DefaultFeedLimit é o teto da consulta quando o cliente não informa limit
const DefaultFeedLimit = 100

// isoLayouts são os formatos aceitos para start_date/end_date, na ordem
// em que o original os aceitava (fromisoformat com 'Z' trocado por offset)
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ReadingService contém a lógica de consulta sobre a coleção de sensores
type ReadingService struct {
	readingRepo repositories.ReadingRepository
	logger      ports.Logger
}

// NewReadingService cria um novo ReadingService
func NewReadingService(readingRepo repositories.ReadingRepository, logger ports.Logger) *ReadingService {
	return &ReadingService{
		readingRepo: readingRepo,
		logger:      logger,
	}
}

// ListReadingsInput são os filtros crus vindos da query string
type ListReadingsInput struct {
	Limit     int64
	StartDate string
	EndDate   string
}

// FeedPage é a página de leituras em ordem cronológica ascendente
type FeedPage struct {
	Feeds []*entities.SensorReading
	Total int
	Valid int
}

// HealthStatus é o resultado do health check
type HealthStatus struct {
	TotalRecords int64
}

// Diagnostics agrega a inspeção estrutural da coleção (rota de teste)
type Diagnostics struct {
	Sample map[string]any
	Counts entities.CollectionStats
	Oldest *time.Time
	Newest *time.Time
}

// DetailedStats agrega os contadores e as estatísticas numéricas por campo
type DetailedStats struct {
	Counts entities.CollectionStats
	Field1 *entities.FieldStats
	Field2 *entities.FieldStats
}

// ListReadings busca até input.Limit leituras dentro do intervalo e as
// devolve em ordem cronológica ascendente. O store responde em ordem
// descendente (os registros mais recentes primeiro) e a página é
// invertida aqui, como no serviço original.
func (s *ReadingService) ListReadings(ctx context.Context, input ListReadingsInput) (*FeedPage, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	filter := repositories.ReadingFilter{Limit: limit}

	if input.StartDate != "" {
		start, err := parseISODate(input.StartDate)
		if err != nil {
			return nil, err
		}
		filter.StartDate = &start
	}

	if input.EndDate != "" {
		end, err := parseISODate(input.EndDate)
		if err != nil {
			return nil, err
		}
		filter.EndDate = &end
	}

	readings, err := s.readingRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	// reverter para ordem cronológica
	for i, j := 0, len(readings)-1; i < j; i, j = i+1, j-1 {
		readings[i], readings[j] = readings[j], readings[i]
	}

	valid := 0
	for _, r := range readings {
		if r.IsComplete() {
			valid++
		}
	}

	s.logger.Debug("readings fetched",
		"count", len(readings),
		"valid", valid,
		"limit", limit,
	)

	return &FeedPage{
		Feeds: readings,
		Total: len(readings),
		Valid: valid,
	}, nil
}

// Health pinga o store e conta os documentos da coleção
func (s *ReadingService) Health(ctx context.Context) (*HealthStatus, error) {
	if err := s.readingRepo.Ping(ctx); err != nil {
		return nil, err
	}

	count, err := s.readingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &HealthStatus{TotalRecords: count}, nil
}

// Inspect retorna um documento de exemplo e os contadores estruturais
func (s *ReadingService) Inspect(ctx context.Context) (*Diagnostics, error) {
	sample, err := s.readingRepo.Sample(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.readingRepo.CollectionStats(ctx)
	if err != nil {
		return nil, err
	}

	oldest, newest, err := s.readingRepo.DateRange(ctx)
	if err != nil {
		return nil, err
	}

	return &Diagnostics{
		Sample: sample,
		Counts: *counts,
		Oldest: oldest,
		Newest: newest,
	}, nil
}

// Stats calcula min/max/avg/count por campo sobre a coleção inteira.
// A agregação de um campo só roda quando existe ao menos um registro
// com o campo preenchido.
func (s *ReadingService) Stats(ctx context.Context) (*DetailedStats, error) {
	counts, err := s.readingRepo.CollectionStats(ctx)
	if err != nil {
		return nil, err
	}

	stats := &DetailedStats{Counts: *counts}

	if counts.WithField1 > 0 {
		stats.Field1, err = s.readingRepo.FieldStats(ctx, "field1")
		if err != nil {
			return nil, err
		}
	}

	if counts.WithField2 > 0 {
		stats.Field2, err = s.readingRepo.FieldStats(ctx, "field2")
		if err != nil {
			return nil, err
		}
	}

	return stats, nil
}

// parseISODate aceita os formatos ISO-8601 usados pelo dashboard
func parseISODate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.ErrInvalidDate
}
