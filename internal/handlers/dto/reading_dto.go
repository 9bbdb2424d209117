package dto

import (
	"time"

	"github.com/sensordash/backend/internal/domain/entities"
	"github.com/sensordash/backend/internal/services"
)

// FeedResponse é uma leitura individual do feed
type FeedResponse struct {
	Field1    *float64  `json:"field1"`
	Field2    *float64  `json:"field2"`
	CreatedAt time.Time `json:"created_at"`
}

// ChannelResponse identifica a origem dos dados para o dashboard
type ChannelResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AppliedFilters ecoa os filtros crus recebidos na query string
type AppliedFilters struct {
	Limit     int64   `json:"limit"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// FeedStatsResponse é o bloco de resumo da listagem
type FeedStatsResponse struct {
	Total          int            `json:"total"`
	Valid          int            `json:"valid"`
	FiltersApplied AppliedFilters `json:"filters_applied"`
}

// DataResponse é a resposta de GET /api/data
type DataResponse struct {
	Feeds   []FeedResponse    `json:"feeds"`
	Channel ChannelResponse   `json:"channel"`
	Stats   FeedStatsResponse `json:"stats"`
}

// HealthResponse é a resposta de GET /api/health quando saudável
type HealthResponse struct {
	Status       string `json:"status"`
	Database     string `json:"database"`
	TotalRecords int64  `json:"total_records"`
}

// HealthErrorResponse é a resposta de GET /api/health quando degradado
type HealthErrorResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// StructuralCounts descreve quantos documentos possuem cada campo
type StructuralCounts struct {
	Total      int64 `json:"total"`
	WithField1 int64 `json:"with_field1"`
	WithField2 int64 `json:"with_field2"`
}

// DateRangeResponse delimita o período coberto pela coleção
type DateRangeResponse struct {
	Oldest *time.Time `json:"oldest"`
	Newest *time.Time `json:"newest"`
}

// ConnectionInfo nomeia o banco e a coleção consultados
type ConnectionInfo struct {
	Database   string `json:"database"`
	Collection string `json:"collection"`
}

// TestResponse é a resposta de GET /api/test
type TestResponse struct {
	SampleDocument map[string]any    `json:"sample_document"`
	Counts         StructuralCounts  `json:"counts"`
	DateRange      DateRangeResponse `json:"date_range"`
	ConnectionInfo ConnectionInfo    `json:"connection_info"`
}

// FieldStatsResponse é o agregado min/max/avg/count de um campo
type FieldStatsResponse struct {
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int64   `json:"count"`
}

// StatsResponse é a resposta de GET /api/stats
type StatsResponse struct {
	TotalRecords          int64               `json:"total_records"`
	RecordsWithField1     int64               `json:"records_with_field1"`
	RecordsWithField2     int64               `json:"records_with_field2"`
	RecordsWithBothFields int64               `json:"records_with_both_fields"`
	Field1                *FieldStatsResponse `json:"field1,omitempty"`
	Field2                *FieldStatsResponse `json:"field2,omitempty"`
}

// ToFeedResponses converte as leituras mantendo a ordem recebida
func ToFeedResponses(readings []*entities.SensorReading) []FeedResponse {
	feeds := make([]FeedResponse, len(readings))
	for i, r := range readings {
		feeds[i] = FeedResponse{
			Field1:    r.Field1,
			Field2:    r.Field2,
			CreatedAt: r.CreatedAt,
		}
	}
	return feeds
}

// ToFieldStatsResponse converte o agregado de um campo, preservando nil
func ToFieldStatsResponse(stats *entities.FieldStats) *FieldStatsResponse {
	if stats == nil {
		return nil
	}
	return &FieldStatsResponse{
		Avg:   stats.Avg,
		Min:   stats.Min,
		Max:   stats.Max,
		Count: stats.Count,
	}
}

// ToStatsResponse monta a resposta de estatísticas detalhadas
func ToStatsResponse(stats *services.DetailedStats) StatsResponse {
	return StatsResponse{
		TotalRecords:          stats.Counts.Total,
		RecordsWithField1:     stats.Counts.WithField1,
		RecordsWithField2:     stats.Counts.WithField2,
		RecordsWithBothFields: stats.Counts.WithBoth,
		Field1:                ToFieldStatsResponse(stats.Field1),
		Field2:                ToFieldStatsResponse(stats.Field2),
	}
}
