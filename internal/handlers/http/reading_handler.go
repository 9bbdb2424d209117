package http

import (
	errs "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sensordash/backend/internal/domain/errors"
	"github.com/sensordash/backend/internal/domain/ports"
	"github.com/sensordash/backend/internal/handlers/dto"
	"github.com/sensordash/backend/internal/services"
)

// ReadingHandler lida com as rotas de consulta da coleção de sensores
type ReadingHandler struct {
	readingService *services.ReadingService
	database       string
	collection     string
	logger         ports.Logger
}

// NewReadingHandler cria um novo ReadingHandler.
// database e collection aparecem na rota de diagnóstico.
func NewReadingHandler(readingService *services.ReadingService, database, collection string, logger ports.Logger) *ReadingHandler {
	return &ReadingHandler{
		readingService: readingService,
		database:       database,
		collection:     collection,
		logger:         logger,
	}
}

// GetData lista leituras filtradas em ordem cronológica ascendente
//
//	@Summary	Lista leituras de sensores
//	@Tags		data
//	@Produce	json
//	@Param		limit		query		int		false	"Máximo de leituras (default 100)"
//	@Param		start_date	query		string	false	"Limite inferior ISO-8601 de created_at"
//	@Param		end_date	query		string	false	"Limite superior ISO-8601 de created_at"
//	@Success	200			{object}	dto.DataResponse
//	@Failure	400			{object}	dto.Problem
//	@Failure	500			{object}	dto.Problem
//	@Router		/api/data [get]
func (h *ReadingHandler) GetData(c *gin.Context) {
	limit := int64(services.DefaultFeedLimit)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			dto.RenderProblem(c, dto.ValidationProblem(c, []dto.FieldError{{Field: "limit", Tag: "numeric"}}))
			return
		}
		limit = parsed
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	page, err := h.readingService.ListReadings(c.Request.Context(), services.ListReadingsInput{
		Limit:     limit,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		if errs.Is(err, errors.ErrInvalidDate) {
			dto.RenderProblem(c, dto.ValidationProblemKey(c, "error.invalid_date"))
			return
		}
		h.logger.Error("failed to fetch readings", "error", err)
		dto.RenderProblem(c, dto.InternalProblem(c))
		return
	}

	c.JSON(http.StatusOK, dto.DataResponse{
		Feeds: dto.ToFeedResponses(page.Feeds),
		Channel: dto.ChannelResponse{
			ID:   "mongodb_channel",
			Name: "MongoDB Sensor Data",
		},
		Stats: dto.FeedStatsResponse{
			Total: page.Total,
			Valid: page.Valid,
			FiltersApplied: dto.AppliedFilters{
				Limit:     limit,
				StartDate: optional(startDate),
				EndDate:   optional(endDate),
			},
		},
	})
}

// Health reporta a conexão com o store e o total de documentos
//
//	@Summary	Health check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	dto.HealthResponse
//	@Failure	500	{object}	dto.HealthErrorResponse
//	@Router		/api/health [get]
func (h *ReadingHandler) Health(c *gin.Context) {
	status, err := h.readingService.Health(c.Request.Context())
	if err != nil {
		h.logger.Error("health check failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.HealthErrorResponse{
			Status:   "error",
			Database: "disconnected",
			Error:    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:       "healthy",
		Database:     "connected",
		TotalRecords: status.TotalRecords,
	})
}

// Test devolve um documento de exemplo e os contadores estruturais
//
//	@Summary	Diagnóstico da coleção
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	dto.TestResponse
//	@Failure	500	{object}	dto.Problem
//	@Router		/api/test [get]
func (h *ReadingHandler) Test(c *gin.Context) {
	diag, err := h.readingService.Inspect(c.Request.Context())
	if err != nil {
		h.logger.Error("collection inspection failed", "error", err)
		dto.RenderProblem(c, dto.InternalProblem(c))
		return
	}

	c.JSON(http.StatusOK, dto.TestResponse{
		SampleDocument: diag.Sample,
		Counts: dto.StructuralCounts{
			Total:      diag.Counts.Total,
			WithField1: diag.Counts.WithField1,
			WithField2: diag.Counts.WithField2,
		},
		DateRange: dto.DateRangeResponse{
			Oldest: diag.Oldest,
			Newest: diag.Newest,
		},
		ConnectionInfo: dto.ConnectionInfo{
			Database:   h.database,
			Collection: h.collection,
		},
	})
}

// Stats calcula estatísticas numéricas sobre a coleção inteira
//
//	@Summary	Estatísticas detalhadas
//	@Tags		data
//	@Produce	json
//	@Success	200	{object}	dto.StatsResponse
//	@Failure	500	{object}	dto.Problem
//	@Router		/api/stats [get]
func (h *ReadingHandler) Stats(c *gin.Context) {
	stats, err := h.readingService.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to aggregate stats", "error", err)
		dto.RenderProblem(c, dto.InternalProblem(c))
		return
	}

	c.JSON(http.StatusOK, dto.ToStatsResponse(stats))
}

// optional devolve nil para strings vazias, ecoando o filtro como veio
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
