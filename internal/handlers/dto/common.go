package dto

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/moogar0880/problems"

	domainerrors "github.com/sensordash/backend/internal/domain/errors"
)

// Problem estende o documento RFC 7807 com erros de campo
type Problem struct {
	problems.DefaultProblem
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError representa um erro de validação de campo
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

// RenderProblem escreve o problema com o media type RFC 7807.
// O header precisa ser setado antes do c.JSON para prevalecer.
func RenderProblem(c *gin.Context, p *Problem) {
	c.Header("Content-Type", problems.ProblemMediaType)
	c.JSON(p.Status, p)
}

func newProblem(c *gin.Context, problemType string, status int, titleKey, detailKey string, params ...map[string]interface{}) *Problem {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}

	p := problems.NewDetailedProblem(status, T(c, detailKey, params...))
	p.Type = baseURL + problemType
	p.Title = T(c, titleKey)
	p.Instance = c.Request.URL.Path

	return &Problem{DefaultProblem: *p}
}

// ValidationProblem cria uma resposta 400 com a lista de campos inválidos
func ValidationProblem(c *gin.Context, fieldErrors []FieldError) *Problem {
	p := newProblem(
		c,
		domainerrors.ProblemTypeValidation,
		400,
		"error.validation.title",
		"error.validation.detail",
	)
	p.Errors = fieldErrors
	return p
}

// ValidationProblemKey cria uma resposta 400 com detalhe específico
// (senha sem confirmação, data malformada, id não numérico)
func ValidationProblemKey(c *gin.Context, detailKey string) *Problem {
	return newProblem(
		c,
		domainerrors.ProblemTypeValidation,
		400,
		"error.validation.title",
		detailKey,
	)
}

// NotFoundProblem cria uma resposta 404
func NotFoundProblem(c *gin.Context, resource string) *Problem {
	return newProblem(
		c,
		domainerrors.ProblemTypeNotFound,
		404,
		"error.not_found.title",
		"error.not_found.detail",
		map[string]interface{}{"Resource": resource},
	)
}

// ConflictProblem cria uma resposta 409
func ConflictProblem(c *gin.Context, detailKey string) *Problem {
	return newProblem(
		c,
		domainerrors.ProblemTypeConflict,
		409,
		"error.conflict.title",
		detailKey,
	)
}

// UnauthorizedProblem cria uma resposta 401
func UnauthorizedProblem(c *gin.Context, detailKey string) *Problem {
	return newProblem(
		c,
		domainerrors.ProblemTypeUnauthorized,
		401,
		"error.unauthorized.title",
		detailKey,
	)
}

// InternalProblem cria uma resposta 500 com detalhe genérico; a causa
// fica no log do servidor, nunca no corpo
func InternalProblem(c *gin.Context) *Problem {
	return newProblem(
		c,
		domainerrors.ProblemTypeInternal,
		500,
		"error.internal.title",
		"error.internal.detail",
	)
}

// BindingFieldErrors extrai os campos reprovados pelo binding do Gin
func BindingFieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fieldErrors := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, FieldError{
			Field: strings.ToLower(fe.Field()),
			Tag:   fe.Tag(),
		})
	}
	return fieldErrors
}
