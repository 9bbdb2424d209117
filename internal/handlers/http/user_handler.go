package http

import (
	errs "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sensordash/backend/internal/domain/entities"
	"github.com/sensordash/backend/internal/domain/errors"
	"github.com/sensordash/backend/internal/domain/ports"
	"github.com/sensordash/backend/internal/domain/valueobjects"
	"github.com/sensordash/backend/internal/handlers/dto"
	"github.com/sensordash/backend/internal/services"
)

// UserHandler lida com requisições HTTP relacionadas a usuários
type UserHandler struct {
	userService *services.UserService
	logger      ports.Logger
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService, logger ports.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers lista todos os usuários em ordem ascendente de id
//
//	@Summary	Lista usuários
//	@Tags		users
//	@Produce	json
//	@Success	200	{array}	dto.UserResponse
//	@Failure	500	{object}	dto.Problem
//	@Router		/api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		dto.RenderProblem(c, dto.InternalProblem(c))
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// CreateUser cria um novo usuário
//
//	@Summary	Cria usuário
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		user	body		dto.CreateUserRequest	true	"Dados do usuário"
//	@Success	201		{object}	dto.UserResponse
//	@Failure	400		{object}	dto.Problem
//	@Failure	409		{object}	dto.Problem
//	@Failure	500		{object}	dto.Problem
//	@Router		/api/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderProblem(c, dto.ValidationProblem(c, dto.BindingFieldErrors(err)))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), services.CreateUserInput{
		Nome:   req.Nome,
		Email:  req.Email,
		Senha:  req.Senha,
		Funcao: req.Funcao,
		Status: req.Status,
	})
	if err != nil {
		h.renderUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// UpdateUser atualiza um usuário existente
//
//	@Summary	Atualiza usuário
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"ID do usuário"
//	@Param		user	body		dto.UpdateUserRequest	true	"Campos a atualizar"
//	@Success	200		{object}	dto.UserResponse
//	@Failure	400		{object}	dto.Problem
//	@Failure	404		{object}	dto.Problem
//	@Failure	409		{object}	dto.Problem
//	@Router		/api/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderProblem(c, dto.ValidationProblem(c, dto.BindingFieldErrors(err)))
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, services.UpdateUserInput{
		Nome:           req.Nome,
		Email:          req.Email,
		Funcao:         req.Funcao,
		Status:         req.Status,
		Senha:          req.Senha,
		ConfirmarSenha: req.ConfirmarSenha,
	})
	if err != nil {
		h.renderUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteUser remove um usuário
//
//	@Summary	Remove usuário
//	@Tags		users
//	@Produce	json
//	@Param		id	path		int	true	"ID do usuário"
//	@Success	200	{object}	dto.MessageResponse
//	@Failure	404	{object}	dto.Problem
//	@Router		/api/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		h.renderUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: dto.T(c, "user.deleted")})
}

// Login autentica por email e senha; retorna o usuário, não um token
//
//	@Summary	Autentica usuário
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		credentials	body		dto.LoginRequest	true	"Credenciais"
//	@Success	200			{object}	dto.UserResponse
//	@Failure	400			{object}	dto.Problem
//	@Failure	401			{object}	dto.Problem
//	@Router		/api/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderProblem(c, dto.ValidationProblem(c, dto.BindingFieldErrors(err)))
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Senha)
	if err != nil {
		h.renderUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// userID extrai e valida o :id numérico da rota
func (h *UserHandler) userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		dto.RenderProblem(c, dto.ValidationProblemKey(c, "error.invalid_id"))
		return 0, false
	}
	return id, true
}

// renderUserError mapeia erros de domínio para a taxonomia HTTP
func (h *UserHandler) renderUserError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errors.ErrUserNotFound):
		dto.RenderProblem(c, dto.NotFoundProblem(c, "Usuário"))
	case errs.Is(err, errors.ErrEmailAlreadyExists):
		dto.RenderProblem(c, dto.ConflictProblem(c, "error.email_already_exists"))
	case errs.Is(err, errors.ErrPasswordMismatch):
		dto.RenderProblem(c, dto.ValidationProblemKey(c, "error.password_mismatch"))
	case errs.Is(err, errors.ErrInvalidCredentials):
		dto.RenderProblem(c, dto.UnauthorizedProblem(c, "error.invalid_credentials"))
	case errs.Is(err, valueobjects.ErrEmptyEmail), errs.Is(err, entities.ErrEmailRequired):
		dto.RenderProblem(c, dto.ValidationProblem(c, []dto.FieldError{{Field: "email", Tag: "required"}}))
	case errs.Is(err, entities.ErrNomeRequired):
		dto.RenderProblem(c, dto.ValidationProblem(c, []dto.FieldError{{Field: "nome", Tag: "required"}}))
	case errs.Is(err, entities.ErrSenhaRequired):
		dto.RenderProblem(c, dto.ValidationProblem(c, []dto.FieldError{{Field: "senha", Tag: "required"}}))
	default:
		h.logger.Error("user operation failed", "error", err)
		dto.RenderProblem(c, dto.InternalProblem(c))
	}
}
