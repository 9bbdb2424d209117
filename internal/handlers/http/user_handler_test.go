package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sensordash/backend/internal/domain/entities"
	"github.com/sensordash/backend/internal/domain/errors"
	"github.com/sensordash/backend/internal/domain/ports"
	"github.com/sensordash/backend/internal/domain/repositories"
	"github.com/sensordash/backend/internal/handlers/middleware"
	"github.com/sensordash/backend/internal/infrastructure/i18n"
	"github.com/sensordash/backend/internal/services"
)

type testLogger struct{}

func (testLogger) Info(string, ...any)        {}
func (testLogger) Error(string, ...any)       {}
func (testLogger) Debug(string, ...any)       {}
func (testLogger) Warn(string, ...any)        {}
func (l testLogger) With(...any) ports.Logger { return l }

// memUserRepo simula a coleção de usuários com índice único de email
type memUserRepo struct {
	users map[int64]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*entities.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *entities.User) error {
	for _, existing := range r.users {
		if existing.Email.Equals(user.Email) {
			return errors.ErrEmailAlreadyExists
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Email.String() == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, user *entities.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return errors.ErrUserNotFound
	}
	for _, existing := range r.users {
		if existing.ID != user.ID && existing.Email.Equals(user.Email) {
			return errors.ErrEmailAlreadyExists
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return errors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) List(_ context.Context) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		clone.SenhaHash = ""
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *memUserRepo) MaxID(_ context.Context) (int64, error) {
	var max int64
	for id := range r.users {
		if id > max {
			max = id
		}
	}
	return max, nil
}

var _ repositories.UserRepository = (*memUserRepo)(nil)

func newUserRouter(t *testing.T) (*gin.Engine, *memUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	i18nService, err := i18n.NewService("pt-BR")
	if err != nil {
		t.Fatalf("falha ao carregar catálogos: %v", err)
	}

	repo := newMemUserRepo()
	service := services.NewUserService(repo, nil, testLogger{})
	handler := NewUserHandler(service, testLogger{})

	router := gin.New()
	router.Use(middleware.NewI18nMiddleware(i18nService).DetectLanguage())

	api := router.Group("/api")
	api.GET("/users", handler.ListUsers)
	api.POST("/users", handler.CreateUser)
	api.PUT("/users/:id", handler.UpdateUser)
	api.DELETE("/users/:id", handler.DeleteUser)
	api.POST("/login", handler.Login)

	return router, repo
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createUser(t *testing.T, router *gin.Engine, nome, email, senha string) map[string]any {
	t.Helper()

	rec := doJSON(router, http.MethodPost, "/api/users", gin.H{
		"nome":  nome,
		"email": email,
		"senha": senha,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("esperava 201, obteve %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("resposta inválida: %v", err)
	}
	return body
}

func TestCreateUserEndpoint(t *testing.T) {
	t.Run("cria usuário com padrões e sem expor a senha", func(t *testing.T) {
		router, _ := newUserRouter(t)

		rec := doJSON(router, http.MethodPost, "/api/users", gin.H{
			"nome":  "Ana Souza",
			"email": "Ana@Empresa.com",
			"senha": "segredo123",
		})

		if rec.Code != http.StatusCreated {
			t.Fatalf("esperava 201, obteve %d: %s", rec.Code, rec.Body.String())
		}

		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("resposta inválida: %v", err)
		}

		if body["id"].(float64) != 1 {
			t.Errorf("esperava id 1, obteve %v", body["id"])
		}
		if body["email"] != "ana@empresa.com" {
			t.Errorf("esperava email normalizado, obteve %v", body["email"])
		}
		if body["funcao"] != "Operador" || body["status"] != "Ativo" {
			t.Errorf("esperava padrões Operador/Ativo, obteve %v/%v", body["funcao"], body["status"])
		}
		if strings.Contains(rec.Body.String(), "senha") {
			t.Error("resposta não pode conter a senha")
		}
	})

	t.Run("campos obrigatórios ausentes retornam 400 com erros de campo", func(t *testing.T) {
		router, _ := newUserRouter(t)

		rec := doJSON(router, http.MethodPost, "/api/users", gin.H{"nome": "Ana"})

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("esperava 400, obteve %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/problem+json") {
			t.Errorf("esperava application/problem+json, obteve %q", ct)
		}

		var problem struct {
			Errors []struct {
				Field string `json:"field"`
				Tag   string `json:"tag"`
			} `json:"errors"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
			t.Fatalf("problema inválido: %v", err)
		}

		fields := make(map[string]bool)
		for _, fe := range problem.Errors {
			fields[fe.Field] = true
		}
		if !fields["email"] || !fields["senha"] {
			t.Errorf("esperava erros em email e senha, obteve %v", fields)
		}
	})

	t.Run("nome só de espaços passa no binding mas retorna 400", func(t *testing.T) {
		router, _ := newUserRouter(t)

		rec := doJSON(router, http.MethodPost, "/api/users", gin.H{
			"nome":  "   ",
			"email": "ana@x.com",
			"senha": "segredo123",
		})

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("esperava 400, obteve %d: %s", rec.Code, rec.Body.String())
		}

		var problem struct {
			Errors []struct {
				Field string `json:"field"`
				Tag   string `json:"tag"`
			} `json:"errors"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
			t.Fatalf("problema inválido: %v", err)
		}
		if len(problem.Errors) != 1 || problem.Errors[0].Field != "nome" {
			t.Errorf("esperava erro de campo em nome, obteve %v", problem.Errors)
		}
	})

	t.Run("email duplicado retorna 409 mesmo variando caixa e espaços", func(t *testing.T) {
		router, _ := newUserRouter(t)
		createUser(t, router, "Ana", "ana@x.com", "segredo123")

		rec := doJSON(router, http.MethodPost, "/api/users", gin.H{
			"nome":  "Outra Ana",
			"email": "  ANA@X.com ",
			"senha": "outrasenha",
		})

		if rec.Code != http.StatusConflict {
			t.Fatalf("esperava 409, obteve %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestListUsersEndpoint(t *testing.T) {
	router, _ := newUserRouter(t)
	createUser(t, router, "Ana", "ana@x.com", "segredo123")
	createUser(t, router, "Bruno", "bruno@x.com", "segredo456")

	rec := doJSON(router, http.MethodGet, "/api/users", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, obteve %d", rec.Code)
	}

	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("resposta inválida: %v", err)
	}

	if len(users) != 2 {
		t.Fatalf("esperava 2 usuários, obteve %d", len(users))
	}
	if users[0]["id"].(float64) != 1 || users[1]["id"].(float64) != 2 {
		t.Error("esperava ordem ascendente de id")
	}
	if strings.Contains(rec.Body.String(), "senha") {
		t.Error("listagem não pode conter senhas")
	}
}

func TestUpdateUserEndpoint(t *testing.T) {
	t.Run("id desconhecido retorna 404", func(t *testing.T) {
		router, _ := newUserRouter(t)

		rec := doJSON(router, http.MethodPut, "/api/users/99", gin.H{
			"nome":  "Ana",
			"email": "ana@x.com",
		})

		if rec.Code != http.StatusNotFound {
			t.Fatalf("esperava 404, obteve %d", rec.Code)
		}
	})

	t.Run("id não numérico retorna 400", func(t *testing.T) {
		router, _ := newUserRouter(t)

		rec := doJSON(router, http.MethodPut, "/api/users/abc", gin.H{
			"nome":  "Ana",
			"email": "ana@x.com",
		})

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("esperava 400, obteve %d", rec.Code)
		}
	})

	t.Run("nome só de espaços retorna 400 e preserva o cadastro", func(t *testing.T) {
		router, _ := newUserRouter(t)
		createUser(t, router, "Ana", "ana@x.com", "segredo123")

		rec := doJSON(router, http.MethodPut, "/api/users/1", gin.H{
			"nome":  "   ",
			"email": "ana@x.com",
		})

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("esperava 400, obteve %d: %s", rec.Code, rec.Body.String())
		}

		rec = doJSON(router, http.MethodGet, "/api/users", nil)
		var users []map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
			t.Fatalf("resposta inválida: %v", err)
		}
		if users[0]["nome"] != "Ana" {
			t.Errorf("esperava nome preservado, obteve %v", users[0]["nome"])
		}
	})

	t.Run("senha sem confirmação idêntica retorna 400", func(t *testing.T) {
		router, _ := newUserRouter(t)
		createUser(t, router, "Ana", "ana@x.com", "segredo123")

		rec := doJSON(router, http.MethodPut, "/api/users/1", gin.H{
			"nome":            "Ana",
			"email":           "ana@x.com",
			"senha":           "novasenha",
			"confirmar_senha": "diferente",
		})

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("esperava 400, obteve %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("atualiza nome e função preservando o restante", func(t *testing.T) {
		router, _ := newUserRouter(t)
		createUser(t, router, "Ana", "ana@x.com", "segredo123")

		rec := doJSON(router, http.MethodPut, "/api/users/1", gin.H{
			"nome":   "Ana Lima",
			"email":  "ana@x.com",
			"funcao": "Administrador",
		})

		if rec.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d: %s", rec.Code, rec.Body.String())
		}

		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("resposta inválida: %v", err)
		}
		if body["nome"] != "Ana Lima" || body["funcao"] != "Administrador" {
			t.Errorf("esperava campos atualizados, obteve %v", body)
		}
		if body["status"] != "Ativo" {
			t.Errorf("esperava status preservado, obteve %v", body["status"])
		}
	})

	t.Run("email de outro usuário retorna 409", func(t *testing.T) {
		router, _ := newUserRouter(t)
		createUser(t, router, "Ana", "ana@x.com", "segredo123")
		createUser(t, router, "Bruno", "bruno@x.com", "segredo456")

		rec := doJSON(router, http.MethodPut, "/api/users/2", gin.H{
			"nome":  "Bruno",
			"email": "ana@x.com",
		})

		if rec.Code != http.StatusConflict {
			t.Fatalf("esperava 409, obteve %d", rec.Code)
		}
	})
}

func TestDeleteUserEndpoint(t *testing.T) {
	router, _ := newUserRouter(t)
	createUser(t, router, "Ana", "ana@x.com", "segredo123")

	rec := doJSON(router, http.MethodDelete, "/api/users/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("esperava 200, obteve %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("resposta inválida: %v", err)
	}
	if body["message"] == "" {
		t.Error("esperava mensagem de confirmação")
	}

	// segunda remoção do mesmo id
	rec = doJSON(router, http.MethodDelete, "/api/users/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("esperava 404 na segunda remoção, obteve %d", rec.Code)
	}
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("credenciais corretas retornam o usuário", func(t *testing.T) {
		router, _ := newUserRouter(t)
		createUser(t, router, "Ana", "ana@x.com", "segredo123")

		rec := doJSON(router, http.MethodPost, "/api/login", gin.H{
			"email": " ANA@X.com ",
			"senha": "segredo123",
		})

		if rec.Code != http.StatusOK {
			t.Fatalf("esperava 200, obteve %d: %s", rec.Code, rec.Body.String())
		}

		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("resposta inválida: %v", err)
		}
		if body["email"] != "ana@x.com" {
			t.Errorf("esperava o usuário autenticado, obteve %v", body)
		}
		if strings.Contains(rec.Body.String(), "senha") {
			t.Error("resposta de login não pode conter a senha")
		}
	})

	t.Run("senha incorreta retorna 401", func(t *testing.T) {
		router, _ := newUserRouter(t)
		createUser(t, router, "Ana", "ana@x.com", "segredo123")

		rec := doJSON(router, http.MethodPost, "/api/login", gin.H{
			"email": "ana@x.com",
			"senha": "errada",
		})

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("esperava 401, obteve %d", rec.Code)
		}
	})

	t.Run("email desconhecido retorna 401, não 404", func(t *testing.T) {
		router, _ := newUserRouter(t)

		rec := doJSON(router, http.MethodPost, "/api/login", gin.H{
			"email": "ninguem@x.com",
			"senha": "qualquer",
		})

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("esperava 401, obteve %d", rec.Code)
		}
	})
}
