package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sensordash/backend/internal/infrastructure/i18n"
)

func setupI18nRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	service, err := i18n.NewService("pt-BR")
	if err != nil {
		t.Fatalf("falha ao inicializar i18n: %v", err)
	}

	router := gin.New()
	router.Use(NewI18nMiddleware(service).DetectLanguage())
	router.GET("/lang", func(c *gin.Context) {
		lang, _ := c.Get(LanguageContextKey)
		c.String(http.StatusOK, lang.(string))
	})

	return router
}

func requestLang(t *testing.T, router *gin.Engine, path string, headers map[string]string) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w.Body.String()
}

func TestDetectLanguage(t *testing.T) {
	router := setupI18nRouter(t)

	t.Run("query param tem prioridade", func(t *testing.T) {
		lang := requestLang(t, router, "/lang?lang=en", map[string]string{
			"Accept-Language": "pt-BR",
		})
		if lang != "en" {
			t.Errorf("esperava 'en', obteve '%s'", lang)
		}
	})

	t.Run("query param não suportado é ignorado", func(t *testing.T) {
		lang := requestLang(t, router, "/lang?lang=fr", nil)
		if lang != "pt-BR" {
			t.Errorf("esperava fallback 'pt-BR', obteve '%s'", lang)
		}
	})

	t.Run("usa Accept-Language quando suportado", func(t *testing.T) {
		lang := requestLang(t, router, "/lang", map[string]string{
			"Accept-Language": "en-US;q=0.8,en;q=0.7",
		})
		if lang != "en" {
			t.Errorf("esperava 'en', obteve '%s'", lang)
		}
	})

	t.Run("Accept-Language com qualidade escolhe o primeiro suportado", func(t *testing.T) {
		lang := requestLang(t, router, "/lang", map[string]string{
			"Accept-Language": "pt-BR,pt;q=0.9,en-US;q=0.8",
		})
		if lang != "pt-BR" {
			t.Errorf("esperava 'pt-BR', obteve '%s'", lang)
		}
	})

	t.Run("sem preferência cai no idioma padrão", func(t *testing.T) {
		lang := requestLang(t, router, "/lang", nil)
		if lang != "pt-BR" {
			t.Errorf("esperava 'pt-BR', obteve '%s'", lang)
		}
	})

	t.Run("idioma desconhecido cai no padrão", func(t *testing.T) {
		lang := requestLang(t, router, "/lang", map[string]string{
			"Accept-Language": "de-DE,de;q=0.9",
		})
		if lang != "pt-BR" {
			t.Errorf("esperava 'pt-BR', obteve '%s'", lang)
		}
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("gera id quando ausente", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Header().Get(RequestIDHeader) == "" {
			t.Error("esperava header X-Request-ID na resposta")
		}
	})

	t.Run("reaproveita id do cliente", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "abc-123")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
			t.Errorf("esperava 'abc-123', obteve '%s'", got)
		}
	})
}
