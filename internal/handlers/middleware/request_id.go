package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader é o header ecoado em toda resposta
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey é a chave do id no contexto do Gin
	RequestIDContextKey = "request_id"
)

// RequestID atribui um UUID a cada requisição para correlação nos logs.
// Um id vindo do cliente é reaproveitado.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(RequestIDContextKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}
