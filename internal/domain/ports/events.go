package ports

// Eventos publicados quando a tabela de usuários muda.
// O dashboard conectado via websocket consome estes tipos.
const (
	EventUserCreated = "user_created"
	EventUserUpdated = "user_updated"
	EventUserDeleted = "user_deleted"
)

// EventPublisher desacopla os services do hub websocket
type EventPublisher interface {
	Publish(event string, data any)
}

// NoopPublisher descarta eventos; usado quando o hub está desligado
type NoopPublisher struct{}

func (NoopPublisher) Publish(string, any) {}
