package ports

// Logger abstrai o logger estruturado usado em services e handlers.
// Os pares chave/valor em args seguem a convenção do slog; With devolve
// um logger filho com campos fixos (request_id, por exemplo).
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	With(args ...any) Logger
}
