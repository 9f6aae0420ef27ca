// Package reqid propaga el identificador de request entre la API local y las llamadas remotas.
package reqid

import (
	"context"

	"github.com/google/uuid"
)

// Header nombre del header HTTP que transporta el id.
const Header = "X-Request-ID"

type ctxKey struct{}

// WithID guarda el id en el contexto.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext devuelve el id del contexto o genera uno nuevo.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
