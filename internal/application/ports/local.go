package ports

import (
	"context"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

// SessionStore almacenamiento local de la sesión (claves authToken y user).
// Load devuelve nil, nil si no hay nada guardado.
type SessionStore interface {
	Load() (*entity.Session, error)
	Save(s *entity.Session) error
	Clear() error
}

// EventPublisher publica eventos de dominio hacia otros sistemas del depósito.
// Un fallo al publicar nunca revierte la operación que lo originó.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, evt dto.StatusChangedEvent) error
}

// ProductReportRenderer genera un reporte descargable de los productos analizados.
type ProductReportRenderer interface {
	RenderProductReport(ctx context.Context, title, sourceFile string, lines []entity.ProductLine) ([]byte, error)
}

// LabelRenderer genera la etiqueta imprimible con el QR del pedido.
type LabelRenderer interface {
	RenderOrderLabel(ctx context.Context, label dto.OrderLabel, qrContent string) ([]byte, error)
}
