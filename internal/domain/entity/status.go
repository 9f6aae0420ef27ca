package entity

import (
	"fmt"
	"strings"

	"github.com/deporar/sdt-pedidos/internal/domain"
)

// Status estado de un pedido. Conjunto cerrado; el orden de declaración es el del flujo de depósito.
type Status string

const (
	StatusRecibido      Status = "RECIBIDO"
	StatusEnPreparacion Status = "EN_PREPARACION"
	StatusPreparado     Status = "PREPARADO"
	StatusEnEmbalaje    Status = "EN_EMBALAJE"
	StatusEmbalado      Status = "EMBALADO"
	StatusEnDespacho    Status = "EN_DESPACHO"
	StatusDespachado    Status = "DESPACHADO"
	StatusEntregado     Status = "ENTREGADO"
	StatusEnFaltante    Status = "EN_FALTANTE"
	StatusCancelado     Status = "CANCELADO"
)

var statusLabels = map[Status]string{
	StatusRecibido:      "Recibido",
	StatusEnPreparacion: "En Preparación",
	StatusPreparado:     "Preparado",
	StatusEnEmbalaje:    "En Embalaje",
	StatusEmbalado:      "Embalado",
	StatusEnDespacho:    "En Despacho",
	StatusDespachado:    "Despachado",
	StatusEntregado:     "Entregado",
	StatusEnFaltante:    "En Faltante",
	StatusCancelado:     "Cancelado",
}

// AllStatuses devuelve todos los estados en orden de flujo.
func AllStatuses() []Status {
	return []Status{
		StatusRecibido, StatusEnPreparacion, StatusPreparado, StatusEnEmbalaje, StatusEmbalado,
		StatusEnDespacho, StatusDespachado, StatusEntregado, StatusEnFaltante, StatusCancelado,
	}
}

// ParseStatus valida un estado recibido como texto. Acepta minúsculas y espacios alrededor.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := statusLabels[st]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, s)
	}
	return st, nil
}

// Valid indica si el estado pertenece al conjunto conocido.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label etiqueta en español; si el estado es desconocido devuelve el texto crudo.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}
