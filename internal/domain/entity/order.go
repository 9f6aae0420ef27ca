package entity

import "time"

// Order copia de lectura de un pedido; la API remota es dueña del dato.
type Order struct {
	ID               string
	OrderCode        string
	ShippingCode     string // vacío si todavía no tiene envío
	Origin           string // mercadolibre, manual, tiendanube...
	Status           Status
	AssignedUserID   string
	AssignedUserName string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Products         []OrderItem
	StatusHistory    []StatusHistoryEntry
	PackageImageURL  string
}

// OrderItem renglón de producto dentro del pedido.
type OrderItem struct {
	SKU      string
	Name     string
	Quantity int
}

// StatusHistoryEntry tramo del historial de estados. EndedAt nil = estado vigente.
type StatusHistoryEntry struct {
	Status    Status
	StartedAt time.Time
	EndedAt   *time.Time
	ChangedBy UserRef
}

// UserRef referencia mínima a un usuario (quién cambió el estado).
type UserRef struct {
	ID   string
	Name string
}

// CurrentEntry devuelve el tramo vigente del historial, si existe.
func (o *Order) CurrentEntry() *StatusHistoryEntry {
	for i := len(o.StatusHistory) - 1; i >= 0; i-- {
		if o.StatusHistory[i].EndedAt == nil {
			return &o.StatusHistory[i]
		}
	}
	return nil
}

// OrderPage página de pedidos tal como la devuelve el endpoint de métricas (page base 0).
type OrderPage struct {
	Orders        []Order
	Page          int
	Size          int
	TotalPages    int
	TotalElements int
}

// SingleOrderPage arma una página sintética de un solo pedido para reutilizar la tabla.
func SingleOrderPage(o Order) OrderPage {
	return OrderPage{
		Orders:        []Order{o},
		Page:          0,
		Size:          1,
		TotalPages:    1,
		TotalElements: 1,
	}
}
