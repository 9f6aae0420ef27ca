package dto

import (
	"time"

	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

// StatusUpdateRequest cuerpo de PUT /orders/{id}/status en la API remota.
type StatusUpdateRequest struct {
	OrderStatus string `json:"orderStatus"`
	UserID      string `json:"userId"`
	UserName    string `json:"userName"`
	UserRole    string `json:"userRole,omitempty"`
}

// OrderItemResponse renglón de producto de un pedido.
type OrderItemResponse struct {
	SKU      string `json:"sku,omitempty"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// StatusHistoryResponse tramo del historial de estados.
type StatusHistoryResponse struct {
	Status        string     `json:"status"`
	StatusLabel   string     `json:"status_label"`
	StartedAt     time.Time  `json:"started_at"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
	ChangedByID   string     `json:"changed_by_id,omitempty"`
	ChangedByName string     `json:"changed_by_name,omitempty"`
}

// OrderResponse pedido tal como lo consume la UI.
type OrderResponse struct {
	ID               string                  `json:"id"`
	OrderCode        string                  `json:"order_code"`
	ShippingCode     string                  `json:"shipping_code,omitempty"`
	Origin           string                  `json:"origin,omitempty"`
	Status           string                  `json:"status"`
	StatusLabel      string                  `json:"status_label"`
	AssignedUserID   string                  `json:"assigned_user_id,omitempty"`
	AssignedUserName string                  `json:"assigned_user_name,omitempty"`
	CreatedAt        *time.Time              `json:"created_at,omitempty"`
	UpdatedAt        *time.Time              `json:"updated_at,omitempty"`
	Products         []OrderItemResponse     `json:"products"`
	StatusHistory    []StatusHistoryResponse `json:"status_history"`
	PackageImageURL  string                  `json:"package_image_url,omitempty"`
}

// ShippingDataDTO datos de envío del formulario de carga manual (nombres de la API remota).
type ShippingDataDTO struct {
	Address       string `json:"address"`
	RecipientName string `json:"recipientName"`
	Floor         string `json:"floor,omitempty"`
	Door          string `json:"door,omitempty"`
	PostalCode    string `json:"postalCode"`
	City          string `json:"city"`
	Phone         string `json:"phone"`
	HousingType   string `json:"housingType"`
	Observations  string `json:"observations,omitempty"`
	Email         string `json:"email"`
}

// ManualOrderRequest alta de pedido manual.
type ManualOrderRequest struct {
	ShippingData ShippingDataDTO `json:"shippingData"`
}

// ManualOrderResponse pedido manual creado.
type ManualOrderResponse struct {
	ID           string          `json:"id"`
	OrderCode    string          `json:"order_code"`
	Status       string          `json:"status"`
	CreatedAt    *time.Time      `json:"created_at,omitempty"`
	ShippingData ShippingDataDTO `json:"shipping_data"`
}

// OrderLabel contenido del QR impreso en la etiqueta; mismos nombres que lee el escáner.
type OrderLabel struct {
	OrderID   string `json:"orderId"`
	OrderDate string `json:"orderDate,omitempty"`
	Customer  string `json:"customer,omitempty"`
	Products  string `json:"products,omitempty"`
	Status    string `json:"status,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// ImageUploadResponse URL de la foto de bulto almacenada.
type ImageUploadResponse struct {
	URL string `json:"url"`
}

// StatusChangedEvent evento publicado tras una actualización de estado aceptada.
type StatusChangedEvent struct {
	OrderID    string    `json:"order_id"`
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserRole   string    `json:"user_role"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurred_at"`
}

// FromOrder mapea el pedido a la salida de la UI. Nil devuelve nil.
func FromOrder(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	out := &OrderResponse{
		ID:               o.ID,
		OrderCode:        o.OrderCode,
		ShippingCode:     o.ShippingCode,
		Origin:           o.Origin,
		Status:           string(o.Status),
		StatusLabel:      o.Status.Label(),
		AssignedUserID:   o.AssignedUserID,
		AssignedUserName: o.AssignedUserName,
		CreatedAt:        timePtr(o.CreatedAt),
		UpdatedAt:        timePtr(o.UpdatedAt),
		Products:         make([]OrderItemResponse, 0, len(o.Products)),
		StatusHistory:    make([]StatusHistoryResponse, 0, len(o.StatusHistory)),
		PackageImageURL:  o.PackageImageURL,
	}
	for _, p := range o.Products {
		out.Products = append(out.Products, OrderItemResponse{SKU: p.SKU, Name: p.Name, Quantity: p.Quantity})
	}
	for _, h := range o.StatusHistory {
		out.StatusHistory = append(out.StatusHistory, StatusHistoryResponse{
			Status:        string(h.Status),
			StatusLabel:   h.Status.Label(),
			StartedAt:     h.StartedAt,
			EndedAt:       h.EndedAt,
			ChangedByID:   h.ChangedBy.ID,
			ChangedByName: h.ChangedBy.Name,
		})
	}
	return out
}

// StatusOptions opciones del selector, en el orden recibido.
func StatusOptions(statuses []entity.Status) []StatusOption {
	out := make([]StatusOption, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, StatusOption{Value: string(s), Label: s.Label()})
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
