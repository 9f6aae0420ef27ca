package entity

import "time"

// ShippingData datos de envío de un pedido cargado a mano.
type ShippingData struct {
	Address       string
	RecipientName string
	Floor         string
	Door          string
	PostalCode    string
	City          string
	Phone         string
	HousingType   string // casa, departamento...
	Observations  string
	Email         string
}

// ManualOrder pedido creado desde la estación sin pasar por un marketplace.
type ManualOrder struct {
	ID        string
	OrderCode string
	Status    Status
	CreatedAt time.Time
	Shipping  ShippingData
}
