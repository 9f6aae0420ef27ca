package entity

// ProductLine renglón extraído por el servicio de análisis de PDF.
type ProductLine struct {
	Name         string
	SKU          string
	Quantity     int
	Color        string
	Size         string
	ColorAndSize string // texto combinado tal como viene del remito
}
