package entity

// Metrics agregado devuelto por /metricas.
type Metrics struct {
	TotalOrders           int
	CompletedOrders       int
	PendingOrders         int
	OrdersAtRisk          int
	AverageProcessingTime float64 // horas
	ByStatus              []StatusCount
	ByUser                []UserCount
	ByDate                []DateCount
	Orders                OrderPage
}

// StatusCount cantidad de pedidos por estado.
type StatusCount struct {
	Status Status
	Count  int
}

// UserCount cantidad de pedidos por responsable.
type UserCount struct {
	UserID   string
	UserName string
	Count    int
}

// DateCount cantidad por día; PreviousCount es el período anterior si la API lo envía.
type DateCount struct {
	Date          string // yyyy-MM-dd
	Count         int
	PreviousCount *int
}
