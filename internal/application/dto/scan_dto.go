package dto

// ScanRequest texto leído por el escáner o tipeado. Source: qr (default) o manual.
type ScanRequest struct {
	Raw    string `json:"raw"`
	Source string `json:"source"`
}

// SelectStatusRequest estado elegido en el control de actualización.
type SelectStatusRequest struct {
	Status string `json:"status"`
}

// StatusOption opción del selector de estados.
type StatusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// StatusesResponse estados que el rol de la sesión puede aplicar.
type StatusesResponse struct {
	Role         string         `json:"role"`
	Statuses     []StatusOption `json:"statuses"`
	NoPermission bool           `json:"no_permission"`
	Message      string         `json:"message,omitempty"`
}

// PayloadResponse datos interpretados del código.
type PayloadResponse struct {
	Raw       string   `json:"raw"`
	Format    string   `json:"format"`
	OrderID   string   `json:"order_id,omitempty"`
	OrderDate string   `json:"order_date,omitempty"`
	Customer  string   `json:"customer,omitempty"`
	Products  []string `json:"products,omitempty"`
	Status    string   `json:"status,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Valid     bool     `json:"valid"`
}

// ScanViewResponse estado completo de la pantalla de escaneo. Code solo viaja en respuestas
// de error y repite el código del sobre de error común.
type ScanViewResponse struct {
	Code            string           `json:"code,omitempty"`
	Phase           string           `json:"phase"`
	Payload         *PayloadResponse `json:"payload,omitempty"`
	Order           *OrderResponse   `json:"order,omitempty"`
	AllowedStatuses []StatusOption   `json:"allowed_statuses"`
	Selected        string           `json:"selected,omitempty"`
	NoPermission    bool             `json:"no_permission"`
	CanSubmit       bool             `json:"can_submit"`
	Loading         bool             `json:"loading"`
	Completed       bool             `json:"completed"`
	Notice          string           `json:"notice,omitempty"`
	Error           string           `json:"error,omitempty"`
	Redirect        string           `json:"redirect,omitempty"`
}

// ScannerResponse estado del recurso de cámara/lector.
type ScannerResponse struct {
	Active bool `json:"active"`
}
