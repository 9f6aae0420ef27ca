package dto

// ErrorResponse cuerpo de error HTTP. Redirect indica a la UI adónde navegar (ej: /login).
type ErrorResponse struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Redirect string            `json:"redirect,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

// MessageResponse respuesta simple con un mensaje para el usuario.
type MessageResponse struct {
	Message string `json:"message"`
}

// PageResponse metadatos de página en respuestas. Page es base 1 para la UI.
type PageResponse struct {
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalPages    int `json:"total_pages"`
	TotalElements int `json:"total_elements"`
}
