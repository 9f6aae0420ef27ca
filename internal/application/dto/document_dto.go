package dto

// UploadedFile archivo recibido por multipart, ya leído en memoria (máx. 10MB).
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ProductLineDTO renglón extraído de un PDF. Claves en español, como las devuelve /analyze-pdf.
type ProductLineDTO struct {
	Nombre      string `json:"nombre"`
	SKU         string `json:"sku"`
	Cantidad    int    `json:"cantidad"`
	Color       string `json:"color"`
	Talle       string `json:"talle"`
	ColorYTalle string `json:"colorytalle"`
}

// FileAnalysis resultado de un archivo analizado.
type FileAnalysis struct {
	File      string           `json:"file"`
	Productos []ProductLineDTO `json:"productos"`
	Error     string           `json:"error,omitempty"`
}

// AnalyzeResponse resultado del lote. Los archivos se procesan en orden y el lote se corta en el primer error.
type AnalyzeResponse struct {
	Files     []FileAnalysis `json:"files"`
	Processed int            `json:"processed"`
	Total     int            `json:"total"`
	Error     string         `json:"error,omitempty"`
}

// ReportRequest renglones a volcar en un reporte descargable.
type ReportRequest struct {
	File      string           `json:"file"`
	Productos []ProductLineDTO `json:"productos"`
}
