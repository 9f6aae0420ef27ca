package ports

import (
	"context"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

// Puertos de salida hacia la API remota de pedidos. Cualquier adaptador (HTTP real, fake de tests)
// debe implementarlos; la aplicación solo conoce estos contratos.
//
// Todas las llamadas autenticadas reciben el bearer token explícito. Los errores se clasifican
// con los sentinels de domain (ErrAuthExpired, ErrNotFound, ErrValidation, ErrUnavailable).
// El contexto debe llevar timeout.

// AuthGateway autenticación contra la API.
type AuthGateway interface {
	// Login devuelve el token y el usuario; el adaptador no valida que vengan ambos.
	Login(ctx context.Context, email, password string) (token string, user *entity.User, err error)
}

// OrderGateway lectura y actualización de pedidos.
type OrderGateway interface {
	GetByQR(ctx context.Context, token, orderID string) (*entity.Order, error)
	GetManual(ctx context.Context, token, orderID string) (*entity.Order, error)
	// UpdateStatus devuelve nil sin error si la API aceptó el cambio pero no envió el pedido.
	UpdateStatus(ctx context.Context, token, orderID string, in dto.StatusUpdateRequest) (*entity.Order, error)
	CreateManual(ctx context.Context, token string, in entity.ShippingData) (*entity.ManualOrder, error)
}

// MetricsGateway tablero de métricas y exportación.
type MetricsGateway interface {
	Metrics(ctx context.Context, token string, q dto.MetricsQuery) (*entity.Metrics, error)
	// Export format: excel o csv (nombres de la API remota).
	Export(ctx context.Context, token string, f dto.MetricsFilters, format string) (*dto.ExportFile, error)
}

// UserGateway administración de usuarios.
type UserGateway interface {
	List(ctx context.Context, token string) ([]entity.User, error)
	Create(ctx context.Context, token string, in dto.CreateUserRequest) (*entity.User, error)
	Update(ctx context.Context, token, userID string, in dto.UpdateUserRequest) (*entity.User, error)
	Delete(ctx context.Context, token, userID string) error
}

// DocumentAnalyzer servicio remoto que extrae productos de remitos en PDF.
type DocumentAnalyzer interface {
	AnalyzePDF(ctx context.Context, token string, file dto.UploadedFile, notes string) ([]entity.ProductLine, error)
}

// MediaGateway fotos de bultos.
type MediaGateway interface {
	UploadImage(ctx context.Context, token string, file dto.UploadedFile) (string, error)
	// FetchImage descarga una imagen protegida; path es relativo a la API (ej: /api/volume/images/x.jpg).
	FetchImage(ctx context.Context, token, path string) (*dto.ExportFile, error)
}
