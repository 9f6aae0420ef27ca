package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/ports"
	"github.com/deporar/sdt-pedidos/internal/application/session"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

// MsgLabelRequired validación del generador de etiquetas.
const MsgLabelRequired = "Por favor completa los campos obligatorios: ID del Pedido, Cliente y Productos"

// OrderUseCase operaciones sobre pedidos fuera del flujo de escaneo: alta manual,
// etiqueta con QR y fotos de bultos.
type OrderUseCase struct {
	orders   ports.OrderGateway
	media    ports.MediaGateway
	labels   ports.LabelRenderer
	sessions session.Provider
	timeout  time.Duration
	loc      *time.Location
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orders ports.OrderGateway, media ports.MediaGateway, labels ports.LabelRenderer, sessions session.Provider, timeout time.Duration, loc *time.Location) *OrderUseCase {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if loc == nil {
		loc = time.UTC
	}
	return &OrderUseCase{orders: orders, media: media, labels: labels, sessions: sessions, timeout: timeout, loc: loc}
}

// CreateManual da de alta un pedido con datos de envío cargados a mano.
func (uc *OrderUseCase) CreateManual(ctx context.Context, in dto.ManualOrderRequest) (*dto.ManualOrderResponse, error) {
	sd := normalizeShipping(in.ShippingData)
	if err := validateShipping(sd); err != nil {
		return nil, err
	}
	s, err := uc.sessions.Current()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	m, err := uc.orders.CreateManual(ctx, s.Token, toShippingData(sd))
	if err != nil {
		return nil, expireOnAuth(uc.sessions, s.Token, err, "token rechazado al crear pedido manual")
	}
	out := &dto.ManualOrderResponse{
		ID:           m.ID,
		OrderCode:    m.OrderCode,
		Status:       string(m.Status),
		ShippingData: fromShippingData(m.Shipping),
	}
	if !m.CreatedAt.IsZero() {
		t := m.CreatedAt
		out.CreatedAt = &t
	}
	return out, nil
}

// Label busca el pedido y genera su etiqueta imprimible.
func (uc *OrderUseCase) Label(ctx context.Context, orderID string) (*dto.ExportFile, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, fmt.Errorf("%w: id de pedido", domain.ErrInvalidInput)
	}
	s, err := uc.sessions.Current()
	if err != nil {
		return nil, err
	}
	fetchCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	o, err := uc.orders.GetManual(fetchCtx, s.Token, orderID)
	if err != nil {
		return nil, expireOnAuth(uc.sessions, s.Token, err, "token rechazado al buscar pedido")
	}
	return uc.render(ctx, LabelFor(o, uc.loc))
}

// LabelFromForm genera la etiqueta a partir del formulario del generador de QR.
func (uc *OrderUseCase) LabelFromForm(ctx context.Context, in dto.OrderLabel) (*dto.ExportFile, error) {
	in.OrderID = strings.TrimSpace(in.OrderID)
	in.Customer = strings.TrimSpace(in.Customer)
	in.Products = strings.TrimSpace(in.Products)
	if in.OrderID == "" || in.Customer == "" || in.Products == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, MsgLabelRequired)
	}
	if in.Status == "" {
		in.Status = strings.ToLower(string(entity.StatusRecibido))
	}
	return uc.render(ctx, in)
}

func (uc *OrderUseCase) render(ctx context.Context, label dto.OrderLabel) (*dto.ExportFile, error) {
	content, err := json.Marshal(label)
	if err != nil {
		return nil, fmt.Errorf("contenido del QR: %w", err)
	}
	data, err := uc.labels.RenderOrderLabel(ctx, label, string(content))
	if err != nil {
		return nil, fmt.Errorf("generar etiqueta: %w", err)
	}
	return &dto.ExportFile{
		Filename:    fmt.Sprintf("etiqueta-%s.pdf", label.OrderID),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

// LabelFor arma el contenido del QR de un pedido; el escáner lo interpreta como JSON.
func LabelFor(o *entity.Order, loc *time.Location) dto.OrderLabel {
	label := dto.OrderLabel{
		OrderID:  o.ID,
		Customer: o.AssignedUserName,
		Status:   strings.ToLower(string(o.Status)),
	}
	if !o.CreatedAt.IsZero() {
		label.OrderDate = o.CreatedAt.In(loc).Format("2006-01-02")
	}
	items := make([]string, 0, len(o.Products))
	for _, p := range o.Products {
		items = append(items, fmt.Sprintf("%s x%d", p.Name, p.Quantity))
	}
	label.Products = strings.Join(items, ", ")
	if o.OrderCode != "" {
		label.Notes = "Código " + o.OrderCode
	}
	return label
}

// UploadImage sube la foto de un bulto.
func (uc *OrderUseCase) UploadImage(ctx context.Context, f dto.UploadedFile) (*dto.ImageUploadResponse, error) {
	if len(f.Data) == 0 {
		return nil, fmt.Errorf("%w: imagen vacía", domain.ErrInvalidInput)
	}
	if len(f.Data) > MaxUploadSize {
		return nil, fmt.Errorf("%w: la imagen supera 10MB", domain.ErrInvalidInput)
	}
	if ct := http.DetectContentType(f.Data); !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("%w: el archivo %s no es una imagen", domain.ErrInvalidInput, f.Name)
	}
	s, err := uc.sessions.Current()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	u, err := uc.media.UploadImage(ctx, s.Token, f)
	if err != nil {
		return nil, expireOnAuth(uc.sessions, s.Token, err, "token rechazado al subir imagen")
	}
	return &dto.ImageUploadResponse{URL: u}, nil
}

// Image descarga una imagen protegida para mostrarla en la UI.
func (uc *OrderUseCase) Image(ctx context.Context, path string) (*dto.ExportFile, error) {
	s, err := uc.sessions.Current()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	f, err := uc.media.FetchImage(ctx, s.Token, path)
	if err != nil {
		return nil, expireOnAuth(uc.sessions, s.Token, err, "token rechazado al descargar imagen")
	}
	return f, nil
}

func normalizeShipping(sd dto.ShippingDataDTO) dto.ShippingDataDTO {
	sd.Address = strings.TrimSpace(sd.Address)
	sd.RecipientName = strings.TrimSpace(sd.RecipientName)
	sd.Floor = strings.TrimSpace(sd.Floor)
	sd.Door = strings.TrimSpace(sd.Door)
	sd.PostalCode = strings.TrimSpace(sd.PostalCode)
	sd.City = strings.TrimSpace(sd.City)
	sd.Phone = strings.TrimSpace(sd.Phone)
	sd.HousingType = strings.TrimSpace(sd.HousingType)
	sd.Observations = strings.TrimSpace(sd.Observations)
	sd.Email = strings.TrimSpace(sd.Email)
	return sd
}

func validateShipping(sd dto.ShippingDataDTO) error {
	fields := map[string]string{}
	required := map[string]string{
		"address":       sd.Address,
		"recipientName": sd.RecipientName,
		"postalCode":    sd.PostalCode,
		"city":          sd.City,
		"phone":         sd.Phone,
		"housingType":   sd.HousingType,
		"email":         sd.Email,
	}
	for k, v := range required {
		if v == "" {
			fields[k] = "Campo requerido"
		}
	}
	if sd.Email != "" && !emailPattern.MatchString(sd.Email) {
		fields["email"] = "El email no es válido"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func toShippingData(sd dto.ShippingDataDTO) entity.ShippingData {
	return entity.ShippingData{
		Address:       sd.Address,
		RecipientName: sd.RecipientName,
		Floor:         sd.Floor,
		Door:          sd.Door,
		PostalCode:    sd.PostalCode,
		City:          sd.City,
		Phone:         sd.Phone,
		HousingType:   sd.HousingType,
		Observations:  sd.Observations,
		Email:         sd.Email,
	}
}

func fromShippingData(sd entity.ShippingData) dto.ShippingDataDTO {
	return dto.ShippingDataDTO{
		Address:       sd.Address,
		RecipientName: sd.RecipientName,
		Floor:         sd.Floor,
		Door:          sd.Door,
		PostalCode:    sd.PostalCode,
		City:          sd.City,
		Phone:         sd.Phone,
		HousingType:   sd.HousingType,
		Observations:  sd.Observations,
		Email:         sd.Email,
	}
}
