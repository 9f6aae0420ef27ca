package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/usecase"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
	"github.com/deporar/sdt-pedidos/internal/domain/qr"
)

type fakeOrderGW struct {
	order    *entity.Order
	err      error
	shipping *entity.ShippingData
}

func (f *fakeOrderGW) GetByQR(context.Context, string, string) (*entity.Order, error) {
	return nil, errors.New("no usado")
}

func (f *fakeOrderGW) GetManual(context.Context, string, string) (*entity.Order, error) {
	return f.order, f.err
}

func (f *fakeOrderGW) UpdateStatus(context.Context, string, string, dto.StatusUpdateRequest) (*entity.Order, error) {
	return nil, errors.New("no usado")
}

func (f *fakeOrderGW) CreateManual(_ context.Context, _ string, in entity.ShippingData) (*entity.ManualOrder, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.shipping = &in
	return &entity.ManualOrder{ID: "100", OrderCode: "MAN-100", Status: entity.StatusRecibido, Shipping: in}, nil
}

type fakeMedia struct{ uploaded string }

func (f *fakeMedia) UploadImage(_ context.Context, _ string, file dto.UploadedFile) (string, error) {
	f.uploaded = file.Name
	return "/api/volume/images/" + file.Name, nil
}

func (f *fakeMedia) FetchImage(_ context.Context, _, path string) (*dto.ExportFile, error) {
	return &dto.ExportFile{Filename: path, ContentType: "image/png"}, nil
}

type fakeLabels struct {
	label   dto.OrderLabel
	content string
}

func (f *fakeLabels) RenderOrderLabel(_ context.Context, label dto.OrderLabel, content string) ([]byte, error) {
	f.label, f.content = label, content
	return []byte("%PDF"), nil
}

func shipping() dto.ShippingDataDTO {
	return dto.ShippingDataDTO{
		Address: "Av. Siempre Viva 742", RecipientName: "Homero", PostalCode: "1414",
		City: "CABA", Phone: "1155550000", HousingType: "casa", Email: "h@x.com",
	}
}

func TestCreateManual(t *testing.T) {
	gw := &fakeOrderGW{}
	uc := usecase.NewOrderUseCase(gw, &fakeMedia{}, &fakeLabels{}, adminSession(), time.Second, time.UTC)

	in := shipping()
	in.City = "  CABA "
	out, err := uc.CreateManual(context.Background(), dto.ManualOrderRequest{ShippingData: in})
	require.NoError(t, err)
	assert.Equal(t, "MAN-100", out.OrderCode)
	assert.Equal(t, "CABA", gw.shipping.City)

	bad := shipping()
	bad.Phone = ""
	_, err = uc.CreateManual(context.Background(), dto.ManualOrderRequest{ShippingData: bad})
	var ve *usecase.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "phone")
}

func TestLabel_ContenidoLegiblePorElEscaner(t *testing.T) {
	created := time.Date(2025, 3, 1, 2, 0, 0, 0, time.UTC)
	gw := &fakeOrderGW{order: &entity.Order{
		ID: "55", OrderCode: "ML-9", Status: entity.StatusEmbalado, CreatedAt: created,
		Products: []entity.OrderItem{{Name: "Remera", Quantity: 2}, {Name: "Buzo", Quantity: 1}},
	}}
	labels := &fakeLabels{}
	loc, err := time.LoadLocation("America/Argentina/Buenos_Aires")
	require.NoError(t, err)
	uc := usecase.NewOrderUseCase(gw, &fakeMedia{}, labels, adminSession(), time.Second, loc)

	f, err := uc.Label(context.Background(), "55")
	require.NoError(t, err)
	assert.Equal(t, "etiqueta-55.pdf", f.Filename)
	assert.Equal(t, "2025-02-28", labels.label.OrderDate, "fecha civil en la zona de la estación")
	assert.Equal(t, "Remera x2, Buzo x1", labels.label.Products)

	var raw map[string]string
	require.NoError(t, json.Unmarshal([]byte(labels.content), &raw))
	assert.Equal(t, "55", raw["orderId"])

	p := qr.Interpret(labels.content)
	assert.True(t, p.Valid)
	assert.Equal(t, "55", p.OrderID)
}

func TestLabelFromForm_Obligatorios(t *testing.T) {
	uc := usecase.NewOrderUseCase(&fakeOrderGW{}, &fakeMedia{}, &fakeLabels{}, adminSession(), time.Second, time.UTC)
	_, err := uc.LabelFromForm(context.Background(), dto.OrderLabel{OrderID: "1", Customer: "Ana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), usecase.MsgLabelRequired)
}

func TestUploadImage_SoloImagenes(t *testing.T) {
	media := &fakeMedia{}
	uc := usecase.NewOrderUseCase(&fakeOrderGW{}, media, &fakeLabels{}, adminSession(), time.Second, time.UTC)

	_, err := uc.UploadImage(context.Background(), dto.UploadedFile{Name: "x.txt", Data: []byte("hola")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	png := []byte("\x89PNG\r\n\x1a\n0000")
	out, err := uc.UploadImage(context.Background(), dto.UploadedFile{Name: "bulto.png", Data: png})
	require.NoError(t, err)
	assert.Equal(t, "/api/volume/images/bulto.png", out.URL)
}
