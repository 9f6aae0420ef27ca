package remote

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

// flexString acepta texto, número o null (la API manda ids numéricos y a veces strings).
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*f = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
	case b[0] == '{' || b[0] == '[':
		*f = ""
	default:
		*f = flexString(string(b))
	}
	return nil
}

// flexInt acepta número, texto numérico o null.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		*f = flexInt(n)
		return nil
	}
	if fl, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		*f = flexInt(int(fl))
		return nil
	}
	*f = 0
	return nil
}

// wireRole el rol llega como objeto {id,name,description} o como texto plano.
type wireRole struct {
	ID          flexString `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
}

func (r *wireRole) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = wireRole{Name: s}
		return nil
	}
	if len(b) == 0 || string(b) == "null" {
		*r = wireRole{}
		return nil
	}
	type plain wireRole
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = wireRole(p)
	return nil
}

type wireUser struct {
	ID        flexString `json:"id"`
	Name      string     `json:"name"`
	FullName  string     `json:"fullName"`
	Username  string     `json:"username"`
	UserName  string     `json:"userName"`
	Email     string     `json:"email"`
	Role      wireRole   `json:"role"`
	DuxID     flexString `json:"duxId"`
	Enabled   *bool      `json:"enabled"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
}

type wireItem struct {
	ID          flexString `json:"id"`
	SKU         flexString `json:"sku"`
	Description string     `json:"description"`
	Name        string     `json:"name"`
	Quantity    flexInt    `json:"quantity"`
}

type wireHistory struct {
	Status    string  `json:"status"`
	StartedAt string  `json:"startedAt"`
	EndedAt   *string `json:"endedAt"`
	ChangedBy struct {
		ID   flexString `json:"id"`
		Name string     `json:"name"`
	} `json:"changedBy"`
}

type wireOrder struct {
	ID              flexString    `json:"id"`
	OrderCode       flexString    `json:"orderCode"`
	ShippingCode    flexString    `json:"shippingCode"`
	OrderOrigin     string        `json:"orderOrigin"`
	Origin          string        `json:"origin"`
	Status          string        `json:"status"`
	AssignedTo      flexString    `json:"assignedTo"`
	AssignedToName  string        `json:"assignedToName"`
	CreatedAt       string        `json:"createdAt"`
	UpdatedAt       string        `json:"updatedAt"`
	Products        []wireItem    `json:"products"`
	ProductLines    []wireItem    `json:"productLines"`
	StatusHistory   []wireHistory `json:"statusHistory"`
	ImageURL        string        `json:"imageUrl"`
	PackageImageURL string        `json:"packageImageUrl"`
}

type wireShipping struct {
	Address       string `json:"address"`
	RecipientName string `json:"recipientName"`
	Floor         string `json:"floor"`
	Door          string `json:"door"`
	PostalCode    string `json:"postalCode"`
	City          string `json:"city"`
	Phone         string `json:"phone"`
	HousingType   string `json:"housingType"`
	Observations  string `json:"observations"`
	Email         string `json:"email"`
}

type wireManualOrder struct {
	ID           flexString   `json:"id"`
	OrderCode    flexString   `json:"orderCode"`
	Status       string       `json:"status"`
	CreatedAt    string       `json:"createdAt"`
	ShippingData wireShipping `json:"shippingData"`
}

type wirePage struct {
	Content       []wireOrder `json:"content"`
	TotalPages    flexInt     `json:"totalPages"`
	TotalElements flexInt     `json:"totalElements"`
	Size          flexInt     `json:"size"`
	Number        flexInt     `json:"number"`
}

type wireMetrics struct {
	TotalOrders           flexInt `json:"totalOrders"`
	CompletedOrders       flexInt `json:"completedOrders"`
	PendingOrders         flexInt `json:"pendingOrders"`
	AverageProcessingTime float64 `json:"averageProcessingTime"`
	OrdersAtRisk          flexInt `json:"ordersAtRisk"`
	OrdersByStatus        []struct {
		Status string  `json:"status"`
		Count  flexInt `json:"count"`
	} `json:"ordersByStatus"`
	OrdersByUser []struct {
		UserID   flexString `json:"userId"`
		UserName string     `json:"userName"`
		Count    flexInt    `json:"count"`
	} `json:"ordersByUser"`
	OrdersByDate []struct {
		Date          string   `json:"date"`
		Count         flexInt  `json:"count"`
		PreviousCount *flexInt `json:"previousCount"`
	} `json:"ordersByDate"`
	Orders wirePage `json:"orders"`
}

type wireProductLine struct {
	Nombre      string     `json:"nombre"`
	SKU         flexString `json:"sku"`
	Cantidad    flexInt    `json:"cantidad"`
	Color       string     `json:"color"`
	Talle       flexString `json:"talle"`
	ColorYTalle string     `json:"colorytalle"`
}

// Formatos de fecha que envía la API; los que no traen offset se interpretan en la zona del cliente.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string, loc *time.Location) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	for _, layout := range timeLayouts[1:] {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (c *Client) toOrder(w wireOrder) entity.Order {
	o := entity.Order{
		ID:               string(w.ID),
		OrderCode:        string(w.OrderCode),
		ShippingCode:     string(w.ShippingCode),
		Origin:           firstNonEmpty(w.OrderOrigin, w.Origin),
		Status:           entity.Status(strings.ToUpper(strings.TrimSpace(w.Status))),
		AssignedUserID:   string(w.AssignedTo),
		AssignedUserName: w.AssignedToName,
		CreatedAt:        parseTime(w.CreatedAt, c.loc),
		UpdatedAt:        parseTime(w.UpdatedAt, c.loc),
		PackageImageURL:  firstNonEmpty(w.ImageURL, w.PackageImageURL),
	}
	items := w.Products
	if len(items) == 0 {
		items = w.ProductLines
	}
	for _, it := range items {
		o.Products = append(o.Products, entity.OrderItem{
			SKU:      firstNonEmpty(string(it.SKU), string(it.ID)),
			Name:     firstNonEmpty(it.Description, it.Name),
			Quantity: int(it.Quantity),
		})
	}
	for _, h := range w.StatusHistory {
		e := entity.StatusHistoryEntry{
			Status:    entity.Status(strings.ToUpper(strings.TrimSpace(h.Status))),
			StartedAt: parseTime(h.StartedAt, c.loc),
			ChangedBy: entity.UserRef{ID: string(h.ChangedBy.ID), Name: h.ChangedBy.Name},
		}
		if h.EndedAt != nil && *h.EndedAt != "" {
			t := parseTime(*h.EndedAt, c.loc)
			e.EndedAt = &t
		}
		o.StatusHistory = append(o.StatusHistory, e)
	}
	return o
}

func (c *Client) toUser(w wireUser) entity.User {
	u := entity.User{
		ID:        string(w.ID),
		Email:     w.Email,
		Name:      firstNonEmpty(w.Name, w.FullName),
		Username:  firstNonEmpty(w.Username, w.UserName),
		Role:      entity.Role{ID: string(w.Role.ID), Name: w.Role.Name, Description: w.Role.Description},
		DuxID:     string(w.DuxID),
		Enabled:   true,
		CreatedAt: parseTime(w.CreatedAt, c.loc),
		UpdatedAt: parseTime(w.UpdatedAt, c.loc),
	}
	if w.Enabled != nil {
		u.Enabled = *w.Enabled
	}
	return u
}

func (c *Client) toManualOrder(w wireManualOrder) entity.ManualOrder {
	s := w.ShippingData
	return entity.ManualOrder{
		ID:        string(w.ID),
		OrderCode: string(w.OrderCode),
		Status:    entity.Status(strings.ToUpper(strings.TrimSpace(w.Status))),
		CreatedAt: parseTime(w.CreatedAt, c.loc),
		Shipping: entity.ShippingData{
			Address:       s.Address,
			RecipientName: s.RecipientName,
			Floor:         s.Floor,
			Door:          s.Door,
			PostalCode:    s.PostalCode,
			City:          s.City,
			Phone:         s.Phone,
			HousingType:   s.HousingType,
			Observations:  s.Observations,
			Email:         s.Email,
		},
	}
}

func (c *Client) toMetrics(w wireMetrics) entity.Metrics {
	m := entity.Metrics{
		TotalOrders:           int(w.TotalOrders),
		CompletedOrders:       int(w.CompletedOrders),
		PendingOrders:         int(w.PendingOrders),
		OrdersAtRisk:          int(w.OrdersAtRisk),
		AverageProcessingTime: w.AverageProcessingTime,
		Orders: entity.OrderPage{
			Page:          int(w.Orders.Number),
			Size:          int(w.Orders.Size),
			TotalPages:    int(w.Orders.TotalPages),
			TotalElements: int(w.Orders.TotalElements),
		},
	}
	for _, s := range w.OrdersByStatus {
		m.ByStatus = append(m.ByStatus, entity.StatusCount{Status: entity.Status(s.Status), Count: int(s.Count)})
	}
	for _, u := range w.OrdersByUser {
		m.ByUser = append(m.ByUser, entity.UserCount{UserID: string(u.UserID), UserName: u.UserName, Count: int(u.Count)})
	}
	for _, d := range w.OrdersByDate {
		dc := entity.DateCount{Date: d.Date, Count: int(d.Count)}
		if d.PreviousCount != nil {
			p := int(*d.PreviousCount)
			dc.PreviousCount = &p
		}
		m.ByDate = append(m.ByDate, dc)
	}
	for _, o := range w.Orders.Content {
		m.Orders.Orders = append(m.Orders.Orders, c.toOrder(o))
	}
	return m
}
