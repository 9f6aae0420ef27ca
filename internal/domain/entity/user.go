package entity

import "time"

// Roles conocidos por la API remota (en minúsculas, como se comparan localmente).
const (
	RoleAdmin       = "admin"
	RoleSuperAdmin  = "super_admin"
	RoleOperador    = "operador"
	RoleRecibidor   = "recibidor"
	RolePreparador  = "preparador"
	RoleEmbalador   = "embalador"
	RoleDespachador = "despachador"
)

// Role rol del usuario tal como lo envía la API.
type Role struct {
	ID          string
	Name        string
	Description string
}

// User usuario administrado en la API remota.
type User struct {
	ID        string
	Email     string
	Name      string
	Username  string
	Role      Role
	DuxID     string // id del usuario en el ERP Dux, opcional
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
