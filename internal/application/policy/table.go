// Package policy resuelve qué estados de pedido puede aplicar cada rol.
// La tabla es configuración de despliegue: se carga al iniciar y no se deriva de nada.
package policy

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

// NoPermissionMessage texto que muestra la UI cuando el rol no tiene estados asignados.
const NoPermissionMessage = "Tu rol no tiene permisos para cambiar el estado de este pedido."

// Table tabla rol → estados permitidos, inmutable después de construida.
type Table struct {
	name  string
	roles map[string][]entity.Status
}

// NewTable construye la tabla normalizando los nombres de rol.
func NewTable(name string, roles map[string][]entity.Status) *Table {
	t := &Table{name: name, roles: make(map[string][]entity.Status, len(roles))}
	for role, statuses := range roles {
		cp := make([]entity.Status, len(statuses))
		copy(cp, statuses)
		t.roles[FoldRole(role)] = cp
	}
	return t
}

// Name nombre de la política activa.
func (t *Table) Name() string { return t.name }

// Allowed estados del rol en el orden configurado; rol desconocido → slice vacío.
func (t *Table) Allowed(role string) []entity.Status {
	statuses := t.roles[FoldRole(role)]
	out := make([]entity.Status, len(statuses))
	copy(out, statuses)
	return out
}

// Permits indica si el rol puede aplicar el estado.
func (t *Table) Permits(role string, status entity.Status) bool {
	for _, s := range t.roles[FoldRole(role)] {
		if s == status {
			return true
		}
	}
	return false
}

// Roles nombres de rol configurados, ordenados.
func (t *Table) Roles() []string {
	out := make([]string, 0, len(t.roles))
	for r := range t.roles {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// FoldRole normaliza un nombre de rol: sin espacios alrededor, minúsculas, sin acentos,
// separadores como guion bajo. "Súper Admin" y "SUPER_ADMIN" dan "super_admin".
func FoldRole(role string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.TrimSpace(role))
	if err != nil {
		s = strings.TrimSpace(role)
	}
	s = cases.Fold().String(s)
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), "_")
}

// Default política por rol usada cuando no hay archivo de configuración.
func Default() *Table {
	all := entity.AllStatuses()
	return NewTable(DefaultPolicyName, map[string][]entity.Status{
		entity.RoleRecibidor:   {entity.StatusRecibido},
		entity.RolePreparador:  {entity.StatusEnPreparacion, entity.StatusPreparado, entity.StatusEnFaltante},
		entity.RoleEmbalador:   {entity.StatusEnEmbalaje, entity.StatusEmbalado},
		entity.RoleDespachador: {entity.StatusEnDespacho, entity.StatusDespachado, entity.StatusEntregado},
		entity.RoleOperador: {
			entity.StatusRecibido, entity.StatusEnPreparacion, entity.StatusEmbalado,
			entity.StatusDespachado, entity.StatusCancelado,
		},
		entity.RoleAdmin:      all,
		entity.RoleSuperAdmin: all,
	})
}
