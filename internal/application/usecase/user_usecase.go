package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/deporar/sdt-pedidos/internal/application/dto"
	"github.com/deporar/sdt-pedidos/internal/application/ports"
	"github.com/deporar/sdt-pedidos/internal/application/session"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

// Mensajes de la administración de usuarios.
const (
	MsgUserCreated = "Usuario creado correctamente"
	MsgUserUpdated = "Usuario actualizado correctamente"
	MsgUserDeleted = "Usuario eliminado correctamente"
)

const minPasswordLen = 6

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// ValidationError errores por campo del formulario de usuario.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for k, v := range e.Fields {
		parts = append(parts, k+": "+v)
	}
	sort.Strings(parts)
	return "datos de usuario inválidos (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

// PublicMessage primer mensaje de campo, para avisos cortos.
func (e *ValidationError) PublicMessage() string {
	for _, k := range []string{"email", "password", "fullName", "userName", "role", "duxId"} {
		if m, ok := e.Fields[k]; ok {
			return m
		}
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		return keys[0] + ": " + e.Fields[keys[0]]
	}
	return "Datos inválidos"
}

// UserUseCase administración de usuarios en la API remota (solo administradores).
type UserUseCase struct {
	gw       ports.UserGateway
	sessions session.Provider
	timeout  time.Duration
}

// NewUserUseCase construye el caso de uso con el gateway de usuarios.
func NewUserUseCase(gw ports.UserGateway, sessions session.Provider, timeout time.Duration) *UserUseCase {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &UserUseCase{gw: gw, sessions: sessions, timeout: timeout}
}

// List lista los usuarios.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	s, err := uc.sessions.Current()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	users, err := uc.gw.List(ctx, s.Token)
	if err != nil {
		return nil, expireOnAuth(uc.sessions, s.Token, err, "token rechazado al listar usuarios")
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *dto.FromUser(&users[i]))
	}
	return out, nil
}

// Create valida y da de alta un usuario. El rol por defecto es operador.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	in.UserName = strings.TrimSpace(in.UserName)
	in.DuxID = strings.TrimSpace(in.DuxID)
	in.Role = strings.ToUpper(strings.TrimSpace(in.Role))
	if in.Role == "" {
		in.Role = strings.ToUpper(entity.RoleOperador)
	}
	if err := validateUser(in.Email, in.Password, in.FullName, in.UserName, in.Role, in.DuxID, true); err != nil {
		return nil, err
	}

	s, err := uc.sessions.Current()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	u, err := uc.gw.Create(ctx, s.Token, in)
	if err != nil {
		return nil, expireOnAuth(uc.sessions, s.Token, err, "token rechazado al crear usuario")
	}
	return dto.FromUser(u), nil
}

// Update edita un usuario. Password vacío no se modifica.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id de usuario", domain.ErrInvalidInput)
	}
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Username = strings.TrimSpace(in.Username)
	in.DuxID = strings.TrimSpace(in.DuxID)
	in.Role = strings.ToUpper(strings.TrimSpace(in.Role))
	if err := validateUser(in.Email, in.Password, in.Name, in.Username, in.Role, in.DuxID, false); err != nil {
		return nil, err
	}

	s, err := uc.sessions.Current()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	u, err := uc.gw.Update(ctx, s.Token, id, in)
	if err != nil {
		return nil, expireOnAuth(uc.sessions, s.Token, err, "token rechazado al editar usuario")
	}
	return dto.FromUser(u), nil
}

// Delete elimina un usuario. No se puede borrar la propia cuenta.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id de usuario", domain.ErrInvalidInput)
	}
	s, err := uc.sessions.Current()
	if err != nil {
		return err
	}
	if id == s.UserID {
		return fmt.Errorf("%w: no podés eliminar tu propio usuario", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	return expireOnAuth(uc.sessions, s.Token, uc.gw.Delete(ctx, s.Token, id), "token rechazado al eliminar usuario")
}

func validateUser(email, password, name, username, role, duxID string, isNew bool) error {
	fields := map[string]string{}
	switch {
	case email == "":
		fields["email"] = "El email es requerido"
	case !emailPattern.MatchString(email):
		fields["email"] = "El email no es válido"
	}
	switch {
	case isNew && password == "":
		fields["password"] = "La contraseña es requerida"
	case password != "" && len(password) < minPasswordLen:
		fields["password"] = fmt.Sprintf("La contraseña debe tener al menos %d caracteres", minPasswordLen)
	}
	if name == "" {
		fields["fullName"] = "El nombre completo es requerido"
	}
	if username == "" {
		fields["userName"] = "El nombre de usuario es requerido"
	}
	if role == "" {
		fields["role"] = "El rol es requerido"
	}
	if isNew && duxID == "" {
		fields["duxId"] = "El ID de Dux es requerido"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
