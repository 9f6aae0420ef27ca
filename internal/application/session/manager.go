// Package session mantiene la identidad autenticada de la estación: un único escritor
// (login, logout, expiración) y muchos lectores concurrentes.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/deporar/sdt-pedidos/internal/application/ports"
	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
	pkgjwt "github.com/deporar/sdt-pedidos/pkg/jwt"
	"github.com/deporar/sdt-pedidos/pkg/logger"
)

// LoginPath ruta a la que la UI debe navegar cuando la sesión expira.
const LoginPath = "/login"

// Provider capacidad mínima que necesitan los componentes que actúan en nombre del usuario.
type Provider interface {
	// Current devuelve una copia de la sesión o ErrNoSession / ErrAuthExpired.
	Current() (*entity.Session, error)
	// Expire descarta la sesión dueña de token tras un fallo de autenticación. Si mientras
	// tanto hubo otro login, la sesión nueva no se toca.
	Expire(token, reason string)
}

var _ Provider = (*Manager)(nil)

// Manager dueño de la sesión del proceso.
type Manager struct {
	mu      sync.RWMutex
	current *entity.Session
	// expiredReason no vacío = la sesión terminó por expiración y la UI debe ir a /login.
	expiredReason string

	auth    ports.AuthGateway
	store   ports.SessionStore
	log     *logger.Logger
	timeout time.Duration
	now     func() time.Time
}

// Option configura el Manager.
type Option func(*Manager)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithTimeout timeout del login contra la API remota.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// NewManager construye el manager inyectando el gateway de auth y el almacenamiento local.
func NewManager(auth ports.AuthGateway, store ports.SessionStore, log *logger.Logger, opts ...Option) *Manager {
	m := &Manager{
		auth:    auth,
		store:   store,
		log:     log,
		timeout: 15 * time.Second,
		now:     time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Restore carga la sesión guardada al iniciar. Un registro incompleto, ilegible o con el token
// vencido se descarta y se limpia el almacenamiento; nunca es un error fatal.
func (m *Manager) Restore() error {
	stored, err := m.store.Load()
	if err != nil {
		m.log.Warn().Err(err).Msg("sesión guardada ilegible, se descarta")
		return m.clearStore()
	}
	if stored == nil {
		return nil
	}
	if !stored.Valid() {
		m.log.Warn().Msg("sesión guardada incompleta (token o usuario faltante), se descarta")
		return m.clearStore()
	}
	if stored.ExpiresAt == nil {
		stored.ExpiresAt = tokenExpiry(stored.Token)
	}
	if stored.Expired(m.now()) {
		m.log.Info().Str("user_id", stored.UserID).Msg("token guardado vencido, se requiere login")
		return m.clearStore()
	}

	m.mu.Lock()
	m.current = stored
	m.expiredReason = ""
	m.mu.Unlock()

	m.log.Info().Str("user_id", stored.UserID).Str("role", stored.Role.Name).Msg("sesión restaurada")
	return nil
}

// Login autentica contra la API remota y publica la nueva sesión.
func (m *Manager) Login(ctx context.Context, email, password string) (*entity.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email y password son requeridos", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	token, user, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if token == "" || user == nil {
		return nil, domain.ErrInvalidLoginResponse
	}

	s := &entity.Session{
		UserID:      user.ID,
		DisplayName: displayName(user),
		Email:       user.Email,
		Role:        user.Role,
		Token:       token,
		ExpiresAt:   tokenExpiry(token),
	}
	if s.UserID == "" {
		return nil, domain.ErrInvalidLoginResponse
	}

	m.mu.Lock()
	m.current = s
	m.expiredReason = ""
	m.mu.Unlock()

	if err := m.store.Save(s); err != nil {
		m.log.Error().Err(err).Msg("no se pudo guardar la sesión; queda solo en memoria")
	}
	m.log.Info().Str("user_id", s.UserID).Str("role", s.Role.Name).Msg("login correcto")
	return s.Clone(), nil
}

// Logout borra la sesión en memoria y en disco. Es idempotente.
func (m *Manager) Logout() error {
	m.mu.Lock()
	had := m.current != nil
	m.current = nil
	m.expiredReason = ""
	m.mu.Unlock()

	if had {
		m.log.Info().Msg("logout")
	}
	return m.clearStore()
}

// Current devuelve una copia de la sesión. Si el token venció localmente la sesión se expira
// sin esperar a que la API lo rechace.
func (m *Manager) Current() (*entity.Session, error) {
	m.mu.RLock()
	s := m.current
	m.mu.RUnlock()

	if s == nil {
		return nil, domain.ErrNoSession
	}
	if s.Expired(m.now()) {
		m.Expire(s.Token, "token vencido")
		return nil, domain.ErrAuthExpired
	}
	return s.Clone(), nil
}

// Expire descarta la sesión si todavía es la de token y deja registrado que la UI debe volver
// al login. Un rechazo tardío de un token anterior no afecta a la sesión vigente.
func (m *Manager) Expire(token, reason string) {
	if reason == "" {
		reason = "sesión expirada"
	}
	m.mu.Lock()
	if m.current != nil && m.current.Token != token {
		m.mu.Unlock()
		m.log.Debug().Str("reason", reason).Msg("rechazo de un token anterior ignorado")
		return
	}
	had := m.current != nil
	m.current = nil
	m.expiredReason = reason
	m.mu.Unlock()

	if had {
		m.log.Warn().Str("reason", reason).Msg("sesión expirada, se requiere login")
	}
	if err := m.clearStore(); err != nil {
		m.log.Error().Err(err).Msg("limpiar sesión guardada")
	}
}

// Redirect devuelve la ruta de login si la última sesión terminó por expiración.
func (m *Manager) Redirect() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil && m.expiredReason != "" {
		return LoginPath, true
	}
	return "", false
}

func (m *Manager) clearStore() error {
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("limpiar sesión guardada: %w", err)
	}
	return nil
}

func displayName(u *entity.User) string {
	switch {
	case strings.TrimSpace(u.Name) != "":
		return u.Name
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}

// tokenExpiry lee exp del token sin verificarlo; tokens opacos no tienen vencimiento local.
func tokenExpiry(token string) *time.Time {
	info, err := pkgjwt.Inspect(token)
	if err != nil || info.ExpiresAt.IsZero() {
		return nil
	}
	t := info.ExpiresAt
	return &t
}
