package scan

import (
	"context"
	"fmt"
	"sync"

	"github.com/deporar/sdt-pedidos/internal/domain"
	"github.com/deporar/sdt-pedidos/pkg/logger"
)

// Device cámara o lector físico.
type Device interface {
	Start(ctx context.Context) error
	Stop() error
}

// Guard garantiza un único par inicio/parada del lector por montaje, sin importar
// cuántas veces se pida. Release tras una lectura aceptada o al salir de la pantalla;
// Acquire siguiente arranca de cero.
type Guard struct {
	mu     sync.Mutex
	dev    Device
	active bool
	log    *logger.Logger
}

// NewGuard envuelve el dispositivo. dev nil = estación sin lector (solo carga manual).
func NewGuard(dev Device, log *logger.Logger) *Guard {
	return &Guard{dev: dev, log: log}
}

// Acquire inicia el lector si no está activo.
func (g *Guard) Acquire(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.dev == nil {
		return domain.ErrScannerUnavailable
	}
	if g.active {
		return nil
	}
	if err := g.dev.Start(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrScannerUnavailable, err)
	}
	g.active = true
	g.log.Debug().Msg("lector iniciado")
	return nil
}

// Release detiene el lector si estaba activo. Idempotente.
func (g *Guard) Release() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.active {
		return nil
	}
	g.active = false
	if err := g.dev.Stop(); err != nil {
		g.log.Warn().Err(err).Msg("el lector no se detuvo limpiamente")
		return err
	}
	g.log.Debug().Msg("lector detenido")
	return nil
}

// Active indica si el lector está tomado.
func (g *Guard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// NoDevice dispositivo lógico para estaciones donde la cámara la maneja el navegador:
// el servicio solo lleva la cuenta del recurso.
type NoDevice struct{}

func (NoDevice) Start(context.Context) error { return nil }
func (NoDevice) Stop() error                 { return nil }
