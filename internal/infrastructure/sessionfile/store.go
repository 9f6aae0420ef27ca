// Package sessionfile guarda la sesión de la estación en un archivo local, con las mismas
// claves que usaba el navegador (authToken y user). Si hay secreto configurado el archivo
// se sella con NaCl secretbox y una clave derivada por scrypt.
package sessionfile

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"

	"github.com/deporar/sdt-pedidos/internal/application/ports"
	"github.com/deporar/sdt-pedidos/internal/domain/entity"
)

var _ ports.SessionStore = (*Store)(nil)

var sealedMagic = []byte("SDTS1")

const (
	saltLen  = 16
	nonceLen = 24
)

// record contenido del archivo. User se guarda serializado como string, igual que en localStorage.
type record struct {
	AuthToken string `json:"authToken"`
	User      string `json:"user"`
}

type storedUser struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      storedRole `json:"role"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type storedRole struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Store implementa ports.SessionStore sobre un archivo.
type Store struct {
	mu     sync.Mutex
	path   string
	secret []byte
}

// New crea el store; secret vacío guarda el archivo en claro (solo desarrollo).
func New(path, secret string) *Store {
	s := &Store{path: path}
	if secret != "" {
		s.secret = []byte(secret)
	}
	return s
}

// Load lee la sesión; nil, nil si el archivo no existe.
func (s *Store) Load() (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("sessionfile: leer: %w", err)
	}
	if s.secret != nil {
		if data, err = s.open(data); err != nil {
			return nil, err
		}
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("sessionfile: contenido inválido: %w", err)
	}
	sess := &entity.Session{Token: rec.AuthToken}
	if rec.User != "" {
		var u storedUser
		if err := json.Unmarshal([]byte(rec.User), &u); err != nil {
			return nil, fmt.Errorf("sessionfile: usuario inválido: %w", err)
		}
		sess.UserID = u.ID
		sess.DisplayName = u.Name
		sess.Email = u.Email
		sess.Role = entity.Role{ID: u.Role.ID, Name: u.Role.Name, Description: u.Role.Description}
		sess.ExpiresAt = u.ExpiresAt
	}
	return sess, nil
}

// Save escribe la sesión de forma atómica (archivo temporal + rename) con permisos 0600.
func (s *Store) Save(sess *entity.Session) error {
	if sess == nil {
		return s.Clear()
	}
	user, err := json.Marshal(storedUser{
		ID:        sess.UserID,
		Name:      sess.DisplayName,
		Email:     sess.Email,
		Role:      storedRole{ID: sess.Role.ID, Name: sess.Role.Name, Description: sess.Role.Description},
		ExpiresAt: sess.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("sessionfile: serializar usuario: %w", err)
	}
	data, err := json.Marshal(record{AuthToken: sess.Token, User: string(user)})
	if err != nil {
		return fmt.Errorf("sessionfile: serializar: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.secret != nil {
		if data, err = s.seal(data); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("sessionfile: crear directorio: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return fmt.Errorf("sessionfile: archivo temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("sessionfile: escribir: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("sessionfile: permisos: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("sessionfile: cerrar: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("sessionfile: reemplazar: %w", err)
	}
	return nil
}

// Clear borra el archivo; no existir no es error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("sessionfile: borrar: %w", err)
	}
	return nil
}

func (s *Store) key(salt []byte) (*[32]byte, error) {
	k, err := scrypt.Key(s.secret, salt, 1<<15, 8, 1, 32)
	if err != nil {
		return nil, fmt.Errorf("sessionfile: derivar clave: %w", err)
	}
	var key [32]byte
	copy(key[:], k)
	return &key, nil
}

// seal formato: magic | salt | nonce | secretbox.
func (s *Store) seal(plain []byte) ([]byte, error) {
	salt := make([]byte, saltLen)
	var nonce [nonceLen]byte
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("sessionfile: salt: %w", err)
	}
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("sessionfile: nonce: %w", err)
	}
	key, err := s.key(salt)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(sealedMagic)+saltLen+nonceLen+len(plain)+secretbox.Overhead)
	out = append(out, sealedMagic...)
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plain, &nonce, key), nil
}

func (s *Store) open(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, sealedMagic) || len(data) < len(sealedMagic)+saltLen+nonceLen+secretbox.Overhead {
		return nil, fmt.Errorf("sessionfile: el archivo no está sellado")
	}
	data = data[len(sealedMagic):]
	salt := data[:saltLen]
	var nonce [nonceLen]byte
	copy(nonce[:], data[saltLen:saltLen+nonceLen])
	key, err := s.key(salt)
	if err != nil {
		return nil, err
	}
	plain, ok := secretbox.Open(nil, data[saltLen+nonceLen:], &nonce, key)
	if !ok {
		return nil, fmt.Errorf("sessionfile: no se pudo abrir (secreto distinto o archivo alterado)")
	}
	return plain, nil
}
