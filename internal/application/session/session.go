package session

import (
	"errors"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/distribution-console/internal/application/ports"
	"github.com/jhoicas/distribution-console/internal/domain/entity"
	"github.com/jhoicas/distribution-console/pkg/jwt"
)

// RoleFromToken deriva el rol del primer elemento del claim "roles".
// Nunca falla: token ausente, truncado o sin roles devuelve RoleUnknown.
func RoleFromToken(token string) entity.Role {
	if token == "" {
		return entity.RoleUnknown
	}
	roles, err := jwt.UnverifiedRoles(token)
	if err != nil || len(roles) == 0 {
		return entity.RoleUnknown
	}
	return entity.ParseRole(roles[0])
}

// Session contexto explícito de la credencial: se carga al arrancar y se limpia en logout.
// El rol se deriva una vez por credencial cargada.
type Session struct {
	store ports.TokenStore
	log   zerolog.Logger

	mu    sync.RWMutex
	token string
	role  entity.Role
}

// New construye una sesión vacía (RoleUnknown). store puede ser nil para sesiones en memoria.
func New(store ports.TokenStore, log zerolog.Logger) *Session {
	return &Session{store: store, log: log, role: entity.RoleUnknown}
}

// Load lee la credencial persistida. Que no exista no es error.
func (s *Session) Load() error {
	if s.store == nil {
		return nil
	}
	token, err := s.store.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	s.set(token)
	return nil
}

// SetToken reemplaza la credencial (tras login) y la persiste.
func (s *Session) SetToken(token string) error {
	s.set(token)
	if s.store == nil {
		return nil
	}
	return s.store.Save(token)
}

// Clear descarta la credencial (logout).
func (s *Session) Clear() error {
	s.set("")
	if s.store == nil {
		return nil
	}
	return s.store.Clear()
}

func (s *Session) set(token string) {
	role := RoleFromToken(token)
	s.mu.Lock()
	s.token = token
	s.role = role
	s.mu.Unlock()
	s.log.Debug().Str("role", string(role)).Bool("authenticated", token != "").Msg("sesión actualizada")
}

// Token credencial actual para el header Authorization ("" si no hay).
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated indica si hay credencial cargada.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Role rol derivado de la credencial actual.
func (s *Session) Role() entity.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// Capabilities permisos de interfaz del rol actual.
func (s *Session) Capabilities() entity.Capabilities {
	return s.Role().Capabilities()
}
