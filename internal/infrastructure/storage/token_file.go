package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/distribution-console/internal/application/ports"
)

var _ ports.TokenStore = (*TokenFile)(nil)

// TokenFile persiste la credencial en un archivo con permisos 0600.
type TokenFile struct {
	path string
}

// NewTokenFile construye el almacén. path vacío usa ~/.distribution-console/token.
func NewTokenFile(path string) *TokenFile {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		path = filepath.Join(home, ".distribution-console", "token")
	}
	return &TokenFile{path: path}
}

// Path ruta del archivo.
func (f *TokenFile) Path() string { return f.path }

// Load devuelve la credencial; os.ErrNotExist si nunca se guardó.
func (f *TokenFile) Load() (string, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Save escribe la credencial reemplazando la anterior.
func (f *TokenFile) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("storage: crear directorio: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0o600); err != nil {
		return fmt.Errorf("storage: escribir token: %w", err)
	}
	return os.Rename(tmp, f.path)
}

// Clear elimina la credencial; no es error si no existía.
func (f *TokenFile) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: borrar token: %w", err)
	}
	return nil
}
