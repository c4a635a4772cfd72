package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RolesClaim nombre del claim donde el backend publica los roles del usuario.
const RolesClaim = "roles"

// Claims claims estándar más la lista de roles que emite el servicio de inventario.
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles,omitempty"`
}

// Generate genera un token HS256 con subject y roles. Lo usan las herramientas locales y los tests;
// en producción los tokens los emite el backend.
func Generate(secret, subject string, roles []string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Roles: roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// UnverifiedRoles decodifica el segmento de claims SIN verificar la firma y devuelve los roles declarados.
// Cada elemento puede ser un string ("ROLE_ADMIN") o un objeto con "name" o "authority";
// cualquier otro se devuelve como "" en su misma posición.
// El resultado solo sirve como pista de interfaz: el servidor es quien autoriza.
func UnverifiedRoles(tokenString string) ([]string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("jwt: decodificar claims: %w", err)
	}
	raw, ok := claims[RolesClaim]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		// Un elemento no reconocido ocupa su posición como "" (rol desconocido).
		for _, item := range v {
			out = append(out, roleName(item))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("jwt: claim %q con tipo inesperado %T", RolesClaim, raw)
	}
}

func roleName(item interface{}) string {
	switch r := item.(type) {
	case string:
		return r
	case map[string]interface{}:
		for _, key := range []string{"name", "authority"} {
			if s, ok := r[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
