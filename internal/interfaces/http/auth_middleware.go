package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/distribution-console/internal/application/dto"
	"github.com/jhoicas/distribution-console/internal/application/ports"
	"github.com/jhoicas/distribution-console/internal/domain/entity"
)

// LocalRole key de Fiber Locals con el rol derivado de la sesión.
const LocalRole = "role"

// SessionState lo que los middlewares necesitan de la sesión (lo implementa *session.Session).
type SessionState interface {
	ports.CapabilitySource
	Authenticated() bool
}

// RequireSession exige credencial cargada y deja el rol en c.Locals.
func RequireSession(s SessionState) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.Authenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "inicie sesión primero"})
		}
		c.Locals(LocalRole, string(s.Role()))
		return c.Next()
	}
}

// RequireCapability corta con 403 FORBIDDEN si el rol actual no tiene el permiso.
// Es el mismo gate de los casos de uso: la petición no llega al backend.
func RequireCapability(s ports.CapabilitySource, name string, allowed func(entity.Capabilities) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !allowed(s.Capabilities()) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol " + string(s.Role()) + " no tiene el permiso " + name,
			})
		}
		return c.Next()
	}
}

// RequireOperations permiso de gestión de operaciones (ADMIN, LOGISTICIAN).
func RequireOperations(s ports.CapabilitySource) fiber.Handler {
	return RequireCapability(s, "can_manage_operations", func(c entity.Capabilities) bool { return c.CanManageOperations })
}

// RequireUserAdmin permiso de administración de usuarios (ADMIN).
func RequireUserAdmin(s ports.CapabilitySource) fiber.Handler {
	return RequireCapability(s, "can_manage_users", func(c entity.Capabilities) bool { return c.CanManageUsers })
}

// GetRole devuelve el rol del contexto (después de RequireSession).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
