package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/distribution-console/internal/application/auth"
	"github.com/jhoicas/distribution-console/internal/application/dto"
)

// AuthHandler login, registro, logout y estado de la sesión local.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	session SessionState
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, session SessionState) *AuthHandler {
	return &AuthHandler{uc: uc, session: session}
}

// Session godoc
// @Summary      Estado de la sesión
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.SessionResponse
// @Router       /api/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return c.JSON(h.sessionResponse())
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, password, email"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.Register(c.UserContext(), in); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "usuario registrado"})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if _, err := h.uc.Login(c.UserContext(), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.sessionResponse())
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.SessionResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(); err != nil {
		return writeError(c, err)
	}
	return c.JSON(h.sessionResponse())
}

func (h *AuthHandler) sessionResponse() dto.SessionResponse {
	caps := h.session.Capabilities()
	return dto.SessionResponse{
		Authenticated:       h.session.Authenticated(),
		Role:                string(h.session.Role()),
		CanManageOperations: caps.CanManageOperations,
		CanManageUsers:      caps.CanManageUsers,
	}
}
