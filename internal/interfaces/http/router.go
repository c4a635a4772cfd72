package http

import (
	"net/http"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/distribution-console/internal/application/auth"
	"github.com/jhoicas/distribution-console/internal/application/datasync"
	"github.com/jhoicas/distribution-console/internal/application/lifecycle"
	"github.com/jhoicas/distribution-console/internal/application/ports"
	"github.com/jhoicas/distribution-console/internal/application/resources"
	"github.com/jhoicas/distribution-console/internal/application/users"
	"github.com/jhoicas/distribution-console/internal/interfaces/ws"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session   SessionState
	AuthUC    *auth.AuthUseCase
	UserUC    *users.UserUseCase
	Scheduler *datasync.Scheduler
	Lifecycle *lifecycle.Controller
	Gateway   *resources.Gateway
	Stats     ports.StatsReader
	Hub       *ws.Hub      // opcional: sin hub no hay /ws
	Metrics   http.Handler // opcional: sin handler no hay /metrics
	AppName   string
}

// Router registra las rutas de la consola.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName, "authenticated": deps.Session.Authenticated()})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}
	if deps.Hub != nil {
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return c.SendStatus(fiber.StatusUpgradeRequired)
		})
		app.Get("/ws", websocket.New(deps.Hub.Serve))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Session)
	api.Get("/session", authHandler.Session)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/logout", authHandler.Logout)

	// Requieren credencial cargada
	protected := api.Group("", RequireSession(deps.Session))

	syncHandler := NewSyncHandler(deps.Scheduler, deps.Session, deps.Stats)
	protected.Get("/snapshot", syncHandler.Snapshot)
	protected.Post("/sync", syncHandler.Refresh)
	protected.Get("/stats", syncHandler.Stats)
	if deps.Stats != nil {
		protected.Get("/stats/server", syncHandler.ServerStats)
	}

	ops := NewOperationsHandler(deps.Lifecycle, deps.Gateway)
	protected.Get("/routes", ops.Routes)
	canOperate := RequireOperations(deps.Session)
	protected.Put("/shipments/:id/status", canOperate, ops.UpdateShipmentStatus)
	protected.Post("/warehouses", canOperate, ops.CreateWarehouse)
	protected.Post("/products", canOperate, ops.CreateProduct)
	protected.Post("/supplies", canOperate, ops.CreateSupply)
	protected.Post("/distribution/calculate", canOperate, ops.TriggerDistribution)

	// Usuarios (solo ADMIN)
	userHandler := NewUserHandler(deps.UserUC)
	usersGroup := protected.Group("/users", RequireUserAdmin(deps.Session))
	usersGroup.Get("/", userHandler.List)
	usersGroup.Put("/:id/role", userHandler.ChangeRole)
}
