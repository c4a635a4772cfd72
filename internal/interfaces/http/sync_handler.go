package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/distribution-console/internal/application/datasync"
	"github.com/jhoicas/distribution-console/internal/application/dto"
	"github.com/jhoicas/distribution-console/internal/application/lifecycle"
	"github.com/jhoicas/distribution-console/internal/application/ports"
	"github.com/jhoicas/distribution-console/internal/domain/entity"
	"github.com/jhoicas/distribution-console/internal/domain/inventory"
)

// NewSnapshotResponse arma la vista de una foto: rutas activas con sus acciones para caps.
func NewSnapshotResponse(s datasync.Snapshot, caps entity.Capabilities) dto.SnapshotResponse {
	return dto.SnapshotResponse{
		Routes:     lifecycle.RouteViews(s.Shipments, caps),
		Warehouses: s.Warehouses,
		Products:   s.Products,
		Supplies:   s.Supplies,
		Stats:      s.Stats,
		SyncedAt:   s.SyncedAt,
	}
}

// SyncHandler lectura de la última foto sincronizada.
type SyncHandler struct {
	sched *datasync.Scheduler
	caps  ports.CapabilitySource
	stats ports.StatsReader
}

// NewSyncHandler construye el handler. stats puede ser nil (sin /stats/server).
func NewSyncHandler(sched *datasync.Scheduler, caps ports.CapabilitySource, stats ports.StatsReader) *SyncHandler {
	return &SyncHandler{sched: sched, caps: caps, stats: stats}
}

// Snapshot godoc
// @Summary      Última foto sincronizada
// @Tags         sync
// @Produce      json
// @Success      200  {object}  dto.SnapshotResponse
// @Router       /api/snapshot [get]
func (h *SyncHandler) Snapshot(c *fiber.Ctx) error {
	return c.JSON(NewSnapshotResponse(h.sched.Snapshot(), h.caps.Capabilities()))
}

// Refresh godoc
// @Summary      Forzar sincronización
// @Tags         sync
// @Produce      json
// @Success      200  {object}  dto.SnapshotResponse
// @Router       /api/sync [post]
func (h *SyncHandler) Refresh(c *fiber.Ctx) error {
	h.sched.RefreshNow(c.UserContext())
	return h.Snapshot(c)
}

// Stats godoc
// @Summary      Ocupación de bodegas (calculada en la consola)
// @Tags         sync
// @Produce      json
// @Success      200  {array}  entity.WarehouseStat
// @Router       /api/stats [get]
func (h *SyncHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(h.sched.Snapshot().Stats)
}

// ServerStats godoc
// @Summary      Ocupación de bodegas según el servidor
// @Tags         sync
// @Produce      json
// @Success      200  {array}  entity.WarehouseStat
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/stats/server [get]
func (h *SyncHandler) ServerStats(c *fiber.Ctx) error {
	raw, err := h.stats.FetchWarehouseStats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	stats, err := datasync.DecodeStats(raw)
	if err != nil {
		return writeError(c, err)
	}
	for i := range stats {
		stats[i] = inventory.Normalize(stats[i])
	}
	return c.JSON(stats)
}
