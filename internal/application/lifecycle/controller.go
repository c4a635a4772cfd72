package lifecycle

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/distribution-console/internal/application/dto"
	"github.com/jhoicas/distribution-console/internal/application/ports"
	"github.com/jhoicas/distribution-console/internal/domain"
	"github.com/jhoicas/distribution-console/internal/domain/entity"
)

const mutationTransition = "shipment_transition"

// ShipmentSource envíos de la última sincronización (lo implementa *datasync.Scheduler).
type ShipmentSource interface {
	Shipments() []entity.Shipment
}

// Controller máquina de estados de envíos: PLANNED -> IN_TRANSIT -> DELIVERED.
// No aplica cambios optimistas: tras un éxito fuerza una resincronización y el estado
// mostrado es siempre el del servidor. Tampoco deduplica peticiones concurrentes.
type Controller struct {
	api       ports.ShipmentStatusWriter
	caps      ports.CapabilitySource
	shipments ShipmentSource
	refresher ports.Refresher
	rec       ports.MutationRecorder
	log       zerolog.Logger
}

// NewController construye el controlador. rec puede ser nil.
func NewController(
	api ports.ShipmentStatusWriter,
	caps ports.CapabilitySource,
	shipments ShipmentSource,
	refresher ports.Refresher,
	rec ports.MutationRecorder,
	log zerolog.Logger,
) *Controller {
	return &Controller{api: api, caps: caps, shipments: shipments, refresher: refresher, rec: rec, log: log}
}

// RequestTransition pide al servidor avanzar el envío id a target.
// No se intenta la llamada si el rol no puede gestionar operaciones, si el envío no está en
// la última foto o si target no es el siguiente estado de su estado sincronizado.
func (c *Controller) RequestTransition(ctx context.Context, id int64, target entity.ShipmentStatus) error {
	if !c.caps.Capabilities().CanManageOperations {
		c.observe(ports.OutcomeSkipped)
		return fmt.Errorf("%w: el rol %s no puede cambiar estados de envío", domain.ErrForbidden, c.caps.Role())
	}
	current, ok := c.find(id)
	if !ok {
		return fmt.Errorf("%w: envío #%d", domain.ErrNotFound, id)
	}
	if !current.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s (envío #%d)", domain.ErrInvalidTransition, current.Status, target, id)
	}

	if err := c.api.UpdateShipmentStatus(ctx, id, target); err != nil {
		c.observe(ports.OutcomeFailed)
		c.log.Error().Err(err).Int64("shipment_id", id).Str("target", string(target)).Msg("cambio de estado rechazado")
		return fmt.Errorf("%w: envío #%d a %s: %w", domain.ErrTransitionFailed, id, target, err)
	}

	c.observe(ports.OutcomeOK)
	c.log.Info().Int64("shipment_id", id).Str("from", string(current.Status)).Str("to", string(target)).Msg("estado de envío actualizado")
	c.refresher.RefreshNow(ctx)
	return nil
}

// Routes envíos activos de la última foto con las acciones ofrecidas al rol actual.
func (c *Controller) Routes() []dto.ShipmentView {
	return RouteViews(c.shipments.Shipments(), c.caps.Capabilities())
}

// RouteViews filtra shipments a rutas activas y les adjunta sus acciones para caps.
func RouteViews(shipments []entity.Shipment, caps entity.Capabilities) []dto.ShipmentView {
	active := ActiveRoutes(shipments)
	out := make([]dto.ShipmentView, 0, len(active))
	for _, s := range active {
		out = append(out, dto.ShipmentView{Shipment: s, Actions: ActionsFor(s, caps)})
	}
	return out
}

func (c *Controller) find(id int64) (entity.Shipment, bool) {
	for _, s := range c.shipments.Shipments() {
		if s.ID == id {
			return s, true
		}
	}
	return entity.Shipment{}, false
}

func (c *Controller) observe(outcome string) {
	if c.rec != nil {
		c.rec.ObserveMutation(mutationTransition, outcome)
	}
}

// ActionsFor acciones que la interfaz puede ofrecer para s: ninguna sin permisos,
// ninguna para DELIVERED ni para estados desconocidos.
func ActionsFor(s entity.Shipment, caps entity.Capabilities) []entity.ShipmentAction {
	if !caps.CanManageOperations {
		return []entity.ShipmentAction{}
	}
	a, ok := s.Status.NextAction()
	if !ok {
		return []entity.ShipmentAction{}
	}
	return []entity.ShipmentAction{a}
}

// ActiveRoutes excluye los envíos con origen igual a destino (stock retenido en origen).
func ActiveRoutes(shipments []entity.Shipment) []entity.Shipment {
	out := make([]entity.Shipment, 0, len(shipments))
	for _, s := range shipments {
		if s.IsRetained() {
			continue
		}
		out = append(out, s)
	}
	return out
}
