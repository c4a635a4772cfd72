package resources

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/distribution-console/internal/application/dto"
	"github.com/jhoicas/distribution-console/internal/application/ports"
	"github.com/jhoicas/distribution-console/internal/domain"
)

const (
	mutationCreateWarehouse = "create_warehouse"
	mutationCreateProduct   = "create_product"
	mutationCreateSupply    = "create_supply"
	mutationCalculate       = "trigger_distribution"
)

// Gateway altas de bodegas, productos y llegadas, más el disparo del cálculo de distribución.
// Todas las acciones exigen CanManageOperations; sin ese permiso no se llama al backend.
type Gateway struct {
	api       ports.ResourceWriter
	caps      ports.CapabilitySource
	refresher ports.Refresher
	rec       ports.MutationRecorder
	log       zerolog.Logger
}

// NewGateway construye el gateway. rec puede ser nil.
func NewGateway(api ports.ResourceWriter, caps ports.CapabilitySource, refresher ports.Refresher, rec ports.MutationRecorder, log zerolog.Logger) *Gateway {
	return &Gateway{api: api, caps: caps, refresher: refresher, rec: rec, log: log}
}

// CreateWarehouse crea una bodega con la capacidad indicada (m³) y resincroniza.
func (g *Gateway) CreateWarehouse(ctx context.Context, capacity string) error {
	if err := g.gate(mutationCreateWarehouse); err != nil {
		return err
	}
	err := g.api.CreateWarehouse(ctx, dto.CreateWarehouseRequest{Capacity: parseFloatField(capacity)})
	return g.finish(ctx, mutationCreateWarehouse, err)
}

// CreateProduct crea un tipo de producto con el volumen indicado (m³) y resincroniza.
func (g *Gateway) CreateProduct(ctx context.Context, volume string) error {
	if err := g.gate(mutationCreateProduct); err != nil {
		return err
	}
	err := g.api.CreateProduct(ctx, dto.CreateProductRequest{Volume: parseFloatField(volume)})
	return g.finish(ctx, mutationCreateProduct, err)
}

// CreateSupply registra una llegada y devuelve el ID recuperado del acuse
// (UnknownSupplyID si el formato no lo permite; eso no es un error).
func (g *Gateway) CreateSupply(ctx context.Context, warehouseID, productID, quantity string) (string, error) {
	if err := g.gate(mutationCreateSupply); err != nil {
		return "", err
	}
	raw, err := g.api.CreateSupply(ctx, dto.CreateSupplyRequest{
		WarehouseID: parseIntField(warehouseID),
		ProductID:   parseIntField(productID),
		Quantity:    parseIntField(quantity),
	})
	if err := g.finish(ctx, mutationCreateSupply, err); err != nil {
		return "", err
	}
	id := ExtractSupplyID(raw)
	if id == UnknownSupplyID {
		g.log.Warn().Str("ack", string(raw)).Msg("no se pudo leer el ID de la llegada creada")
	}
	return id, nil
}

// TriggerDistribution pide al servidor calcular la distribución de una llegada.
// El cálculo es asíncrono: los envíos resultantes aparecen en los siguientes ciclos de sondeo.
func (g *Gateway) TriggerDistribution(ctx context.Context, supplyID string) (*dto.CalculationAck, error) {
	if err := g.gate(mutationCalculate); err != nil {
		return nil, err
	}
	ack, err := g.api.TriggerCalculation(ctx, dto.CalculateRequest{SupplyID: parseIntField(supplyID)})
	if err != nil {
		g.observe(mutationCalculate, ports.OutcomeFailed)
		g.log.Error().Err(err).Str("supply_id", supplyID).Msg("cálculo de distribución rechazado")
		return nil, err
	}
	g.observe(mutationCalculate, ports.OutcomeOK)
	g.log.Info().Str("supply_id", supplyID).Str("request_id", ack.RequestID).Msg("cálculo de distribución solicitado")
	return ack, nil
}

func (g *Gateway) gate(action string) error {
	if g.caps.Capabilities().CanManageOperations {
		return nil
	}
	g.observe(action, ports.OutcomeSkipped)
	return fmt.Errorf("%w: el rol %s no puede ejecutar %s", domain.ErrForbidden, g.caps.Role(), action)
}

func (g *Gateway) finish(ctx context.Context, action string, err error) error {
	if err != nil {
		g.observe(action, ports.OutcomeFailed)
		g.log.Error().Err(err).Str("action", action).Msg("alta rechazada")
		return err
	}
	g.observe(action, ports.OutcomeOK)
	g.refresher.RefreshNow(ctx)
	return nil
}

func (g *Gateway) observe(action, outcome string) {
	if g.rec != nil {
		g.rec.ObserveMutation(action, outcome)
	}
}
