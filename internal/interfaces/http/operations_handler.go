package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/distribution-console/internal/application/dto"
	"github.com/jhoicas/distribution-console/internal/application/lifecycle"
	"github.com/jhoicas/distribution-console/internal/application/resources"
	"github.com/jhoicas/distribution-console/internal/domain/entity"
)

// OperationsHandler acciones mutantes de logística: estados de envío, altas y cálculo.
type OperationsHandler struct {
	lifecycle *lifecycle.Controller
	gateway   *resources.Gateway
}

// NewOperationsHandler construye el handler.
func NewOperationsHandler(lc *lifecycle.Controller, gw *resources.Gateway) *OperationsHandler {
	return &OperationsHandler{lifecycle: lc, gateway: gw}
}

// Routes godoc
// @Summary      Rutas activas con acciones ofrecidas
// @Tags         shipments
// @Produce      json
// @Success      200  {array}  dto.ShipmentView
// @Router       /api/routes [get]
func (h *OperationsHandler) Routes(c *fiber.Ctx) error {
	return c.JSON(h.lifecycle.Routes())
}

// UpdateShipmentStatus godoc
// @Summary      Avanzar el estado de un envío
// @Tags         shipments
// @Produce      json
// @Param        id      path   int     true  "ID del envío"
// @Param        status  query  string  true  "IN_TRANSIT o DELIVERED"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/status [put]
func (h *OperationsHandler) UpdateShipmentStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
	}
	target := entity.ShipmentStatus(c.Query("status"))
	if !target.IsKnown() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status desconocido: " + string(target)})
	}
	if err := h.lifecycle.RequestTransition(c.UserContext(), id, target); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "estado actualizado a " + string(target)})
}

// CreateWarehouse godoc
// @Summary      Crear bodega
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WarehouseForm  true  "capacidad en m³"
// @Success      201   {object}  dto.MessageResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *OperationsHandler) CreateWarehouse(c *fiber.Ctx) error {
	var in dto.WarehouseForm
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.gateway.CreateWarehouse(c.UserContext(), string(in.Capacity)); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "bodega creada"})
}

// CreateProduct godoc
// @Summary      Crear tipo de producto
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductForm  true  "volumen en m³"
// @Success      201   {object}  dto.MessageResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *OperationsHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.ProductForm
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.gateway.CreateProduct(c.UserContext(), string(in.Volume)); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "producto creado"})
}

// CreateSupply godoc
// @Summary      Registrar llegada de mercancía
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplyForm  true  "bodega, producto, cantidad"
// @Success      201   {object}  dto.SupplyCreatedResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/supplies [post]
func (h *OperationsHandler) CreateSupply(c *fiber.Ctx) error {
	var in dto.SupplyForm
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id, err := h.gateway.CreateSupply(c.UserContext(), string(in.WarehouseID), string(in.ProductID), string(in.Quantity))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SupplyCreatedResponse{SupplyID: id})
}

// TriggerDistribution godoc
// @Summary      Calcular distribución de una llegada
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalculateForm  true  "ID de la llegada"
// @Success      202   {object}  dto.CalculationAck
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/distribution/calculate [post]
func (h *OperationsHandler) TriggerDistribution(c *fiber.Ctx) error {
	var in dto.CalculateForm
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ack, err := h.gateway.TriggerDistribution(c.UserContext(), string(in.SupplyID))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(ack)
}
