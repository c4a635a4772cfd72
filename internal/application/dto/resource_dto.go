package dto

// Cuerpos enviados al backend. Un puntero nil se serializa como null:
// es lo que recibe el servidor cuando el campo del formulario no es numérico.

// CreateWarehouseRequest POST /admin/warehouses.
type CreateWarehouseRequest struct {
	Capacity *float64 `json:"capacity"`
}

// CreateProductRequest POST /admin/products.
type CreateProductRequest struct {
	Volume *float64 `json:"volume"`
}

// CreateSupplyRequest POST /admin/supplies.
type CreateSupplyRequest struct {
	WarehouseID *int64 `json:"warehouseId"`
	ProductID   *int64 `json:"productId"`
	Quantity    *int64 `json:"quantity"`
}

// CalculateRequest POST /v1/distribution/calculate.
type CalculateRequest struct {
	SupplyID *int64 `json:"supplyId"`
}

// CalculationAck acuse 202 del cálculo de distribución.
type CalculationAck struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// Formularios de la consola.

// WarehouseForm alta de bodega.
type WarehouseForm struct {
	Capacity FormValue `json:"capacity"`
}

// ProductForm alta de tipo de producto.
type ProductForm struct {
	Volume FormValue `json:"volume"`
}

// SupplyForm registro de llegada de mercancía.
type SupplyForm struct {
	WarehouseID FormValue `json:"warehouseId"`
	ProductID   FormValue `json:"productId"`
	Quantity    FormValue `json:"quantity"`
}

// CalculateForm disparo del algoritmo de distribución.
type CalculateForm struct {
	SupplyID FormValue `json:"supplyId"`
}

// SupplyCreatedResponse ID recuperado del acuse ("unknown" si no se pudo leer).
type SupplyCreatedResponse struct {
	SupplyID string `json:"supply_id"`
}

// MessageResponse respuesta genérica de éxito.
type MessageResponse struct {
	Message string `json:"message"`
}
