package entity

// SupplyStatus vocabulario definido por el servidor.
type SupplyStatus string

const (
	SupplyReceived    SupplyStatus = "RECEIVED"
	SupplyProcessed   SupplyStatus = "PROCESSED"
	SupplyDistributed SupplyStatus = "DISTRIBUTED"
	SupplyOther       SupplyStatus = "OTHER"
)

// Bucket agrupa valores desconocidos en SupplyOther.
func (s SupplyStatus) Bucket() SupplyStatus {
	switch s {
	case SupplyReceived, SupplyProcessed, SupplyDistributed:
		return s
	default:
		return SupplyOther
	}
}

// Supply llegada registrada de un producto a una bodega, pendiente de distribución.
type Supply struct {
	ID          int64        `json:"id"`
	WarehouseID int64        `json:"warehouseId"`
	ProductID   int64        `json:"productId"`
	Quantity    int64        `json:"quantity"`
	Status      SupplyStatus `json:"status"`
}
