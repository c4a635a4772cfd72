package entity

// Warehouse bodega registrada en el servidor. UsedCapacity solo viene cuando el backend la reporta.
type Warehouse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name,omitempty"`
	TotalCapacity float64 `json:"totalCapacity"`
	UsedCapacity  float64 `json:"usedCapacity,omitempty"`
}

// WarehouseStat datos de ocupación para la visualización; se recalcula en cada ciclo de sincronización.
type WarehouseStat struct {
	Name                  string  `json:"name"`
	TotalCapacity         float64 `json:"totalCapacity"`
	UsedCapacity          float64 `json:"usedCapacity"`
	FreeCapacity          float64 `json:"freeCapacity"`
	UtilizationPercentage float64 `json:"utilizationPercentage"`
}
