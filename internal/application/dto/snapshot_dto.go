package dto

import (
	"time"

	"github.com/jhoicas/distribution-console/internal/domain/entity"
)

// ShipmentView envío activo con las acciones que la interfaz puede ofrecer.
type ShipmentView struct {
	entity.Shipment
	Actions []entity.ShipmentAction `json:"actions"`
}

// SnapshotResponse último estado sincronizado de las colecciones.
type SnapshotResponse struct {
	Routes     []ShipmentView         `json:"routes"`
	Warehouses []entity.Warehouse     `json:"warehouses"`
	Products   []entity.Product       `json:"products"`
	Supplies   []entity.Supply        `json:"supplies"`
	Stats      []entity.WarehouseStat `json:"stats"`
	SyncedAt   time.Time              `json:"synced_at"`
}
