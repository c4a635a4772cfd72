package inventory

import (
	"strconv"

	"github.com/jhoicas/distribution-console/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Utilization resultado del cálculo de ocupación de una bodega.
type Utilization struct {
	FreeCapacity          float64
	UsedCapacity          float64
	UtilizationPercentage float64
}

// ComputeUtilization servicio de dominio puro.
// Libre = Total - Usado; Porcentaje = Usado / Total * 100, acotado a [0, 100]. Total <= 0 devuelve 0%.
func ComputeUtilization(totalCapacity, usedCapacity float64) Utilization {
	total := decimal.NewFromFloat(totalCapacity)
	used := decimal.NewFromFloat(usedCapacity)

	pct := decimal.Zero
	if total.GreaterThan(decimal.Zero) {
		pct = used.Div(total).Mul(hundred)
		if pct.LessThan(decimal.Zero) {
			pct = decimal.Zero
		} else if pct.GreaterThan(hundred) {
			pct = hundred
		}
	}

	return Utilization{
		FreeCapacity:          total.Sub(used).InexactFloat64(),
		UsedCapacity:          used.InexactFloat64(),
		UtilizationPercentage: pct.InexactFloat64(),
	}
}

// StatFor arma el WarehouseStat de una bodega. Sin nombre se usa "WH-<id>".
func StatFor(w entity.Warehouse) entity.WarehouseStat {
	u := ComputeUtilization(w.TotalCapacity, w.UsedCapacity)
	name := w.Name
	if name == "" {
		name = "WH-" + strconv.FormatInt(w.ID, 10)
	}
	return entity.WarehouseStat{
		Name:                  name,
		TotalCapacity:         w.TotalCapacity,
		UsedCapacity:          u.UsedCapacity,
		FreeCapacity:          u.FreeCapacity,
		UtilizationPercentage: u.UtilizationPercentage,
	}
}

// Normalize recalcula libre y porcentaje de una estadística reportada por el servidor
// a partir de total y usado, para que la gráfica nunca dependa de valores inconsistentes.
func Normalize(s entity.WarehouseStat) entity.WarehouseStat {
	u := ComputeUtilization(s.TotalCapacity, s.UsedCapacity)
	s.FreeCapacity = u.FreeCapacity
	s.UtilizationPercentage = u.UtilizationPercentage
	return s
}

// StatsFor calcula una estadística por bodega, en el mismo orden.
func StatsFor(warehouses []entity.Warehouse) []entity.WarehouseStat {
	out := make([]entity.WarehouseStat, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, StatFor(w))
	}
	return out
}
