package entity

import "time"

// ShipmentStatus estado del ciclo de vida de un envío. Lo asigna el servidor al crearlo.
type ShipmentStatus string

const (
	ShipmentPlanned   ShipmentStatus = "PLANNED"
	ShipmentInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentDelivered ShipmentStatus = "DELIVERED"
)

// ShipmentAction acción de interfaz que avanza un envío a Target.
type ShipmentAction struct {
	Name   string         `json:"name"`
	Target ShipmentStatus `json:"target"`
}

// shipmentTransitions tabla de transiciones: PLANNED -> IN_TRANSIT -> DELIVERED.
// DELIVERED es terminal.
var shipmentTransitions = map[ShipmentStatus]ShipmentAction{
	ShipmentPlanned:   {Name: "start transit", Target: ShipmentInTransit},
	ShipmentInTransit: {Name: "complete", Target: ShipmentDelivered},
}

// IsKnown indica si el estado pertenece al vocabulario del ciclo de vida.
func (s ShipmentStatus) IsKnown() bool {
	switch s {
	case ShipmentPlanned, ShipmentInTransit, ShipmentDelivered:
		return true
	}
	return false
}

// IsTerminal indica si no hay transiciones de salida.
func (s ShipmentStatus) IsTerminal() bool {
	return s == ShipmentDelivered
}

// NextAction devuelve la única acción permitida desde s, si existe.
func (s ShipmentStatus) NextAction() (ShipmentAction, bool) {
	a, ok := shipmentTransitions[s]
	return a, ok
}

// CanTransitionTo indica si from -> to está en la tabla de transiciones.
func (s ShipmentStatus) CanTransitionTo(to ShipmentStatus) bool {
	a, ok := shipmentTransitions[s]
	return ok && a.Target == to
}

// ShipmentItem línea de un envío.
type ShipmentItem struct {
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
}

// Shipment movimiento planificado o en curso entre dos bodegas.
type Shipment struct {
	ID            int64          `json:"id"`
	SourceID      int64          `json:"sourceId"`
	DestinationID int64          `json:"destinationId"`
	Status        ShipmentStatus `json:"status"`
	Items         []ShipmentItem `json:"items"`
	CreatedAt     LocalTime      `json:"createdAt"`
}

// IsRetained indica que el envío representa stock que se queda en su bodega de origen.
func (s Shipment) IsRetained() bool {
	return s.SourceID == s.DestinationID
}

// LocalTime tiempo serializado por el backend como LocalDateTime (sin zona),
// con o sin fracción de segundos. Un valor que no se puede interpretar queda en cero.
type LocalTime struct {
	time.Time
}

var localTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// UnmarshalJSON acepta "2025-01-02T10:00:00.123456" y RFC3339.
func (t *LocalTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || len(s) < 2 {
		t.Time = time.Time{}
		return nil
	}
	s = s[1 : len(s)-1]
	for _, layout := range localTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

// MarshalJSON serializa en RFC3339.
func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Time.Format(time.RFC3339Nano) + `"`), nil
}
