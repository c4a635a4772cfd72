package ports

import (
	"context"

	"github.com/jhoicas/distribution-console/internal/application/dto"
	"github.com/jhoicas/distribution-console/internal/domain/entity"
)

// CollectionReader puerto de lectura de las cuatro colecciones sincronizadas.
// Devuelve el cuerpo crudo: la validación de forma la hace el sincronizador.
type CollectionReader interface {
	FetchShipments(ctx context.Context) ([]byte, error)
	FetchWarehouses(ctx context.Context) ([]byte, error)
	FetchProducts(ctx context.Context) ([]byte, error)
	FetchSupplies(ctx context.Context) ([]byte, error)
}

// StatsReader lectura de /admin/warehouses/stats.
type StatsReader interface {
	FetchWarehouseStats(ctx context.Context) ([]byte, error)
}

// ShipmentStatusWriter actualización de estado de un envío.
type ShipmentStatusWriter interface {
	UpdateShipmentStatus(ctx context.Context, id int64, status entity.ShipmentStatus) error
}

// ResourceWriter altas de recursos y disparo del cálculo de distribución.
type ResourceWriter interface {
	CreateWarehouse(ctx context.Context, in dto.CreateWarehouseRequest) error
	CreateProduct(ctx context.Context, in dto.CreateProductRequest) error
	// CreateSupply devuelve el cuerpo crudo del acuse para recuperar el ID generado.
	CreateSupply(ctx context.Context, in dto.CreateSupplyRequest) ([]byte, error)
	TriggerCalculation(ctx context.Context, in dto.CalculateRequest) (*dto.CalculationAck, error)
}

// AuthAPI emisión de credenciales (externa).
type AuthAPI interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, in dto.RegisterRequest) error
}

// UserAdminAPI administración de usuarios.
type UserAdminAPI interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	UpdateUserRole(ctx context.Context, userID int64, roleName string) error
}

// TokenStore colaborador de almacenamiento de la credencial.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// CapabilitySource fuente del rol y permisos de interfaz (lo implementa *session.Session).
type CapabilitySource interface {
	Role() entity.Role
	Capabilities() entity.Capabilities
}

// Refresher fuerza una sincronización completa (lo implementa *datasync.Scheduler).
type Refresher interface {
	RefreshNow(ctx context.Context)
}

// Resultados que se reportan a los recorders de métricas.
const (
	OutcomeOK        = "ok"
	OutcomeFailed    = "failed"
	OutcomeMalformed = "malformed"
	OutcomeSkipped   = "skipped"
)

// MutationRecorder registra el resultado de una acción mutante (Outcome*).
type MutationRecorder interface {
	ObserveMutation(action, outcome string)
}
