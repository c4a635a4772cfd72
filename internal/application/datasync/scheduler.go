package datasync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/distribution-console/internal/application/ports"
	"github.com/jhoicas/distribution-console/internal/domain"
	"github.com/jhoicas/distribution-console/internal/domain/entity"
	"github.com/jhoicas/distribution-console/internal/domain/inventory"
)

// DefaultInterval periodo de sondeo por defecto.
const DefaultInterval = 2 * time.Second

// Nombres de colección (logs y métricas).
const (
	CollectionShipments  = "shipments"
	CollectionWarehouses = "warehouses"
	CollectionProducts   = "products"
	CollectionSupplies   = "supplies"
)

// ErrAlreadyRunning Start sobre un scheduler en marcha.
var ErrAlreadyRunning = errors.New("datasync: el scheduler ya está en marcha")

// Recorder métricas del ciclo de sincronización (lo implementa *metrics.Collector).
// outcome es uno de ports.OutcomeOK, ports.OutcomeFailed o ports.OutcomeMalformed.
type Recorder interface {
	ObserveFetch(collection, outcome string)
	ObserveCycle()
}

// Snapshot última foto sincronizada. Cada colección se reemplaza completa en cada lectura;
// los slices no se modifican después de publicarse.
type Snapshot struct {
	Shipments  []entity.Shipment
	Warehouses []entity.Warehouse
	Products   []entity.Product
	Supplies   []entity.Supply
	Stats      []entity.WarehouseStat
	SyncedAt   time.Time
}

// Scheduler tarea periódica cancelable que mantiene cuatro colecciones independientes
// alineadas con el servidor. RefreshNow comparte exactamente el mismo camino de lectura.
type Scheduler struct {
	api      ports.CollectionReader
	interval time.Duration
	log      zerolog.Logger
	rec      Recorder

	mu   sync.RWMutex
	snap Snapshot

	subsMu sync.Mutex
	subs   []func(Snapshot)

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler construye el scheduler con colecciones vacías. rec puede ser nil.
func NewScheduler(api ports.CollectionReader, interval time.Duration, log zerolog.Logger, rec Recorder) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		api:      api,
		interval: interval,
		log:      log,
		rec:      rec,
		snap: Snapshot{
			Shipments:  []entity.Shipment{},
			Warehouses: []entity.Warehouse{},
			Products:   []entity.Product{},
			Supplies:   []entity.Supply{},
			Stats:      []entity.WarehouseStat{},
		},
	}
}

// OnSync suscribe fn al final de cada ciclo (periódico o manual). fn no debe bloquear.
func (s *Scheduler) OnSync(fn func(Snapshot)) {
	s.subsMu.Lock()
	s.subs = append(s.subs, fn)
	s.subsMu.Unlock()
}

// Start lanza un ciclo inmediato y luego uno por intervalo hasta Stop o hasta que ctx termine.
func (s *Scheduler) Start(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.cancel != nil {
		return ErrAlreadyRunning
	}
	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go s.loop(loopCtx, done)
	s.log.Info().Dur("interval", s.interval).Msg("sincronización periódica iniciada")
	return nil
}

// Stop cancela la tarea y espera a que termine: al volver no queda ningún ciclo pendiente.
// Es idempotente.
func (s *Scheduler) Stop() {
	s.runMu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.log.Info().Msg("sincronización periódica detenida")
}

// Running indica si la tarea periódica está activa.
func (s *Scheduler) Running() bool {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.cancel != nil
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	s.syncAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			s.syncAll(ctx)
		}
	}
}

// RefreshNow resincronización completa, síncrona, tras una mutación exitosa.
func (s *Scheduler) RefreshNow(ctx context.Context) {
	s.syncAll(ctx)
}

// Snapshot copia de la última foto.
func (s *Scheduler) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// syncAll lanza las cuatro lecturas en paralelo. Ninguna falla se propaga:
// cada colección cae a vacío por su cuenta.
func (s *Scheduler) syncAll(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		items, ok := fetch[entity.Shipment](ctx, s, CollectionShipments, s.api.FetchShipments)
		if ok {
			s.mu.Lock()
			s.snap.Shipments = items
			s.mu.Unlock()
		}
		return nil
	})
	g.Go(func() error {
		items, ok := fetch[entity.Warehouse](ctx, s, CollectionWarehouses, s.api.FetchWarehouses)
		if ok {
			stats := inventory.StatsFor(items)
			s.mu.Lock()
			s.snap.Warehouses = items
			s.snap.Stats = stats
			s.mu.Unlock()
		}
		return nil
	})
	g.Go(func() error {
		items, ok := fetch[entity.Product](ctx, s, CollectionProducts, s.api.FetchProducts)
		if ok {
			s.mu.Lock()
			s.snap.Products = items
			s.mu.Unlock()
		}
		return nil
	})
	g.Go(func() error {
		items, ok := fetch[entity.Supply](ctx, s, CollectionSupplies, s.api.FetchSupplies)
		if ok {
			s.mu.Lock()
			s.snap.Supplies = items
			s.mu.Unlock()
		}
		return nil
	})
	_ = g.Wait()

	if ctx.Err() != nil {
		return
	}

	s.mu.Lock()
	s.snap.SyncedAt = time.Now()
	snap := s.snap
	s.mu.Unlock()

	if s.rec != nil {
		s.rec.ObserveCycle()
	}

	s.subsMu.Lock()
	subs := append([]func(Snapshot){}, s.subs...)
	s.subsMu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

// fetch lee y valida una colección. ok=false solo cuando ctx fue cancelado:
// en ese caso la foto no se toca. Cualquier otra falla devuelve una secuencia vacía.
func fetch[T any](ctx context.Context, s *Scheduler, name string, read func(context.Context) ([]byte, error)) ([]T, bool) {
	raw, err := read(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false
		}
		s.log.Warn().Err(err).Str("collection", name).Msg("lectura fallida, se usa colección vacía")
		s.observe(name, ports.OutcomeFailed)
		return []T{}, true
	}
	items, err := decodeSequence[T](raw)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedPayload) {
			s.observe(name, ports.OutcomeMalformed)
		} else {
			s.observe(name, ports.OutcomeFailed)
		}
		s.log.Warn().Err(err).Str("collection", name).Msg("respuesta inválida, se usa colección vacía")
		return []T{}, true
	}
	s.observe(name, ports.OutcomeOK)
	return items, true
}

func (s *Scheduler) observe(name, outcome string) {
	if s.rec != nil {
		s.rec.ObserveFetch(name, outcome)
	}
}

// Shipments envíos de la última foto.
func (s *Scheduler) Shipments() []entity.Shipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Shipments
}
