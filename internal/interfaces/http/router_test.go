package http_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribution-console/internal/application/auth"
	"github.com/jhoicas/distribution-console/internal/application/datasync"
	"github.com/jhoicas/distribution-console/internal/application/dto"
	"github.com/jhoicas/distribution-console/internal/application/lifecycle"
	"github.com/jhoicas/distribution-console/internal/application/resources"
	"github.com/jhoicas/distribution-console/internal/application/session"
	"github.com/jhoicas/distribution-console/internal/application/users"
	"github.com/jhoicas/distribution-console/internal/infrastructure/distribution"
	"github.com/jhoicas/distribution-console/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/distribution-console/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/distribution-console/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Backend de distribución falso
// ──────────────────────────────────────────────────────────────────────────────

type fakeBackend struct {
	mu             sync.Mutex
	shipmentStatus string
	mutations      []string
}

func (b *fakeBackend) record(r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mutations = append(b.mutations, r.Method+" "+r.URL.Path)
}

func (b *fakeBackend) mutationCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.mutations)
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/auth/login":
		var in dto.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Password != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		tok, _ := pkgjwt.Generate("s", in.Username, []string{"ROLE_" + strings.ToUpper(in.Username)}, 60)
		_ = json.NewEncoder(w).Encode(dto.LoginResponse{Token: tok})

	case r.URL.Path == "/api/v1/distribution/shipments":
		b.mu.Lock()
		status := b.shipmentStatus
		b.mu.Unlock()
		fmt.Fprintf(w, `[{"id":7,"sourceId":1,"destinationId":2,"status":%q,"items":[{"productName":"Caja","quantity":3}],"createdAt":"2024-05-01T10:00:00"},
			{"id":8,"sourceId":3,"destinationId":3,"status":"PLANNED","items":[],"createdAt":"2024-05-01T10:00:00"}]`, status)

	case r.Method == http.MethodGet && r.URL.Path == "/api/admin/warehouses":
		_, _ = w.Write([]byte(`[{"id":1,"name":"Norte","totalCapacity":100,"usedCapacity":40}]`))
	case r.Method == http.MethodGet && r.URL.Path == "/api/admin/products":
		_, _ = w.Write([]byte(`{"error":"no es un arreglo"}`))
	case r.Method == http.MethodGet && r.URL.Path == "/api/admin/supplies":
		_, _ = w.Write([]byte(`[]`))
	case r.URL.Path == "/api/admin/warehouses/stats":
		_, _ = w.Write([]byte(`[{"name":"Norte","totalCapacity":100,"usedCapacity":40,"freeCapacity":0,"utilizationPercentage":0}]`))
	case r.Method == http.MethodGet && r.URL.Path == "/api/admin/users":
		_, _ = w.Write([]byte(`[{"id":1,"username":"admin","roles":[{"name":"ROLE_ADMIN"}]}]`))

	case r.Method == http.MethodPut && r.URL.Path == "/api/inventory/shipments/7/status":
		b.record(r)
		b.mu.Lock()
		b.shipmentStatus = r.URL.Query().Get("status")
		b.mu.Unlock()
	case r.Method == http.MethodPost && r.URL.Path == "/api/admin/supplies":
		b.record(r)
		_, _ = w.Write([]byte(`"Supply created with ID: 42"`))
	default:
		b.record(r)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Consola completa sobre el backend falso
// ──────────────────────────────────────────────────────────────────────────────

type console struct {
	app     *fiber.App
	backend *fakeBackend
	sess    *session.Session
}

func newConsole(t *testing.T) *console {
	t.Helper()
	backend := &fakeBackend{shipmentStatus: "PLANNED"}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	log := zerolog.Nop()
	sess := session.New(nil, log)
	client := distribution.NewClient(srv.URL+"/api", sess, log)
	collector := metrics.NewCollector()
	sched := datasync.NewScheduler(client, 0, log, collector)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Session:   sess,
		AuthUC:    auth.NewAuthUseCase(client, sess, log),
		UserUC:    users.NewUserUseCase(client, sess, collector, log),
		Scheduler: sched,
		Lifecycle: lifecycle.NewController(client, sess, sched, sched, collector, log),
		Gateway:   resources.NewGateway(client, sess, sched, collector, log),
		Stats:     client,
		Metrics:   collector.Handler(),
		AppName:   "console-test",
	})
	return &console{app: app, backend: backend, sess: sess}
}

func (c *console) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp, out
}

func (c *console) login(t *testing.T, username string) {
	t.Helper()
	resp, _ := c.do(t, http.MethodPost, "/api/auth/login", `{"username":"`+username+`","password":"pw"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_SinCredencialRequiereLogin(t *testing.T) {
	c := newConsole(t)

	resp, body := c.do(t, http.MethodGet, "/api/snapshot", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "MISSING_TOKEN")

	resp, body = c.do(t, http.MethodGet, "/api/session", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"authenticated":false,"role":"UNKNOWN","can_manage_operations":false,"can_manage_users":false}`, string(body))
}

func TestLogin_DerivaCapacidades(t *testing.T) {
	c := newConsole(t)

	resp, body := c.do(t, http.MethodPost, "/api/auth/login", `{"username":"logistician","password":"pw"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"authenticated":true,"role":"LOGISTICIAN","can_manage_operations":true,"can_manage_users":false}`, string(body))

	resp, body = c.do(t, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"mal"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "UNAUTHORIZED")

	resp, _ = c.do(t, http.MethodPost, "/api/auth/logout", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, c.sess.Authenticated())
}

func TestSnapshot_RutasFiltradasYColeccionesAisladas(t *testing.T) {
	c := newConsole(t)
	c.login(t, "logistician")

	resp, body := c.do(t, http.MethodPost, "/api/sync", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap dto.SnapshotResponse
	require.NoError(t, json.Unmarshal(body, &snap))
	require.Len(t, snap.Routes, 1, "el envío con origen = destino no es una ruta")
	assert.Equal(t, int64(7), snap.Routes[0].ID)
	require.Len(t, snap.Routes[0].Actions, 1)
	assert.Equal(t, "start transit", snap.Routes[0].Actions[0].Name)

	assert.Len(t, snap.Warehouses, 1)
	assert.Empty(t, snap.Products, "payload con forma inválida se reemplaza por vacío")
	require.Len(t, snap.Stats, 1)
	assert.Equal(t, 60.0, snap.Stats[0].FreeCapacity)
	assert.Equal(t, 40.0, snap.Stats[0].UtilizationPercentage)
}

func TestServerStats_Normaliza(t *testing.T) {
	c := newConsole(t)
	c.login(t, "storekeeper")

	resp, body := c.do(t, http.MethodGet, "/api/stats/server", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"name":"Norte","totalCapacity":100,"usedCapacity":40,"freeCapacity":60,"utilizationPercentage":40}]`, string(body))
}

func TestShipmentStatus_LogisticianAvanzaYResincroniza(t *testing.T) {
	c := newConsole(t)
	c.login(t, "logistician")
	c.do(t, http.MethodPost, "/api/sync", "")

	resp, _ := c.do(t, http.MethodPut, "/api/shipments/7/status?status=IN_TRANSIT", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, c.backend.mutationCount())

	_, body := c.do(t, http.MethodGet, "/api/routes", "")
	var routes []dto.ShipmentView
	require.NoError(t, json.Unmarshal(body, &routes))
	require.Len(t, routes, 1)
	assert.Equal(t, "IN_TRANSIT", string(routes[0].Status))
	assert.Equal(t, "complete", routes[0].Actions[0].Name)

	resp, body = c.do(t, http.MethodPut, "/api/shipments/7/status?status=IN_TRANSIT", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_TRANSITION")
	assert.Equal(t, 1, c.backend.mutationCount())
}

func TestStorekeeper_NoPuedeMutar(t *testing.T) {
	c := newConsole(t)
	c.login(t, "storekeeper")
	c.do(t, http.MethodPost, "/api/sync", "")

	_, body := c.do(t, http.MethodGet, "/api/routes", "")
	var routes []dto.ShipmentView
	require.NoError(t, json.Unmarshal(body, &routes))
	require.Len(t, routes, 1)
	assert.Empty(t, routes[0].Actions)

	for _, req := range []struct{ method, path, body string }{
		{http.MethodPut, "/api/shipments/7/status?status=IN_TRANSIT", ""},
		{http.MethodPost, "/api/warehouses", `{"capacity":"100"}`},
		{http.MethodPost, "/api/products", `{"volume":2.5}`},
		{http.MethodPost, "/api/supplies", `{"warehouseId":"1","productId":"1","quantity":"5"}`},
		{http.MethodPost, "/api/distribution/calculate", `{"supplyId":"42"}`},
		{http.MethodGet, "/api/users", ""},
	} {
		resp, body := c.do(t, req.method, req.path, req.body)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, req.path)
		assert.Contains(t, string(body), "FORBIDDEN", req.path)
	}
	assert.Equal(t, 0, c.backend.mutationCount(), "ninguna mutación llega al backend")
}

func TestCreateSupply_DevuelveIDRecuperado(t *testing.T) {
	c := newConsole(t)
	c.login(t, "admin")

	resp, body := c.do(t, http.MethodPost, "/api/supplies", `{"warehouseId":"1","productId":"2","quantity":"10"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"supply_id":"42"}`, string(body))
}

func TestUsers_AdminListaYValidaRol(t *testing.T) {
	c := newConsole(t)
	c.login(t, "admin")

	resp, body := c.do(t, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"id":1,"username":"admin","email":"","role":"ROLE_ADMIN"}]`, string(body))

	resp, body = c.do(t, http.MethodPut, "/api/users/1/role", `{"roleName":"ROLE_ROOT"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "VALIDATION")
}

func TestMetrics_Expuestas(t *testing.T) {
	c := newConsole(t)
	c.login(t, "admin")
	c.do(t, http.MethodPost, "/api/sync", "")

	resp, body := c.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `console_sync_fetch_total{collection="products",outcome="malformed"} 1`)
}
