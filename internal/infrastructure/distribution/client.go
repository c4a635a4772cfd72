package distribution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/distribution-console/internal/application/dto"
	"github.com/jhoicas/distribution-console/internal/application/ports"
	"github.com/jhoicas/distribution-console/internal/domain"
	"github.com/jhoicas/distribution-console/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa los puertos.
var (
	_ ports.CollectionReader     = (*Client)(nil)
	_ ports.StatsReader          = (*Client)(nil)
	_ ports.ShipmentStatusWriter = (*Client)(nil)
	_ ports.ResourceWriter       = (*Client)(nil)
	_ ports.AuthAPI              = (*Client)(nil)
	_ ports.UserAdminAPI         = (*Client)(nil)
)

const (
	pathLogin          = "/auth/login"
	pathRegister       = "/auth/register"
	pathShipments      = "/v1/distribution/shipments"
	pathCalculate      = "/v1/distribution/calculate"
	pathShipmentStatus = "/inventory/shipments/%d/status"
	pathWarehouses     = "/admin/warehouses"
	pathWarehouseStats = "/admin/warehouses/stats"
	pathProducts       = "/admin/products"
	pathSupplies       = "/admin/supplies"
	pathUsers          = "/admin/users"
	pathUserRole       = "/admin/users/%d/role"

	maxBodyBytes = 4 << 20
)

// TokenSource entrega la credencial vigente; "" significa sin header Authorization.
type TokenSource interface {
	Token() string
}

// APIError respuesta no-2xx del backend. Unwrap devuelve el error de dominio correspondiente.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	kind       error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error { return e.kind }

// Client adaptador REST del backend de distribución. Usa net/http de la librería estándar.
// No impone timeout: una petición colgada solo bloquea al flujo que la emitió; se cancela con ctx.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient construye el adaptador. baseURL suele ser "http://localhost:8080/api".
func NewClient(baseURL string, tokens TokenSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{},
		log:        log,
	}
}

// WithHTTPClient reemplaza el *http.Client (tests, proxies).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("distribution: serializar request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("distribution: crear HTTP request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("distribution: cancelado: %w", ctx.Err())
		}
		return nil, fmt.Errorf("distribution: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("distribution: leer respuesta: %w", err)
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("llamada al backend")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
			kind:       kindFor(resp.StatusCode),
		}
	}
	return raw, nil
}

func kindFor(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	default:
		return domain.ErrRejected
	}
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

// FetchShipments GET /v1/distribution/shipments.
func (c *Client) FetchShipments(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, pathShipments, nil, nil)
}

// FetchWarehouses GET /admin/warehouses.
func (c *Client) FetchWarehouses(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, pathWarehouses, nil, nil)
}

// FetchProducts GET /admin/products.
func (c *Client) FetchProducts(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, pathProducts, nil, nil)
}

// FetchSupplies GET /admin/supplies.
func (c *Client) FetchSupplies(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, pathSupplies, nil, nil)
}

// FetchWarehouseStats GET /admin/warehouses/stats.
func (c *Client) FetchWarehouseStats(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, pathWarehouseStats, nil, nil)
}

// ── Mutaciones ────────────────────────────────────────────────────────────────

// UpdateShipmentStatus PUT /inventory/shipments/{id}/status?status=<STATUS>.
func (c *Client) UpdateShipmentStatus(ctx context.Context, id int64, status entity.ShipmentStatus) error {
	q := url.Values{"status": []string{string(status)}}
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf(pathShipmentStatus, id), q, nil)
	return err
}

// CreateWarehouse POST /admin/warehouses.
func (c *Client) CreateWarehouse(ctx context.Context, in dto.CreateWarehouseRequest) error {
	_, err := c.do(ctx, http.MethodPost, pathWarehouses, nil, in)
	return err
}

// CreateProduct POST /admin/products.
func (c *Client) CreateProduct(ctx context.Context, in dto.CreateProductRequest) error {
	_, err := c.do(ctx, http.MethodPost, pathProducts, nil, in)
	return err
}

// CreateSupply POST /admin/supplies; devuelve el acuse crudo.
func (c *Client) CreateSupply(ctx context.Context, in dto.CreateSupplyRequest) ([]byte, error) {
	return c.do(ctx, http.MethodPost, pathSupplies, nil, in)
}

// TriggerCalculation POST /v1/distribution/calculate. Un acuse vacío o no-JSON no es error.
func (c *Client) TriggerCalculation(ctx context.Context, in dto.CalculateRequest) (*dto.CalculationAck, error) {
	raw, err := c.do(ctx, http.MethodPost, pathCalculate, nil, in)
	if err != nil {
		return nil, err
	}
	ack := &dto.CalculationAck{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, ack); err != nil {
			c.log.Debug().Err(err).Str("path", pathCalculate).Str("body", string(raw)).Msg("acuse de cálculo no es JSON, se ignora")
		}
	}
	return ack, nil
}

// ── Auth ──────────────────────────────────────────────────────────────────────

// Login POST /auth/login.
func (c *Client) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	raw, err := c.do(ctx, http.MethodPost, pathLogin, nil, in)
	if err != nil {
		return nil, err
	}
	var out dto.LoginResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: login: %v", domain.ErrMalformedPayload, err)
	}
	if out.Token == "" {
		return nil, fmt.Errorf("%w: login sin token", domain.ErrMalformedPayload)
	}
	return &out, nil
}

// Register POST /auth/register.
func (c *Client) Register(ctx context.Context, in dto.RegisterRequest) error {
	_, err := c.do(ctx, http.MethodPost, pathRegister, nil, in)
	return err
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

// ListUsers GET /admin/users.
func (c *Client) ListUsers(ctx context.Context) ([]entity.User, error) {
	raw, err := c.do(ctx, http.MethodGet, pathUsers, nil, nil)
	if err != nil {
		return nil, err
	}
	var users []entity.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("%w: usuarios: %v", domain.ErrMalformedPayload, err)
	}
	return users, nil
}

// UpdateUserRole PUT /admin/users/{id}/role.
func (c *Client) UpdateUserRole(ctx context.Context, userID int64, roleName string) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf(pathUserRole, userID), nil, map[string]string{"roleName": roleName})
	return err
}
