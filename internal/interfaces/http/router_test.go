package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/auth"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/estoque-api/internal/interfaces/http"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

type testAPI struct {
	app    *fiber.App
	authUC *auth.AuthUseCase
}

// newTestAPI levanta el router completo sobre el almacenamiento en memoria.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log := logger.Nop()
	store := memory.NewStore()
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{
		InventorySvc: inventory.NewService(store, store.Inventory(), store.Products(), store.Movements(), nil),
		ProductUC:    usecase.NewProductUseCase(store.Products()),
		AuthUC:       authUC,
		UserUC:       usecase.NewUserUseCase(store.Users()),
		JWTSecret:    testJWTSecret,
		Logger:       log,
		Service:      apphttp.ServiceInfo{Name: "estoque-service", Version: "test", Environment: "test"},
	})
	return &testAPI{app: app, authUC: authUC}
}

func (a *testAPI) do(t *testing.T, method, path, role string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func (a *testAPI) createProduct(t *testing.T, sku string, minimum int) dto.ProductResponse {
	t.Helper()
	resp, body := a.do(t, http.MethodPost, "/api/products", entity.RoleAdmin, dto.CreateProductRequest{
		SKU: sku, Name: "Producto " + sku, Category: "General", UnitOfMeasure: "box", MinimumLevel: minimum,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &p))
	return p
}

func (a *testAPI) createInventory(t *testing.T, productID string, current, reserved int) {
	t.Helper()
	resp, body := a.do(t, http.MethodPost, "/api/inventory", entity.RoleBodeguero, dto.CreateInventoryRequest{
		ProductID: productID, CurrentQuantity: current, ReservedQuantity: reserved,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
}

func intPtr(v int) *int { return &v }

func decodeError(t *testing.T, body []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	resp, body := api.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var h dto.HealthResponse
	require.NoError(t, json.Unmarshal(body, &h))
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, "estoque-service", h.Service)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestInventory_FlujoCompleto(t *testing.T) {
	api := newTestAPI(t)
	p := api.createProduct(t, "ABC-001", 5)
	api.createInventory(t, p.ID, 10, 3)

	resp, body := api.do(t, http.MethodPost, "/api/inventory/"+p.ID+"/remove", entity.RoleBodeguero,
		dto.StockMovementRequest{Quantity: 8})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, decodeError(t, body).Message, "Disponible: 7")

	resp, body = api.do(t, http.MethodPost, "/api/inventory/"+p.ID+"/remove", entity.RoleBodeguero,
		dto.StockMovementRequest{Quantity: 7, Reason: "venta"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var inv dto.InventoryResponse
	require.NoError(t, json.Unmarshal(body, &inv))
	assert.Equal(t, 3, inv.CurrentQuantity)
	assert.Equal(t, 0, inv.AvailableQuantity)
	assert.True(t, inv.IsBelowMinimum)

	resp, body = api.do(t, http.MethodGet, "/api/inventory/"+p.ID+"/availability?quantity=1", entity.RoleVendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var av dto.AvailabilityResponse
	require.NoError(t, json.Unmarshal(body, &av))
	assert.False(t, av.Available)

	resp, body = api.do(t, http.MethodGet, "/api/inventory/"+p.ID+"/movements", entity.RoleVendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mv dto.MovementListResponse
	require.NoError(t, json.Unmarshal(body, &mv))
	require.Len(t, mv.Items, 1)
	assert.Equal(t, entity.MovementTypeRemove, mv.Items[0].Type)
	assert.Equal(t, 10, mv.Items[0].PreviousQuantity)
	assert.Equal(t, testUserID, mv.Items[0].CreatedBy)

	resp, body = api.do(t, http.MethodGet, "/api/inventory/reports/low-stock", entity.RoleVendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report dto.StockReportResponse
	require.NoError(t, json.Unmarshal(body, &report))
	require.Equal(t, 1, report.Total)
	assert.Equal(t, "ABC-001", report.Items[0].SKU)
}

func TestInventory_ValidacionDeEntrada(t *testing.T) {
	api := newTestAPI(t)
	p := api.createProduct(t, "VAL-001", 1)
	api.createInventory(t, p.ID, 5, 0)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"produto_id no UUID", http.MethodGet, "/api/inventory/no-es-uuid", nil},
		{"limit fuera de rango", http.MethodGet, "/api/inventory?limit=1001", nil},
		{"skip negativo", http.MethodGet, "/api/inventory?skip=-1", nil},
		{"limit no numérico", http.MethodGet, "/api/products?limit=abc", nil},
		{"cantidad cero", http.MethodPost, "/api/inventory/" + p.ID + "/add", dto.StockMovementRequest{Quantity: 0}},
		{"ajuste negativo", http.MethodPost, "/api/inventory/" + p.ID + "/adjust", dto.AdjustStockRequest{NewQuantity: intPtr(-1)}},
		{"availability sin quantity", http.MethodGet, "/api/inventory/" + p.ID + "/availability", nil},
		{"create sin product_id", http.MethodPost, "/api/inventory", dto.CreateInventoryRequest{}},
		{"cantidad fuera de rango", http.MethodPost, "/api/inventory/" + p.ID + "/add", dto.StockMovementRequest{Quantity: math.MaxInt}},
		{"ajuste fuera de rango", http.MethodPost, "/api/inventory/" + p.ID + "/adjust", dto.AdjustStockRequest{NewQuantity: intPtr(math.MaxInt32 + 1)}},
		{"mínimo fuera de rango", http.MethodPut, "/api/inventory/" + p.ID + "/minimum-level", dto.UpdateMinimumLevelRequest{MinimumLevel: intPtr(math.MaxInt32 + 1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := api.do(t, tc.method, tc.path, entity.RoleAdmin, tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))
		})
	}
}

func TestInventory_EntradaQueDesbordaNoCambiaElEstoque(t *testing.T) {
	api := newTestAPI(t)
	p := api.createProduct(t, "OVF-001", 1)
	api.createInventory(t, p.ID, 10, 3)

	resp, body := api.do(t, http.MethodPost, "/api/inventory/"+p.ID+"/add", entity.RoleBodeguero,
		dto.StockMovementRequest{Quantity: math.MaxInt})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "quantity debe ser <= 2147483647", decodeError(t, body).Message)

	resp, body = api.do(t, http.MethodPost, "/api/inventory/"+p.ID+"/add", entity.RoleBodeguero,
		dto.StockMovementRequest{Quantity: entity.MaxQuantity})
	require.Equal(t, http.StatusConflict, resp.StatusCode, string(body))
	assert.Equal(t, "BUSINESS_RULE", decodeError(t, body).Code)

	resp, body = api.do(t, http.MethodGet, "/api/inventory/"+p.ID, entity.RoleVendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inv dto.InventoryResponse
	require.NoError(t, json.Unmarshal(body, &inv))
	assert.Equal(t, 10, inv.CurrentQuantity)
	assert.Equal(t, 3, inv.ReservedQuantity)
}

func TestInventory_CuerpoVacioNoAjusta(t *testing.T) {
	api := newTestAPI(t)
	p := api.createProduct(t, "EMP-001", 4)
	api.createInventory(t, p.ID, 10, 0)

	resp, body := api.do(t, http.MethodPost, "/api/inventory/"+p.ID+"/adjust", entity.RoleBodeguero, map[string]any{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "new_quantity es requerido", decodeError(t, body).Message)

	resp, body = api.do(t, http.MethodPut, "/api/inventory/"+p.ID+"/minimum-level", entity.RoleBodeguero, map[string]any{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "minimum_level es requerido", decodeError(t, body).Message)

	resp, body = api.do(t, http.MethodGet, "/api/inventory/"+p.ID, entity.RoleVendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inv dto.InventoryResponse
	require.NoError(t, json.Unmarshal(body, &inv))
	assert.Equal(t, 10, inv.CurrentQuantity)
	assert.Equal(t, 4, inv.MinimumLevel)

	resp, body = api.do(t, http.MethodGet, "/api/inventory/"+p.ID+"/movements", entity.RoleVendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mv dto.MovementListResponse
	require.NoError(t, json.Unmarshal(body, &mv))
	assert.Empty(t, mv.Items)

	resp, body = api.do(t, http.MethodPost, "/api/inventory/"+p.ID+"/adjust", entity.RoleBodeguero,
		dto.AdjustStockRequest{NewQuantity: intPtr(0), Reason: "conteo"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &inv))
	assert.Equal(t, 0, inv.CurrentQuantity, "cero explícito sí es válido")
}

func TestInventory_MensajeDeValidacionUsaNombreJSON(t *testing.T) {
	api := newTestAPI(t)
	p := api.createProduct(t, "MSG-001", 1)
	api.createInventory(t, p.ID, 5, 0)

	resp, body := api.do(t, http.MethodPost, "/api/inventory/"+p.ID+"/add", entity.RoleAdmin, dto.StockMovementRequest{Quantity: -2})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, body)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Equal(t, "quantity debe ser > 0", e.Message)
}

func TestInventory_NoEncontrado(t *testing.T) {
	api := newTestAPI(t)
	missing := uuid.New().String()

	resp, body := api.do(t, http.MethodGet, "/api/inventory/"+missing, entity.RoleVendedor, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, body).Code)

	resp, _ = api.do(t, http.MethodPost, "/api/inventory", entity.RoleAdmin, dto.CreateInventoryRequest{ProductID: missing})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInventory_CrearDuplicadoEsConflicto(t *testing.T) {
	api := newTestAPI(t)
	p := api.createProduct(t, "DUP-001", 1)
	api.createInventory(t, p.ID, 5, 0)

	resp, _ := api.do(t, http.MethodPost, "/api/inventory", entity.RoleAdmin, dto.CreateInventoryRequest{ProductID: p.ID})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestInventory_Permisos(t *testing.T) {
	api := newTestAPI(t)
	p := api.createProduct(t, "PER-001", 1)
	api.createInventory(t, p.ID, 5, 0)

	resp, _ := api.do(t, http.MethodPost, "/api/inventory/"+p.ID+"/add", entity.RoleVendedor, dto.StockMovementRequest{Quantity: 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = api.do(t, http.MethodGet, "/api/inventory", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = api.do(t, http.MethodPost, "/api/products", entity.RoleBodeguero, dto.CreateProductRequest{
		SKU: "PER-002", Name: "x", Category: "y", UnitOfMeasure: "piece",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestInventory_ReportePDFSinGenerador(t *testing.T) {
	api := newTestAPI(t)
	resp, body := api.do(t, http.MethodGet, "/api/inventory/reports/low-stock.pdf", entity.RoleVendedor, nil)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "PDF_UNAVAILABLE", decodeError(t, body).Code)
}

func TestInventory_Resumen(t *testing.T) {
	api := newTestAPI(t)
	a := api.createProduct(t, "SUM-001", 5)
	b := api.createProduct(t, "SUM-002", 5)
	api.createInventory(t, a.ID, 0, 0)
	api.createInventory(t, b.ID, 20, 2)

	resp, body := api.do(t, http.MethodGet, "/api/inventory/reports/summary", entity.RoleVendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var s dto.InventorySummaryResponse
	require.NoError(t, json.Unmarshal(body, &s))
	assert.Equal(t, 2, s.TotalItems)
	assert.Equal(t, 1, s.LowStockItems)
	assert.Equal(t, 1, s.OutOfStockItems)
	assert.Equal(t, 1, s.HealthyStockItems)
	assert.Equal(t, 20, s.TotalQuantity)
}

func TestProducts_CRUD(t *testing.T) {
	api := newTestAPI(t)
	p := api.createProduct(t, "PRD-001", 2)
	assert.Equal(t, "PRD-001", p.SKU)

	resp, _ := api.do(t, http.MethodPost, "/api/products", entity.RoleAdmin, dto.CreateProductRequest{
		SKU: "prd-001", Name: "Otro", Category: "General", UnitOfMeasure: "piece",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "el SKU se normaliza a mayúsculas")

	name := "Renombrado"
	resp, body := api.do(t, http.MethodPut, "/api/products/"+p.ID, entity.RoleAdmin, dto.UpdateProductRequest{Name: &name})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var updated dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "Renombrado", updated.Name)
	assert.Equal(t, "PRD-001", updated.SKU)

	resp, body = api.do(t, http.MethodGet, "/api/products?limit=10", entity.RoleVendedor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ProductListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, 1, list.Page.Total)
	assert.Equal(t, 10, list.Page.Limit)

	resp, _ = api.do(t, http.MethodGet, "/api/products/"+uuid.New().String(), entity.RoleVendedor, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuth_LoginYMe(t *testing.T) {
	api := newTestAPI(t)
	_, err := api.authUC.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "Bodega@Example.com", Password: "secreto-123", Name: "Bodega", Role: entity.RoleBodeguero,
	})
	require.NoError(t, err)

	resp, body := api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "bodega@example.com", Password: "mala-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "credenciales inválidas", decodeError(t, body).Message)

	resp, body = api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "bodega@example.com", Password: "secreto-123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))
	assert.Equal(t, testExpMin*60, login.ExpiresIn)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	meResp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer meResp.Body.Close()
	require.Equal(t, http.StatusOK, meResp.StatusCode)
	var me dto.UserResponse
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&me))
	assert.Equal(t, "bodega@example.com", me.Email)
	assert.Equal(t, entity.RoleBodeguero, me.Role)
}

func TestAuth_LoginCuerpoInvalido(t *testing.T) {
	api := newTestAPI(t)
	resp, body := api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "no-es-email"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, body).Code)
}

func TestRutaInexistente(t *testing.T) {
	api := newTestAPI(t)
	resp, body := api.do(t, http.MethodGet, "/api/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, body).Code)
}
