package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"go-parts-inventory/internal/repository"
	"go-parts-inventory/internal/service"
	"go-parts-inventory/pkg/database"
	"go-parts-inventory/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	app   *fiber.App
	token string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "api_test.db"), nil)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	users := service.NewUserService(userRepo, nil)
	require.NoError(t, users.EnsureAdmin(context.Background(), "admin@example.com", "admin123"))

	app := fiber.New()
	RegisterRoutes(app, Services{
		Auth:          service.NewAuthService(userRepo, jwt.NewManager("test-secret", time.Hour)),
		Users:         users,
		Inventory:     service.NewInventoryService(repository.NewComponentRepo(db), txRepo, nil, nil),
		Ledger:        service.NewLedgerService(db, nil, nil, nil),
		Tags:          service.NewTagService(db, nil, nil, nil),
		Vendors:       service.NewVendorService(repository.NewVendorRepo(db), nil),
		PurchaseOrder: service.NewPurchaseOrderService(db, nil),
		Dashboard:     service.NewDashboardService(txRepo, 10),
	})

	api := &testAPI{app: app}
	var login struct {
		Token string `json:"token"`
	}
	status := api.do(t, "POST", "/api/v1/auth/login", map[string]string{"email": "admin@example.com", "password": "admin123"}, &login)
	require.Equal(t, 200, status)
	require.NotEmpty(t, login.Token)
	api.token = login.Token
	return api
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}, out interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type componentEnvelope struct {
	Data struct {
		ID       string `json:"id"`
		SKU      string `json:"sku"`
		Quantity int    `json:"quantity"`
	} `json:"data"`
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)
	api.token = ""

	var body map[string]interface{}
	status := api.do(t, "GET", "/api/v1/components", nil, &body)
	assert.Equal(t, 401, status)
	assert.Equal(t, "Missing authorization token", body["error"])

	api.token = "not-a-jwt"
	status = api.do(t, "GET", "/api/v1/components", nil, nil)
	assert.Equal(t, 401, status)
}

func TestStockLedgerEndpoints(t *testing.T) {
	api := newTestAPI(t)

	var created componentEnvelope
	status := api.do(t, "POST", "/api/v1/components", map[string]string{"sku": "12345", "description": "widget"}, &created)
	require.Equal(t, 201, status)
	id := created.Data.ID

	status = api.do(t, "POST", "/api/v1/components", map[string]string{"sku": "12345", "description": "dupe"}, nil)
	assert.Equal(t, 409, status)

	var moved map[string]interface{}
	status = api.do(t, "POST", "/api/v1/components/"+id+"/checkin", map[string]interface{}{"quantity": 6}, &moved)
	require.Equal(t, 201, status)
	assert.EqualValues(t, 6, moved["quantity"])

	var rejected map[string]interface{}
	status = api.do(t, "POST", "/api/v1/components/"+id+"/checkout", map[string]interface{}{"quantity": 10}, &rejected)
	assert.Equal(t, 409, status)
	assert.Equal(t, "only 6 available", rejected["error"])
	assert.EqualValues(t, 6, rejected["available"])

	status = api.do(t, "POST", "/api/v1/components/"+id+"/checkout", map[string]interface{}{"quantity": 2}, &moved)
	require.Equal(t, 201, status)
	assert.EqualValues(t, 4, moved["quantity"])

	var invalid map[string]interface{}
	status = api.do(t, "POST", "/api/v1/components/"+id+"/checkin", map[string]interface{}{"quantity": 0}, &invalid)
	assert.Equal(t, 400, status)
	assert.Equal(t, "quantity", invalid["field"])

	var qty map[string]interface{}
	status = api.do(t, "GET", "/api/v1/components/"+id+"/quantity", nil, &qty)
	require.Equal(t, 200, status)
	assert.EqualValues(t, 4, qty["quantity"])

	var history []map[string]interface{}
	status = api.do(t, "GET", "/api/v1/components/"+id+"/transactions", nil, &history)
	require.Equal(t, 200, status)
	assert.Len(t, history, 2)

	status = api.do(t, "GET", "/api/v1/components/00000000-0000-0000-0000-000000000001/quantity", nil, nil)
	assert.Equal(t, 404, status)
	status = api.do(t, "GET", "/api/v1/components/not-a-uuid", nil, nil)
	assert.Equal(t, 400, status)
}

func TestStockMovementRejectsNonNumericQuantity(t *testing.T) {
	api := newTestAPI(t)

	var created componentEnvelope
	require.Equal(t, 201, api.do(t, "POST", "/api/v1/components", map[string]string{"sku": "12345", "description": "widget"}, &created))
	id := created.Data.ID

	var body map[string]interface{}
	status := api.do(t, "POST", "/api/v1/transactions", map[string]interface{}{
		"component_id": id, "type": "IN", "quantity": "lots",
	}, &body)
	assert.Equal(t, 400, status)
	assert.Equal(t, "quantity", body["field"])
	assert.Equal(t, "must be a whole number", body["message"])

	body = nil
	status = api.do(t, "POST", "/api/v1/components/"+id+"/checkout", map[string]interface{}{"quantity": "two"}, &body)
	assert.Equal(t, 400, status)
	assert.Equal(t, "quantity", body["field"])

	body = nil
	status = api.do(t, "POST", "/api/v1/transactions", map[string]interface{}{
		"component_id": id, "type": "IN", "quantity": 2,
	}, &body)
	require.Equal(t, 201, status)

	var qty map[string]interface{}
	require.Equal(t, 200, api.do(t, "GET", "/api/v1/components/"+id+"/quantity", nil, &qty))
	assert.EqualValues(t, 2, qty["quantity"])
}

func TestTagEndpoints(t *testing.T) {
	api := newTestAPI(t)

	var created componentEnvelope
	require.Equal(t, 201, api.do(t, "POST", "/api/v1/components", map[string]string{"sku": "12345", "description": "widget"}, &created))
	id := created.Data.ID

	var applied struct {
		Data struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	status := api.do(t, "PUT", "/api/v1/components/"+id+"/tags", map[string]string{"tag_text": "west coast ", "cat_text": ""}, &applied)
	require.Equal(t, 200, status)
	assert.Equal(t, "WEST COAST", applied.Data.Name)

	status = api.do(t, "PUT", "/api/v1/components/"+id+"/tags", map[string]string{"tag_text": "  ", "cat_text": ""}, nil)
	assert.Equal(t, 400, status)

	var uncategorized []map[string]interface{}
	require.Equal(t, 200, api.do(t, "GET", "/api/v1/tags/uncategorized", nil, &uncategorized))
	require.Len(t, uncategorized, 1)
	assert.Equal(t, "WEST COAST", uncategorized[0]["name"])

	var deleted map[string]interface{}
	status = api.do(t, "DELETE", "/api/v1/tags/"+applied.Data.ID, nil, &deleted)
	require.Equal(t, 200, status)
	assert.Equal(t, applied.Data.ID, deleted["id"])

	status = api.do(t, "DELETE", "/api/v1/tags/"+applied.Data.ID, nil, nil)
	assert.Equal(t, 404, status)

	var onComponent []map[string]interface{}
	require.Equal(t, 200, api.do(t, "GET", "/api/v1/components/"+id+"/tags", nil, &onComponent))
	assert.Empty(t, onComponent)
}

func TestVendorAndPurchaseOrderEndpoints(t *testing.T) {
	api := newTestAPI(t)

	var component componentEnvelope
	require.Equal(t, 201, api.do(t, "POST", "/api/v1/components", map[string]string{"sku": "12345", "description": "widget"}, &component))

	var vendor struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	status := api.do(t, "POST", "/api/v1/vendors", map[string]string{"name": "Acme Supply", "state": "NC"}, &vendor)
	require.Equal(t, 201, status)

	status = api.do(t, "POST", "/api/v1/vendors", map[string]string{"name": "Acme Supply"}, nil)
	assert.Equal(t, 409, status)

	var order map[string]interface{}
	status = api.do(t, "POST", "/api/v1/vendors/"+vendor.Data.ID+"/purchase-orders", map[string]interface{}{
		"line_items": []map[string]interface{}{
			{"component_id": component.Data.ID, "quantity": 3, "unit_price": 125},
		},
	}, &order)
	require.Equal(t, 201, status)
	assert.EqualValues(t, 375, order["total"])

	var orders []map[string]interface{}
	require.Equal(t, 200, api.do(t, "GET", "/api/v1/purchase-orders", nil, &orders))
	assert.Len(t, orders, 1)
}

func TestUserManagementRequiresAdmin(t *testing.T) {
	api := newTestAPI(t)

	status := api.do(t, "POST", "/api/v1/users", map[string]interface{}{"email": "clerk@example.com", "password": "secret123"}, nil)
	require.Equal(t, 201, status)

	var login struct {
		Token string `json:"token"`
	}
	require.Equal(t, 200, api.do(t, "POST", "/api/v1/auth/login", map[string]string{"email": "clerk@example.com", "password": "secret123"}, &login))

	clerk := &testAPI{app: api.app, token: login.Token}
	assert.Equal(t, 403, clerk.do(t, "GET", "/api/v1/users", nil, nil))
	assert.Equal(t, 200, clerk.do(t, "GET", "/api/v1/dashboard/stats", nil, nil))

	var users []map[string]interface{}
	require.Equal(t, 200, api.do(t, "GET", "/api/v1/users", nil, &users))
	assert.Len(t, users, 2)
}
