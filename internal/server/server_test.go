package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"foodorder/internal/config"
	"foodorder/internal/infra/db"
	"foodorder/internal/infra/events"
	"foodorder/internal/server"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := config.Config{
		GoEnv:       "test",
		DBDriver:    "sqlite",
		SQLitePath:  "file::memory:",
		JWTSecret:   "test-secret",
		JWTTTL:      time.Hour,
		BcryptCost:  4,
		CORSOrigins: []string{"*"},
	}

	gdb, err := db.Connect(cfg, zerolog.Nop())
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))

	return server.Build(cfg, zerolog.Nop(), gdb, events.NopPublisher{}, nil)
}

func doJSON(t *testing.T, e *echo.Echo, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "body=%s", rec.Body.String())
}

func register(t *testing.T, e *echo.Echo, email string, seller bool) string {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name":      "User " + email,
		"email":     email,
		"password":  "password123",
		"is_seller": seller,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	decode(t, rec, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func idPath(format string, id int64) string {
	return format + strconv.FormatInt(id, 10)
}

func TestHealth(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Food ordering API is running")
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestAuth_TokenRequired(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(t, e, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"No token provided"}`, rec.Body.String())

	rec = doJSON(t, e, http.MethodGet, "/api/cart", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid token"}`, rec.Body.String())
}

func TestAuth_LoginAndMe(t *testing.T) {
	e := newTestServer(t)
	register(t, e, "me@example.com", false)

	rec := doJSON(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ME@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login struct {
		Token string `json:"token"`
	}
	decode(t, rec, &login)

	rec = doJSON(t, e, http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "me@example.com")
	assert.NotContains(t, rec.Body.String(), "password")

	rec = doJSON(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "me@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid email or password"}`, rec.Body.String())
}

// 販売者登録 → 店舗・料理 → カート → 注文 → 決済 → ステータス更新
func TestOrderFlow(t *testing.T) {
	e := newTestServer(t)
	sellerToken := register(t, e, "seller@example.com", true)
	buyerToken := register(t, e, "buyer@example.com", false)

	// 購入者は店舗を作れない
	rec := doJSON(t, e, http.MethodPost, "/api/restaurants", buyerToken, map[string]string{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/restaurants", sellerToken, map[string]interface{}{
		"name": "Pizza Place", "cuisine": "Italian",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var rest struct {
		RestaurantID int64 `json:"restaurant_id"`
	}
	decode(t, rec, &rest)

	createDish := func(name string, price string) int64 {
		rec := doJSON(t, e, http.MethodPost, idPath("/api/restaurants/", rest.RestaurantID)+"/dishes", sellerToken, map[string]interface{}{
			"name": name, "price": price,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var out struct {
			DishID int64 `json:"dishId"`
		}
		decode(t, rec, &out)
		return out.DishID
	}
	pizza := createDish("Pizza", "10")
	salad := createDish("Salad", "8")

	rec = doJSON(t, e, http.MethodGet, idPath("/api/restaurants/", rest.RestaurantID)+"/dishes", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dishes []map[string]interface{}
	decode(t, rec, &dishes)
	assert.Len(t, dishes, 2)

	// カート：ピザ×2 + サラダ×1 = 28
	for _, add := range []struct {
		dish int64
		qty  int64
	}{{pizza, 1}, {pizza, 1}, {salad, 1}} {
		rec = doJSON(t, e, http.MethodPost, "/api/cart/add", buyerToken, map[string]int64{
			"restaurant_id": rest.RestaurantID, "dish_id": add.dish, "quantity": add.qty,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = doJSON(t, e, http.MethodGet, "/api/cart", buyerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cart struct {
		Items []struct {
			DishID   int64 `json:"dish_id"`
			Quantity int64 `json:"quantity"`
		} `json:"items"`
		Total decimal.Decimal `json:"total"`
	}
	decode(t, rec, &cart)
	assert.Len(t, cart.Items, 2)
	assert.True(t, cart.Total.Equal(decimal.NewFromInt(28)), "total=%s", cart.Total)

	// 注文
	rec = doJSON(t, e, http.MethodPost, "/api/orders/create", buyerToken, map[string]interface{}{
		"payment_method": "online", "delivery_address": "1 Main St", "delivery_fee": "2",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var order struct {
		OrderID       int64           `json:"order_id"`
		TotalPrice    decimal.Decimal `json:"total_price"`
		PaymentStatus string          `json:"payment_status"`
	}
	decode(t, rec, &order)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(30)), "total=%s", order.TotalPrice)
	assert.Equal(t, "pending", order.PaymentStatus)

	// カートは空
	rec = doJSON(t, e, http.MethodGet, "/api/cart", buyerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"cart_id":null,"restaurant_id":null,"items":[],"total":0}`, rec.Body.String())

	// 未決済のonline注文は進められない
	statusPath := idPath("/api/orders/", order.OrderID) + "/status"
	rec = doJSON(t, e, http.MethodPatch, statusPath, sellerToken, map[string]string{"status": "preparing"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Cannot update order status before online payment is completed","payment_status":"pending"}`, rec.Body.String())

	// 他人は決済できない
	rec = doJSON(t, e, http.MethodPost, idPath("/api/payments/pay/", order.OrderID), sellerToken, map[string]bool{"success": true})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, e, http.MethodPost, idPath("/api/payments/pay/", order.OrderID), buyerToken, map[string]bool{"success": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"payment_status":"paid"`)

	// 二重決済
	rec = doJSON(t, e, http.MethodPost, idPath("/api/payments/pay/", order.OrderID), buyerToken, map[string]bool{"success": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, e, http.MethodPatch, statusPath, sellerToken, map[string]string{"status": "preparing"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// 購入者はステータスを変えられない
	rec = doJSON(t, e, http.MethodPatch, statusPath, buyerToken, map[string]string{"status": "delivered"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// 販売者の一覧に載る
	rec = doJSON(t, e, http.MethodGet, "/api/orders/seller/all", sellerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"restaurant_name":"Pizza Place"`)

	rec = doJSON(t, e, http.MethodGet, "/api/orders/seller/all", buyerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// 詳細と履歴
	rec = doJSON(t, e, http.MethodGet, idPath("/api/orders/", order.OrderID), buyerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"preparing"`)

	rec = doJSON(t, e, http.MethodGet, idPath("/api/orders/", order.OrderID)+"/history", buyerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []struct {
		Action string `json:"action"`
	}
	decode(t, rec, &history)
	actions := make([]string, 0, len(history))
	for _, h := range history {
		actions = append(actions, h.Action)
	}
	assert.Equal(t, []string{"CREATE_ORDER", "PAY_ORDER", "UPDATE_ORDER_STATUS"}, actions)

	// 準備中の注文はキャンセルできない
	rec = doJSON(t, e, http.MethodPatch, idPath("/api/orders/", order.OrderID)+"/cancel", buyerToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
