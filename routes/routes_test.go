package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Himanshu790310/biryaniclub7/configs"
	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/Himanshu790310/biryaniclub7/middlewares"
	"github.com/Himanshu790310/biryaniclub7/pkg/testdb"
	"github.com/Himanshu790310/biryaniclub7/pkg/upi"
	"github.com/Himanshu790310/biryaniclub7/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var now = time.Date(2025, 1, 15, 19, 30, 0, 0, time.FixedZone("IST", 5*3600+30*60))

type app struct {
	t   *testing.T
	db  *gorm.DB
	svc *services.Services
	r   *gin.Engine
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testdb.New(t, testdb.FixedClock(now))
	log, _ := test.NewNullLogger()
	svc := services.New(db, services.Options{
		JWTSecret: "routes-secret", JWTTTL: time.Hour,
		QR: upi.New("biryaniclub@paytm", "Biryani Club"), Logger: log,
	})
	r := gin.New()
	r.Use(middlewares.RequestLogger(log), gin.Recovery())
	RegisterRoutes(r, svc, &configs.Config{JWTSecret: "routes-secret"})
	return &app{t: t, db: db, svc: svc, r: r}
}

func (a *app) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if into != nil {
		require.NoError(t, json.Unmarshal(env.Data, into))
	}
	return env
}

// login registers a customer and returns a token; role is then forced when not customer.
func (a *app) login(username string, role entity.Role) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/auth/register", "", gin.H{
		"username": username, "email": username + "@example.com", "password": "secret1",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	if role != entity.RoleCustomer {
		require.NoError(a.t, a.db.Model(&entity.User{}).Where("username = ?", username).Update("role", role).Error)
	}

	w = a.do(http.MethodPost, "/auth/login", "", gin.H{"username": username, "password": "secret1"})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Token string `json:"token"`
	}
	decode(a.t, w, &out)
	return out.Token
}

func (a *app) menuItem(name string, price int64) entity.MenuItem {
	a.t.Helper()
	m := entity.MenuItem{Name: name, Price: entity.Rupees(price), Category: "Biryani", InStock: true}
	require.NoError(a.t, a.db.Create(&m).Error)
	return m
}

func TestValidateCouponContract(t *testing.T) {
	a := newApp(t)
	limit := 100
	require.NoError(t, a.db.Create(&entity.Promotion{
		Code: "BIRYANI20", DiscountType: entity.DiscountPercentage, DiscountValue: entity.Rupees(20),
		MinOrderAmount: entity.Rupees(200), UsageLimit: &limit, IsActive: true,
	}).Error)

	w := a.do(http.MethodPost, "/api/validate_coupon", "", gin.H{"coupon_code": " biryani20", "subtotal": 250})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"valid": true,
		"message": "Success! 20% discount applied to your order",
		"discount": 50,
		"new_total": 200,
		"code": "BIRYANI20"
	}`, w.Body.String())

	w = a.do(http.MethodPost, "/api/validate_coupon", "", gin.H{"coupon_code": "BIRYANI20", "subtotal": 150})
	assert.JSONEq(t, `{"valid": false, "message": "Minimum order amount is ₹200"}`, w.Body.String())

	w = a.do(http.MethodPost, "/api/validate_coupon", "", gin.H{"coupon_code": "", "subtotal": 100})
	assert.JSONEq(t, `{"valid": false, "message": "Please enter a coupon code"}`, w.Body.String())
}

func TestOrderStatusContract(t *testing.T) {
	a := newApp(t)
	item := a.menuItem("Chicken Biryani", 119)
	res, err := a.svc.Checkout.Checkout(entity.Anonymous(), services.CheckoutIn{
		CustomerName: "Asha", CustomerPhone: "9876543210", CustomerAddress: "12 MG Road",
		Items: []services.CheckoutItemIn{{MenuItemID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	w := a.do(http.MethodGet, "/api/order_status/"+res.Order.OrderNumber, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"status": "pending",
		"status_display": "Pending",
		"progress_percentage": 10,
		"payment_status": "confirmed",
		"order_items_count": 1,
		"total_amount": 144,
		"last_updated": "07:30 PM IST",
		"estimated_time": "30-45 minutes"
	}`, w.Body.String())

	w = a.do(http.MethodGet, "/api/order_status/BC000000", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error": "Order not found"}`, w.Body.String())
}

func TestCustomerOrderFlow(t *testing.T) {
	a := newApp(t)
	item := a.menuItem("Chicken Biryani", 119)
	token := a.login("asha", entity.RoleCustomer)

	w := a.do(http.MethodGet, "/api/cart_count", "", nil)
	assert.JSONEq(t, `{"count": 0}`, w.Body.String())

	w = a.do(http.MethodPost, "/cart/items", "", gin.H{"menuItemId": item.ID})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/cart/items", token, gin.H{"menuItemId": item.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/cart/items", token, gin.H{"menuItemId": item.ID, "quantity": 11})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid quantity", decode(t, w, nil).Error)

	w = a.do(http.MethodGet, "/api/cart_count", token, nil)
	assert.JSONEq(t, `{"count": 2}`, w.Body.String())

	w = a.do(http.MethodPost, "/checkout", token, gin.H{
		"customerName": "Asha", "customerPhone": "9876543210", "customerAddress": "12 MG Road",
		"paymentMethod": "upi",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var placed struct {
		Order    entity.Order `json:"order"`
		NextStep string       `json:"nextStep"`
	}
	decode(t, w, &placed)
	assert.Equal(t, services.NextStepUPIPayment, placed.NextStep)
	number := placed.Order.OrderNumber

	w = a.do(http.MethodGet, "/orders/"+number, "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code, "account orders are private")

	w = a.do(http.MethodGet, "/orders/"+number+"/payment", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var art services.PaymentArtifact
	decode(t, w, &art)
	assert.Contains(t, art.UPILink, "am=238.00")

	w = a.do(http.MethodPost, "/orders/"+number+"/confirm_payment", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(http.MethodGet, "/my/orders", token, nil)
	var mine []entity.Order
	decode(t, w, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, entity.PaymentConfirmed, mine[0].PaymentStatus)

	w = a.do(http.MethodPost, "/orders/"+number+"/cancel", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = a.do(http.MethodPost, "/orders/"+number+"/cancel", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginFailures(t *testing.T) {
	a := newApp(t)
	a.login("asha", entity.RoleCustomer)

	w := a.do(http.MethodPost, "/auth/login", "", gin.H{"username": "asha", "password": "nope!!"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid username/phone or password", decode(t, w, nil).Error)

	w = a.do(http.MethodPost, "/auth/register", "", gin.H{"username": "asha", "email": "x@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRoleGates(t *testing.T) {
	a := newApp(t)
	customer := a.login("asha", entity.RoleCustomer)
	admin := a.login("boss", entity.RoleAdmin)
	rider := a.login("rider", entity.RoleDelivery)

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/admin/dashboard", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/admin/dashboard", customer, nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/admin/dashboard", admin, nil).Code)

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/delivery", customer, nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/delivery", rider, nil).Code)

	w := a.do(http.MethodPost, "/admin/store/toggle", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = a.do(http.MethodGet, "/store", "", nil)
	assert.JSONEq(t, `{"ok": true, "data": {"open": false}}`, w.Body.String())

	w = a.do(http.MethodPost, "/delivery/orders/abc/assign", rider, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
