package e2e

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"turfbook/internal/database"
	"turfbook/internal/domain"
	"turfbook/internal/middleware"
	"turfbook/internal/modules/admin"
	"turfbook/internal/modules/auth"
	"turfbook/internal/modules/booking"
	"turfbook/internal/modules/catalog"
	"turfbook/internal/modules/notification"
	"turfbook/internal/modules/payment"
	jwtsvc "turfbook/internal/pkg/jwt"
	"turfbook/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const webhookSecret = "whsec_e2e_secret"

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
	jwt    *jwtsvc.Service
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// stubProvider never dials out; sessions get deterministic ids.
type stubProvider struct {
	n int
}

func (p *stubProvider) CreateSession(ctx context.Context, params payment.SessionParams) (*payment.ProviderSession, error) {
	p.n++
	id := fmt.Sprintf("cs_e2e_%d", p.n)
	return &payment.ProviderSession{ID: id, URL: "https://checkout.example/" + id}, nil
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, repository.AutoMigrate(db))

	userRepo := repository.NewUserRepository(db)
	turfRepo := repository.NewTurfRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	sessionRepo := repository.NewCheckoutSessionRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New("e2e-secret", time.Hour)

	notifService := notification.NewService(notifRepo)
	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	catalogHandler := catalog.NewHandler(catalog.NewService(turfRepo, bookingRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, turfRepo, notifService))
	paymentHandler := payment.NewHandler(payment.NewService(
		sessionRepo, bookingRepo, bookingRepo, turfRepo, notifService,
		&stubProvider{},
		payment.Config{
			WebhookSecret:      webhookSecret,
			DepositAmountMinor: 30000,
			Currency:           "inr",
			FrontendURL:        "http://localhost:3000",
		},
		nil,
	))
	adminHandler := admin.NewHandler(admin.NewService(userRepo, notifRepo))

	r := gin.New()
	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		paymentHandler.RegisterWebhookRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)

			adminGroup := protected.Group("/admin")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
				bookingHandler.RegisterAdminRoutes(adminGroup)
				catalogHandler.RegisterAdminRoutes(adminGroup)
			}
		}
	}

	return &E2ETestSuite{router: r, db: db, jwt: j}
}

func (s *E2ETestSuite) request(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, TestResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp TestResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func (s *E2ETestSuite) seedAdmin(t *testing.T) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)

	operator := &domain.User{Name: "Operator", Email: "ops@turfbook.in", PasswordHash: string(hash), IsAdmin: true}
	require.NoError(t, repository.NewUserRepository(s.db).Create(context.Background(), operator))

	token, err := s.jwt.GenerateToken(operator.ID, true)
	require.NoError(t, err)
	return token
}

func (s *E2ETestSuite) registerPlayer(t *testing.T, name, email string) string {
	t.Helper()

	w, resp := s.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": name, "email": email, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token, _ := resp.Data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (s *E2ETestSuite) createTurf(t *testing.T, adminToken string) int64 {
	t.Helper()

	w, resp := s.request(t, http.MethodPost, "/api/v1/admin/turfs", adminToken, gin.H{
		"name": "Green Arena", "location": "Mumbai", "pricePerHour": 1200,
		"facilities": []string{"floodlights", "parking"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	turf, _ := resp.Data["turf"].(map[string]interface{})
	require.NotNil(t, turf)
	return int64(turf["id"].(float64))
}

func bookingBody(turfID int64, start, end string) gin.H {
	return gin.H{
		"turf":        turfID,
		"bookingDate": "2026-06-15",
		"startTime":   start,
		"endTime":     end,
		"totalAmount": 1200,
	}
}

func signWebhook(payload []byte) string {
	ts := fmt.Sprintf("%d", time.Now().Unix())
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write([]byte(ts + "."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func completedWebhookPayload(sessionID string, bookingID int64) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_e2e",
		"type": "checkout.session.completed",
		"api_version": "2023-10-16",
		"data": {"object": {"id": %q, "metadata": {"booking_id": "%d"}}}
	}`, sessionID, bookingID))
}

func TestBookingLifecycle(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken := suite.seedAdmin(t)
	playerToken := suite.registerPlayer(t, "Asha", "asha@example.com")
	turfID := suite.createTurf(t, adminToken)

	// Anyone can browse the catalog.
	w, resp := suite.request(t, http.MethodGet, "/api/v1/turfs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	// Booking requires a token.
	w, _ = suite.request(t, http.MethodPost, "/api/v1/bookings", "", bookingBody(turfID, "09:00", "10:00"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// First booking takes the slot.
	w, resp = suite.request(t, http.MethodPost, "/api/v1/bookings", playerToken, bookingBody(turfID, "09:00", "10:00"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created, _ := resp.Data["booking"].(map[string]interface{})
	require.NotNil(t, created)
	firstID := int64(created["id"].(float64))
	assert.Equal(t, "pending", created["payment_status"])

	// An overlapping request from another player is refused with the blocker.
	rivalToken := suite.registerPlayer(t, "Ravi", "ravi@example.com")
	w, resp = suite.request(t, http.MethodPost, "/api/v1/bookings", rivalToken, bookingBody(turfID, "09:30", "10:30"))
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BOOKING_CONFLICT", resp.Error.Code)
	assert.NotNil(t, resp.Error.Details)

	// Back-to-back is fine.
	w, _ = suite.request(t, http.MethodPost, "/api/v1/bookings", rivalToken, bookingBody(turfID, "10:00", "11:00"))
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Admin cancels the first booking; the slot opens up again.
	w, _ = suite.request(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/bookings/%d", firstID), adminToken, gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = suite.request(t, http.MethodPost, "/api/v1/bookings", rivalToken, bookingBody(turfID, "09:00", "10:00"))
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Players cannot touch admin surfaces.
	w, _ = suite.request(t, http.MethodGet, "/api/v1/admin/bookings", playerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// My-bookings shows only the caller's rows, joined with the turf.
	w, resp = suite.request(t, http.MethodGet, "/api/v1/bookings/mybookings", playerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows, _ := resp.Data["bookings"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, "Green Arena", row["turf_name"])
}

func TestBookingValidation(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken := suite.seedAdmin(t)
	playerToken := suite.registerPlayer(t, "Asha", "asha@example.com")
	turfID := suite.createTurf(t, adminToken)

	w, resp := suite.request(t, http.MethodPost, "/api/v1/bookings", playerToken, bookingBody(turfID, "10:00", "10:00"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)

	w, resp = suite.request(t, http.MethodPost, "/api/v1/bookings", playerToken, bookingBody(9999, "09:00", "10:00"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "TURF_NOT_FOUND", resp.Error.Code)
}

func TestPaymentFlow(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken := suite.seedAdmin(t)
	playerToken := suite.registerPlayer(t, "Asha", "asha@example.com")
	turfID := suite.createTurf(t, adminToken)

	w, resp := suite.request(t, http.MethodPost, "/api/v1/bookings", playerToken, bookingBody(turfID, "09:00", "10:00"))
	require.Equal(t, http.StatusCreated, w.Code)
	created := resp.Data["booking"].(map[string]interface{})
	bookingID := int64(created["id"].(float64))

	// Kick off checkout.
	w, resp = suite.request(t, http.MethodPost, "/api/v1/payments/create-checkout-session", playerToken, gin.H{"bookingId": bookingID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sessionID, _ := resp.Data["session_id"].(string)
	require.NotEmpty(t, sessionID)
	assert.Contains(t, resp.Data["url"], sessionID)

	// Another player cannot pay for someone else's booking.
	rivalToken := suite.registerPlayer(t, "Ravi", "ravi@example.com")
	w, _ = suite.request(t, http.MethodPost, "/api/v1/payments/create-checkout-session", rivalToken, gin.H{"bookingId": bookingID})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A forged webhook is rejected and changes nothing.
	payload := completedWebhookPayload(sessionID, bookingID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	b, err := repository.NewBookingRepository(suite.db).GetByID(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)

	// The signed completion marks the booking paid.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signWebhook(payload))
	rec = httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	b, err = repository.NewBookingRepository(suite.db).GetByID(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, b.PaymentStatus)

	// Redelivery is acknowledged without double-applying.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signWebhook(payload))
	rec = httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Paying a paid booking is refused.
	w, resp = suite.request(t, http.MethodPost, "/api/v1/payments/create-checkout-session", playerToken, gin.H{"bookingId": bookingID})
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ALREADY_PAID", resp.Error.Code)

	// The reconciliation left an operator notification behind.
	w, resp = suite.request(t, http.MethodGet, "/api/v1/admin/notifications", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notifs, _ := resp.Data["notifications"].([]interface{})
	require.NotEmpty(t, notifs)
}

func TestOrphanWebhookIsAckedAndRecorded(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken := suite.seedAdmin(t)

	payload := completedWebhookPayload("cs_unknown", 424242)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", signWebhook(payload))
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "provider must not retry forever")

	w, resp := suite.request(t, http.MethodGet, "/api/v1/admin/notifications", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	notifs, _ := resp.Data["notifications"].([]interface{})
	require.NotEmpty(t, notifs, "orphan payment must leave a trace for operators")
}

func TestTurfAdministration(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken := suite.seedAdmin(t)
	playerToken := suite.registerPlayer(t, "Asha", "asha@example.com")
	turfID := suite.createTurf(t, adminToken)

	// Players cannot manage turfs.
	w, _ := suite.request(t, http.MethodPost, "/api/v1/admin/turfs", playerToken, gin.H{
		"name": "x", "location": "y", "pricePerHour": 1,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Partial update leaves absent fields alone.
	w, resp := suite.request(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/turfs/%d", turfID), adminToken, gin.H{"pricePerHour": 1500})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	turf := resp.Data["turf"].(map[string]interface{})
	assert.Equal(t, 1500.0, turf["price_per_hour"])
	assert.Equal(t, "Green Arena", turf["name"])

	// A turf with live bookings cannot be deleted.
	w, _ = suite.request(t, http.MethodPost, "/api/v1/bookings", playerToken, bookingBody(turfID, "09:00", "10:00"))
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp = suite.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/turfs/%d", turfID), adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "TURF_HAS_BOOKINGS", resp.Error.Code)

	// Empty turfs delete fine.
	emptyID := func() int64 {
		w, resp := suite.request(t, http.MethodPost, "/api/v1/admin/turfs", adminToken, gin.H{
			"name": "Pop-up Pitch", "location": "Pune", "pricePerHour": 800,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		return int64(resp.Data["turf"].(map[string]interface{})["id"].(float64))
	}()
	w, _ = suite.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/turfs/%d", emptyID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserAdministration(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken := suite.seedAdmin(t)
	suite.registerPlayer(t, "Asha", "asha@example.com")

	w, resp := suite.request(t, http.MethodGet, "/api/v1/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	users, _ := resp.Data["users"].([]interface{})
	require.Len(t, users, 2)

	var playerID int64
	for _, u := range users {
		m := u.(map[string]interface{})
		if m["email"] == "asha@example.com" {
			playerID = int64(m["id"].(float64))
		}
		_, hasHash := m["password_hash"]
		assert.False(t, hasHash, "hashes never serialize")
	}
	require.NotZero(t, playerID)

	w, _ = suite.request(t, http.MethodDelete, fmt.Sprintf("/api/v1/admin/users/%d", playerID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = suite.request(t, http.MethodGet, "/api/v1/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	users, _ = resp.Data["users"].([]interface{})
	assert.Len(t, users, 1)
}
