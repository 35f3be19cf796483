package stripe_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sgladkov/storefront/internal/adapter/client/stripe"
	"github.com/sgladkov/storefront/internal/adapter/config"
	"github.com/sgladkov/storefront/internal/core/domain"
	"github.com/sgladkov/storefront/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*stripe.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := stripe.NewClient(&config.Stripe{
		SecretKey: "sk_test_123",
		APIBase:   server.URL,
		ClientURL: "https://shop.example",
	}, zap.NewNop())
	require.NoError(t, err)

	return client, server
}

func TestClient_CreateSession(t *testing.T) {
	orderID := uuid.New()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "card", r.PostForm.Get("payment_method_types[0]"))
		assert.Equal(t, orderID.String(), r.PostForm.Get("metadata[orderId]"))
		assert.Equal(t, "https://shop.example/myorders?session_id={CHECKOUT_SESSION_ID}",
			r.PostForm.Get("success_url"))
		assert.Equal(t, "https://shop.example/myorders?payment=cancelled",
			r.PostForm.Get("cancel_url"))
		assert.Equal(t, "usd", r.PostForm.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "Phone", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
		assert.Equal(t, "49999", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "2", r.PostForm.Get("line_items[0][quantity]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`))
	}))

	session, err := client.CreateSession(context.Background(), orderID, []port.SessionLineItem{
		{Name: "Phone", UnitAmount: 49999, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", session.URL)
}

func TestClient_CreateSession_RejectsBadLines(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an invalid line item")
	}))

	_, err := client.CreateSession(context.Background(), uuid.New(), []port.SessionLineItem{
		{Name: "Phone", UnitAmount: 49999, Quantity: 0},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidLineItem)

	_, err = client.CreateSession(context.Background(), uuid.New(), []port.SessionLineItem{
		{Name: "Phone", UnitAmount: 0, Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidLineItem)
}

func TestClient_CreateSession_GatewayError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"message":"Your card was declined.","type":"card_error"}}`))
	}))

	_, err := client.CreateSession(context.Background(), uuid.New(), []port.SessionLineItem{
		{Name: "Phone", UnitAmount: 49999, Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrGateway)
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestClient_RetrieveSession(t *testing.T) {
	orderID := uuid.New()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/checkout/sessions/cs_test_1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "cs_test_1",
			"payment_status": "paid",
			"payment_intent": "pi_123",
			"metadata": {"orderId": "` + orderID.String() + `"},
			"customer_details": {"email": "buyer@example.com"}
		}`))
	}))

	status, err := client.RetrieveSession(context.Background(), "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, "paid", status.PaymentStatus)
	assert.Equal(t, "pi_123", status.PaymentIntentID)
	assert.Equal(t, "buyer@example.com", status.PayerEmail)
	assert.Equal(t, orderID.String(), status.OrderID)
}

func TestNewClient_RequiresSecretKey(t *testing.T) {
	_, err := stripe.NewClient(&config.Stripe{}, zap.NewNop())
	assert.Error(t, err)
}
