package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sgladkov/storefront/internal/adapter/config"
	"github.com/sgladkov/storefront/internal/core/domain"
	"github.com/sgladkov/storefront/internal/core/port"
	"go.uber.org/zap"
)

const sessionsPath = "/v1/checkout/sessions"
const orderIDMetadataKey = "orderId"

// Client talks to the Stripe hosted-checkout API over its form-encoded REST
// surface. It implements port.PaymentGateway.
type Client struct {
	logger     *zap.Logger
	apiBase    string
	secretKey  string
	clientURL  string
	httpClient *http.Client
}

func NewClient(cfg *config.Stripe, log *zap.Logger) (*Client, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("stripe secret key is not configured")
	}
	return &Client{
		logger:     log,
		apiBase:    strings.TrimRight(cfg.APIBase, "/"),
		secretKey:  cfg.SecretKey,
		clientURL:  strings.TrimRight(cfg.ClientURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type sessionResponse struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	PaymentStatus   string `json:"payment_status"`
	PaymentIntent   string `json:"payment_intent"`
	Metadata        map[string]string `json:"metadata"`
	CustomerDetails struct {
		Email string `json:"email"`
	} `json:"customer_details"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// CreateSession creates one hosted payment session tagged with the order id
// as correlation metadata. Line items are validated before the request goes
// out; a non-positive amount or sub-1 quantity fails the whole call.
func (c *Client) CreateSession(ctx context.Context, orderID uuid.UUID, items []port.SessionLineItem) (*port.CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("metadata["+orderIDMetadataKey+"]", orderID.String())
	form.Set("success_url", c.clientURL+"/myorders?session_id={CHECKOUT_SESSION_ID}")
	form.Set("cancel_url", c.clientURL+"/myorders?payment=cancelled")

	for i, item := range items {
		if item.UnitAmount <= 0 {
			return nil, fmt.Errorf("%w: bad amount %d for %q", domain.ErrInvalidLineItem, item.UnitAmount, item.Name)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: bad quantity %d for %q", domain.ErrInvalidLineItem, item.Quantity, item.Name)
		}

		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", "usd")
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		if item.Description != "" {
			form.Set(prefix+"[price_data][product_data][description]", item.Description)
		}
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.FormatInt(item.Quantity, 10))
	}

	var session sessionResponse
	err := c.do(ctx, http.MethodPost, sessionsPath, form, &session)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Created checkout session",
		zap.String("order", orderID.String()), zap.String("session", session.ID))

	return &port.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// RetrieveSession is an idempotent read of a session outcome.
func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*port.SessionStatus, error) {
	var session sessionResponse
	err := c.do(ctx, http.MethodGet, sessionsPath+"/"+url.PathEscape(sessionID), nil, &session)
	if err != nil {
		return nil, err
	}

	return &port.SessionStatus{
		PaymentStatus:   session.PaymentStatus,
		PaymentIntentID: session.PaymentIntent,
		PayerEmail:      session.CustomerDetails.Email,
		OrderID:         session.Metadata[orderIDMetadataKey],
	}, nil
}

func (c *Client) do(ctx context.Context, method string, path string, form url.Values, out *sessionResponse) error {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.apiBase+path, body)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrGateway, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrGateway, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			c.logger.Error("Stripe request failed",
				zap.Int("status", resp.StatusCode), zap.String("type", apiErr.Error.Type))
			return fmt.Errorf("%w: %s", domain.ErrGateway, apiErr.Error.Message)
		}
		return fmt.Errorf("%w: unexpected status %d", domain.ErrGateway, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: error on response decode: %s", domain.ErrGateway, err)
	}

	return nil
}
