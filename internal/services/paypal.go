// internal/services/paypal.go
package services

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

	"github.com/sirupsen/logrus"

	"github.com/letmemugyou/backend/internal/config"
)

// PaymentGateway is the two-call contract the checkout orchestrator needs:
// create a gateway order for the cart totals, then capture it by id.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, totals Totals) (string, error)
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
}

type CaptureResult struct {
	OrderID  string
	Status   string
	Amount   string
	Currency string
}

const captureStatusCompleted = "COMPLETED"

// Completed reports whether the gateway finalized the payment.
func (r *CaptureResult) Completed() bool {
	return r.Status == captureStatusCompleted
}

// ModeSource selects sandbox vs live credentials per call, so an admin
// settings change takes effect without a restart.
type ModeSource interface {
	PayPalMode(ctx context.Context) string
}

// PayPalClient talks to the PayPal Orders v2 REST API.
type PayPalClient struct {
	config     config.PayPalConfig
	modes      ModeSource
	httpClient *http.Client

	// Overridable for tests.
	SandboxBaseURL string
	LiveBaseURL    string
}

func NewPayPalClient(cfg config.PayPalConfig, modes ModeSource) *PayPalClient {
	return &PayPalClient{
		config:         cfg,
		modes:          modes,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		SandboxBaseURL: "https://api-m.sandbox.paypal.com",
		LiveBaseURL:    "https://api-m.paypal.com",
	}
}

type paypalCredentials struct {
	baseURL  string
	clientID string
	secret   string
}

func (c *PayPalClient) credentials(ctx context.Context) paypalCredentials {
	if c.modes.PayPalMode(ctx) == "live" {
		return paypalCredentials{
			baseURL:  c.LiveBaseURL,
			clientID: c.config.LiveClientID,
			secret:   c.config.LiveSecret,
		}
	}
	return paypalCredentials{
		baseURL:  c.SandboxBaseURL,
		clientID: c.config.SandboxClientID,
		secret:   c.config.SandboxSecret,
	}
}

func (c *PayPalClient) accessToken(ctx context.Context, creds paypalCredentials) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		creds.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPaymentService, err)
	}
	req.SetBasicAuth(creds.clientID, creds.secret)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token request: %v", ErrPaymentService, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Error("PayPal token request failed")
		return "", fmt.Errorf("%w: token request returned %d", ErrPaymentService, resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil || tokenResp.AccessToken == "" {
		return "", fmt.Errorf("%w: malformed token response", ErrPaymentService)
	}

	return tokenResp.AccessToken, nil
}

// CreateOrder submits a CAPTURE-intent order with an itemized
// subtotal/tax breakdown and returns the gateway order id.
func (c *PayPalClient) CreateOrder(ctx context.Context, totals Totals) (string, error) {
	creds := c.credentials(ctx)
	token, err := c.accessToken(ctx, creds)
	if err != nil {
		return "", err
	}

	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"amount": map[string]interface{}{
					"currency_code": "USD",
					"value":         fmt.Sprintf("%.2f", totals.Total),
					"breakdown": map[string]interface{}{
						"item_total": map[string]string{
							"currency_code": "USD",
							"value":         fmt.Sprintf("%.2f", totals.Subtotal),
						},
						"tax_total": map[string]string{
							"currency_code": "USD",
							"value":         fmt.Sprintf("%.2f", totals.Tax),
						},
					},
				},
			},
		},
		"application_context": map[string]string{
			"brand_name":  c.config.BrandName,
			"user_action": "PAY_NOW",
		},
	}

	body, err := c.post(ctx, creds.baseURL+"/v2/checkout/orders", token, payload)
	if err != nil {
		return "", err
	}

	var orderResp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &orderResp); err != nil || orderResp.ID == "" {
		return "", fmt.Errorf("%w: malformed create-order response", ErrPaymentService)
	}

	return orderResp.ID, nil
}

// CaptureOrder finalizes a previously approved gateway order.
func (c *PayPalClient) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	creds := c.credentials(ctx)
	token, err := c.accessToken(ctx, creds)
	if err != nil {
		return nil, err
	}

	captureURL := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", creds.baseURL, url.PathEscape(orderID))
	body, err := c.post(ctx, captureURL, token, nil)
	if err != nil {
		return nil, err
	}

	var captureResp struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		PurchaseUnits []struct {
			Payments struct {
				Captures []struct {
					Amount struct {
						CurrencyCode string `json:"currency_code"`
						Value        string `json:"value"`
					} `json:"amount"`
				} `json:"captures"`
			} `json:"payments"`
		} `json:"purchase_units"`
	}
	if err := json.Unmarshal(body, &captureResp); err != nil {
		return nil, fmt.Errorf("%w: malformed capture response", ErrPaymentService)
	}

	result := &CaptureResult{
		OrderID: captureResp.ID,
		Status:  captureResp.Status,
	}
	if len(captureResp.PurchaseUnits) > 0 {
		captures := captureResp.PurchaseUnits[0].Payments.Captures
		if len(captures) > 0 {
			result.Amount = captures[0].Amount.Value
			result.Currency = captures[0].Amount.CurrencyCode
		}
	}

	return result, nil
}

func (c *PayPalClient) post(ctx context.Context, endpoint, token string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPaymentService, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentService, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logrus.WithFields(logrus.Fields{
			"endpoint": endpoint,
			"status":   resp.StatusCode,
			"body":     string(body),
		}).Error("PayPal API error")
		return nil, fmt.Errorf("%w: gateway returned %d", ErrPaymentService, resp.StatusCode)
	}

	return body, nil
}
