package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"bookbarn/internal/domain"
)

const clientTimeout = 10 * time.Second

// OrderServiceClient submits assembled order payloads to the remote order
// collaborator. Failures carry the service's human-readable message so the
// surface can show it unmodified.
type OrderServiceClient struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	baseURL string
}

func NewOrderServiceClient(baseURL string) *OrderServiceClient {
	return &OrderServiceClient{
		http:    resty.New().SetTimeout(clientTimeout).SetRetryCount(0),
		breaker: newBreaker("orders"),
		baseURL: baseURL,
	}
}

type orderErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *OrderServiceClient) CreateOrder(ctx context.Context, sub domain.OrderSubmission) (domain.OrderResult, error) {
	out, err := c.breaker.Execute(func() (any, error) {
		var body domain.OrderResult
		resp, err := c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(sub).
			SetResult(&body).
			Post(c.baseURL + "/orders")
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			var e orderErrorResponse
			if jerr := json.Unmarshal(resp.Body(), &e); jerr == nil {
				if e.Error != "" {
					return nil, errors.New(e.Error)
				}
				if e.Message != "" {
					return nil, errors.New(e.Message)
				}
			}
			return nil, fmt.Errorf("order service returned status %d", resp.StatusCode())
		}
		return body, nil
	})
	if err != nil {
		return domain.OrderResult{}, err
	}
	return out.(domain.OrderResult), nil
}
