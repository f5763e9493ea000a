package clients

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"bookbarn/internal/domain"
)

// CatalogFilter narrows a catalog listing. Zero value lists everything.
type CatalogFilter struct {
	Query    string
	Category string
	Page     int
	PageSize int
}

// CatalogClient reads the remote catalog collaborator. The engine treats the
// catalog as a read-only source and never mutates it.
type CatalogClient struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	baseURL string
}

func NewCatalogClient(baseURL string) *CatalogClient {
	return &CatalogClient{
		http:    resty.New().SetTimeout(clientTimeout).SetRetryCount(0),
		breaker: newBreaker("catalog"),
		baseURL: baseURL,
	}
}

type listItemsResponse struct {
	Items []domain.Book `json:"items"`
}

func (c *CatalogClient) ListItems(ctx context.Context, f CatalogFilter) ([]domain.Book, error) {
	out, err := c.breaker.Execute(func() (any, error) {
		var body listItemsResponse
		req := c.http.R().SetContext(ctx).SetResult(&body)
		if f.Query != "" {
			req.SetQueryParam("q", f.Query)
		}
		if f.Category != "" {
			req.SetQueryParam("category", f.Category)
		}
		if f.Page > 0 {
			req.SetQueryParam("page", fmt.Sprint(f.Page))
		}
		if f.PageSize > 0 {
			req.SetQueryParam("pageSize", fmt.Sprint(f.PageSize))
		}
		resp, err := req.Get(c.baseURL + "/items")
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("catalog service returned status %d", resp.StatusCode())
		}
		return body.Items, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]domain.Book), nil
}

func (c *CatalogClient) GetItem(ctx context.Context, id string) (domain.Book, error) {
	out, err := c.breaker.Execute(func() (any, error) {
		var body domain.Book
		resp, err := c.http.R().SetContext(ctx).SetResult(&body).Get(c.baseURL + "/items/" + id)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("catalog service returned status %d", resp.StatusCode())
		}
		return body, nil
	})
	if err != nil {
		return domain.Book{}, err
	}
	return out.(domain.Book), nil
}

func (c *CatalogClient) ListBestsellers(ctx context.Context) ([]domain.Book, error) {
	out, err := c.breaker.Execute(func() (any, error) {
		var body listItemsResponse
		resp, err := c.http.R().SetContext(ctx).SetResult(&body).Get(c.baseURL + "/bestsellers")
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("catalog service returned status %d", resp.StatusCode())
		}
		return body.Items, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]domain.Book), nil
}
