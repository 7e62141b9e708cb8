// Package dummyjson integrates dummyjson.com as a catalog provider.
package dummyjson

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/phenrril/monochrome/internal/adapters/catalog"
	"github.com/phenrril/monochrome/internal/domain"
)

type Client struct {
	baseURL    string
	limit      int
	httpClient *http.Client
}

func New(baseURL string, limit int, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	if limit <= 0 {
		limit = 100
	}
	return &Client{baseURL: baseURL, limit: limit, httpClient: hc}
}

func (c *Client) Name() string { return "dummyjson" }

type djProduct struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Thumbnail   string   `json:"thumbnail"`
	Images      []string `json:"images"`
}

type djListResp struct {
	Products []djProduct `json:"products"`
}

func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	u := fmt.Sprintf("%s/products?limit=%d", c.baseURL, c.limit)
	var out djListResp
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(out.Products))
	for _, item := range out.Products {
		products = append(products, c.toProduct(item))
	}
	return catalog.EnsureUniqueHandles(products), nil
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	u := c.baseURL + "/products/search?q=" + url.QueryEscape(query)
	var out djListResp
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(out.Products))
	for _, item := range out.Products {
		products = append(products, c.toProduct(item))
	}
	return catalog.EnsureUniqueHandles(products), nil
}

func (c *Client) toProduct(item djProduct) domain.Product {
	id := strconv.Itoa(item.ID)
	images := item.Images
	if len(images) == 0 && item.Thumbnail != "" {
		images = []string{item.Thumbnail}
	}
	return domain.Product{
		ID:          id,
		Title:       item.Title,
		Handle:      catalog.Handle(item.Title, id),
		Price:       item.Price,
		Currency:    "USD",
		Image:       item.Thumbnail,
		Images:      images,
		Category:    item.Category,
		Description: item.Description,
		Reviews:     []domain.Review{catalog.SynthReview(id, 5)},
	}
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return fmt.Errorf("dummyjson status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
