// Package fakestore integrates fakestoreapi.com as a catalog provider.
//
// The API has no search endpoint, so SearchProducts fetches the full set and
// substring-filters it on title and category.
package fakestore

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/phenrril/monochrome/internal/adapters/catalog"
	"github.com/phenrril/monochrome/internal/domain"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: hc}
}

func (c *Client) Name() string { return "fakestore" }

type fsProduct struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("fakestore status %d", res.StatusCode)
	}

	var raw []fsProduct
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(raw))
	for _, item := range raw {
		id := strconv.Itoa(item.ID)
		rating := int(math.Round(item.Rating.Rate))
		if rating == 0 {
			rating = 5
		}
		var images []string
		if item.Image != "" {
			images = []string{item.Image}
		}
		products = append(products, domain.Product{
			ID:          id,
			Title:       item.Title,
			Handle:      catalog.Handle(item.Title, id),
			Price:       item.Price,
			Currency:    "USD",
			Image:       item.Image,
			Images:      images,
			Category:    item.Category,
			Description: item.Description,
			Reviews:     []domain.Review{catalog.SynthReview(id, rating)},
		})
	}
	return catalog.EnsureUniqueHandles(products), nil
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	all, err := c.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	matched := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Category), q) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}
