// Package platzi integrates the Platzi fake store API (api.escuelajs.co) as a
// catalog provider. Products are fetched per configured category, concurrently.
//
// This provider ships noticeably dirty demo data: placeholder titles
// ("New Product"), image URLs wrapped in stray JSON brackets, and images
// hosted on dead placeholder services. The mapper repairs all of that
// deterministically so the same record always normalizes the same way.
package platzi

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/phenrril/monochrome/internal/adapters/catalog"
	"github.com/phenrril/monochrome/internal/domain"
)

type Client struct {
	baseURL     string
	categoryIDs []int
	httpClient  *http.Client
}

func New(baseURL string, categoryIDs []int, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	if len(categoryIDs) == 0 {
		categoryIDs = []int{1, 2, 3, 4}
	}
	return &Client{baseURL: baseURL, categoryIDs: categoryIDs, httpClient: hc}
}

func (c *Client) Name() string { return "platzi" }

type pzProduct struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Category    struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"category"`
}

// FetchProducts issues one request per configured category and awaits them
// all. Merge order across categories is unspecified. Any sub-request failure
// fails the whole fetch; the usecase layer falls back to seed data.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		merged   []domain.Product
		firstErr error
	)

	for _, catID := range c.categoryIDs {
		wg.Add(1)
		go func(catID int) {
			defer wg.Done()
			batch, err := c.fetchCategory(ctx, catID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			merged = append(merged, batch...)
		}(catID)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return catalog.EnsureUniqueHandles(merged), nil
}

func (c *Client) fetchCategory(ctx context.Context, categoryID int) ([]domain.Product, error) {
	u := fmt.Sprintf("%s/categories/%d/products", c.baseURL, categoryID)
	var raw []pzProduct
	if err := c.getJSON(ctx, u, &raw); err != nil {
		return nil, fmt.Errorf("category %d: %w", categoryID, err)
	}
	out := make([]domain.Product, 0, len(raw))
	for _, item := range raw {
		out = append(out, toProduct(item))
	}
	return out, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	u := c.baseURL + "/products/?title=" + url.QueryEscape(query)
	var raw []pzProduct
	if err := c.getJSON(ctx, u, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(raw))
	for _, item := range raw {
		out = append(out, toProduct(item))
	}
	return catalog.EnsureUniqueHandles(out), nil
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
		return fmt.Errorf("platzi status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func toProduct(item pzProduct) domain.Product {
	id := strconv.Itoa(item.ID)
	title := curateTitle(item.Title, item.Category.Name)

	images := make([]string, 0, len(item.Images))
	for _, img := range item.Images {
		img = cleanImageURL(img)
		if img == "" {
			continue
		}
		if brokenImageHost(img) {
			img = substituteImage(title)
		}
		images = append(images, img)
	}
	primary := ""
	if len(images) > 0 {
		primary = images[0]
	} else {
		primary = substituteImage(title)
		images = []string{primary}
	}

	return domain.Product{
		ID:          id,
		Title:       title,
		Handle:      catalog.Handle(title, id),
		Price:       item.Price,
		Currency:    "USD",
		Image:       primary,
		Images:      images,
		Category:    item.Category.Name,
		Description: item.Description,
		Reviews:     []domain.Review{catalog.SynthReview(id, 5)},
	}
}

// curatedTitles keys the deterministic replacement for placeholder titles by
// category so demo garbage never reaches the page verbatim.
var curatedTitles = map[string]string{
	"clothes":       "Studio Essential Layer",
	"electronics":   "Everyday Carry Electronics",
	"furniture":     "Modern Living Piece",
	"shoes":         "City Walker Sneaker",
	"miscellaneous": "Curated Object",
}

func curateTitle(title, category string) string {
	t := strings.TrimSpace(title)
	switch strings.ToLower(t) {
	case "", "new product", "string", "test product":
		if curated, ok := curatedTitles[strings.ToLower(strings.TrimSpace(category))]; ok {
			return curated
		}
		if category != "" {
			return "Featured " + category + " Pick"
		}
		return "Featured Pick"
	}
	return t
}

// cleanImageURL strips the stray JSON artifacts ("[", "]", quotes) the API is
// known to leave inside image strings.
func cleanImageURL(s string) string {
	s = strings.Trim(strings.TrimSpace(s), "[]\" ")
	if s == "" || !strings.HasPrefix(s, "http") {
		return ""
	}
	return s
}

var brokenHosts = []string{"placeimg.com", "pravatar.cc", "placehold.it"}

func brokenImageHost(u string) bool {
	for _, h := range brokenHosts {
		if strings.Contains(u, h) {
			return true
		}
	}
	return false
}

// stockImages are the substitutes for broken placeholder hosts; the pick is
// keyed by a hash of the title so a product keeps its image across fetches.
var stockImages = []string{
	"https://images.unsplash.com/photo-1523381210434-271e8be1f52b?auto=format&fit=crop&q=80&w=800",
	"https://images.unsplash.com/photo-1491553895911-0055eca6402d?auto=format&fit=crop&q=80&w=800",
	"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?auto=format&fit=crop&q=80&w=800",
	"https://images.unsplash.com/photo-1549298916-b41d501d3772?auto=format&fit=crop&q=80&w=800",
	"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?auto=format&fit=crop&q=80&w=800",
	"https://images.unsplash.com/photo-1526170375885-4d8ecf77b99f?auto=format&fit=crop&q=80&w=800",
}

func substituteImage(title string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(title))
	return stockImages[int(h.Sum32())%len(stockImages)]
}
