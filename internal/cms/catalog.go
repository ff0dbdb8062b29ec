package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ArsemaYemiru/ak-storefront/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// The catalog lives in one CMS collection per jewelry type.
type collection struct {
	path  string
	label string
}

var collections = []collection{
	{"necklaces", "Necklace"},
	{"earrings", "Earring"},
	{"bracelets", "Bracelet"},
	{"rings", "Rings"},
}

// productEntry is the raw CMS record. Price stays untyped because the CMS
// serializes big integers as strings.
type productEntry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       any    `json:"price"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Material    string `json:"material"`
	Images      []struct {
		URL string `json:"url"`
	} `json:"images"`
	CreatedAt time.Time `json:"createdAt"`
}

type listResponse struct {
	Data []productEntry `json:"data"`
}

type itemResponse struct {
	Data *productEntry `json:"data"`
}

type catalogCache struct {
	mu      sync.RWMutex
	items   []domain.Product
	expires time.Time
}

// Products returns the merged catalog across all collections, de-duplicated
// by ID. Results are cached briefly; concurrent cache misses share one
// upstream fetch.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	c.catalog.mu.RLock()
	if time.Now().Before(c.catalog.expires) {
		items := c.catalog.items
		c.catalog.mu.RUnlock()
		return items, nil
	}
	c.catalog.mu.RUnlock()

	// Use singleflight to prevent multiple concurrent cache misses
	v, err, _ := c.sfg.Do("catalog", func() (interface{}, error) {
		items, err := c.fetchCatalog(ctx)
		if err != nil {
			return nil, err
		}

		c.catalog.mu.Lock()
		c.catalog.items = items
		c.catalog.expires = time.Now().Add(c.catalogTTL)
		c.catalog.mu.Unlock()

		return items, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]domain.Product), nil
}

func (c *Client) fetchCatalog(ctx context.Context) ([]domain.Product, error) {
	var merged []domain.Product
	index := make(map[string]int)

	for _, col := range collections {
		data, err := c.do(ctx, http.MethodGet, "/api/"+col.path+"?populate=*", "", nil)
		if err != nil {
			return nil, fmt.Errorf("fetch %s failed: %w", col.path, err)
		}

		var list listResponse
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("decode %s failed: %w", col.path, err)
		}

		for _, entry := range list.Data {
			product := c.normalize(entry, col)
			if i, seen := index[product.ID]; seen {
				merged[i] = product // same product listed twice, last one wins
				continue
			}
			index[product.ID] = len(merged)
			merged = append(merged, product)
		}
	}

	return merged, nil
}

// Product looks a single entry up by numeric ID, falling back to a slug
// filter the way the product page does.
func (c *Client) Product(ctx context.Context, id string) (*domain.Product, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/jewelries/"+url.PathEscape(id)+"?populate=*", "", nil)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return c.productBySlug(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	var item itemResponse
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("decode product failed: %w", err)
	}
	if item.Data == nil {
		return c.productBySlug(ctx, id)
	}

	product := c.normalize(*item.Data, collection{})
	return &product, nil
}

func (c *Client) productBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	path := "/api/jewelries?filters[slug][$eq]=" + url.QueryEscape(slug) + "&populate=*"
	data, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var list listResponse
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode product failed: %w", err)
	}
	if len(list.Data) == 0 {
		return nil, ErrProductNotFound
	}

	product := c.normalize(list.Data[0], collection{})
	return &product, nil
}

// NewArrivals returns the newest catalog entries first, by creation time.
// Entries created in the same instant fall back to the higher numeric ID.
func (c *Client) NewArrivals(ctx context.Context, limit int) ([]domain.Product, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return nil, err
	}

	sorted := make([]domain.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return newerID(sorted[i].ID, sorted[j].ID)
	})

	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// newerID compares product IDs numerically so "10" outranks "9"; non-numeric
// IDs fall back to a plain string compare.
func newerID(a, b string) bool {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	if aerr == nil && berr == nil {
		return ai > bi
	}
	return a > b
}

// Categories is the fixed storefront taxonomy; the CMS models each category
// as its own collection rather than a categories table.
func (c *Client) Categories(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(collections))
	for i, col := range collections {
		image := fallbackImage(col.label)
		out = append(out, domain.Category{
			ID:    strconv.Itoa(i + 1),
			Name:  strings.ToUpper(col.label),
			Image: &image,
			Link:  "/category/" + col.path,
		})
	}
	return out, nil
}

func (c *Client) normalize(entry productEntry, col collection) domain.Product {
	price, err := domain.ParsePrice(entry.Price)
	if err != nil {
		// Coercion-to-zero of genuinely invalid data is upstream dirt; keep
		// it visible instead of silently perpetuating it.
		log.Printf("product %d: %v, price coerced to 0", entry.ID, err)
	}

	image := fallbackImage(col.label)
	if len(entry.Images) > 0 && entry.Images[0].URL != "" {
		image = entry.Images[0].URL
		if !strings.HasPrefix(image, "http") {
			image = c.baseURL + image
		}
	}

	id := strconv.FormatInt(entry.ID, 10)
	ref := entry.Slug
	if ref == "" {
		ref = id
	}
	link := "/product/" + ref
	if col.path != "" {
		link += "?type=" + col.path
	}

	return domain.Product{
		ID:          id,
		Name:        entry.Name,
		Price:       price,
		Image:       &image,
		Link:        link,
		Category:    col.label,
		Description: entry.Description,
		Material:    entry.Material,
		CreatedAt:   entry.CreatedAt,
	}
}

func fallbackImage(label string) string {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "necklace"):
		return "/images/necklace-category.jpg"
	case strings.Contains(l, "earring"):
		return "/images/earrings-category.jpg"
	case strings.Contains(l, "bracelet"):
		return "/images/bracelet-category.jpg"
	default:
		return "/images/ring-category.jpg"
	}
}
