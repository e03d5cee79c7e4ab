// Package dummyjson wraps the DummyJSON product catalog API. The
// storefront only deals in footwear, so list fetches are restricted to
// the two shoe categories and filtered against a sporting-goods
// denylist before anything reaches the sync pipeline.
package dummyjson

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go-shop/internal/clients/remote"
	"go-shop/internal/config"
	"go-shop/internal/features/history"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const apiName = "DummyJSON"

var shoeCategories = []string{"womens-shoes", "mens-shoes"}

// excludedKeywords knocks out the sporting goods DummyJSON mixes into
// its shoe-adjacent results.
var excludedKeywords = []string{
	"ball", "bat", "helmet", "glove", "wicket", "shuttlecock", "racket",
	"rim", "football", "basketball", "baseball", "volleyball",
	"tennis ball", "cricket", "golf ball", "iron golf",
}

// Product is the remote record as the API returns it. It is transient:
// the remote catalog stays the source of truth and is never mutated.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Stock       int             `json:"stock"`
	Rating      decimal.Decimal `json:"rating"`
	Thumbnail   string          `json:"thumbnail"`
}

type listResponse struct {
	Products []Product `json:"products"`
}

type Client struct {
	baseURL  string
	http     *http.Client
	limiter  *rate.Limiter
	recorder history.Recorder
	logger   *zap.Logger
}

func NewClient(cfg *config.Config, recorder history.Recorder, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.DummyJSONURL, "/"),
		http: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		limiter:  rate.NewLimiter(rate.Every(time.Second/5), 5),
		recorder: recorder,
		logger:   logger,
	}
}

// Excluded reports whether a product title hits the sporting-goods
// denylist. Matching is substring, on the lowercased title.
func Excluded(title string) bool {
	lowered := strings.ToLower(title)
	for _, keyword := range excludedKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// FetchProducts returns up to limit shoe products. A category that
// fails is skipped; if both categories come back empty the client falls
// back to an unfiltered keyword search. Failures never surface as an
// error here, only as an empty slice plus a failure audit record.
func (c *Client) FetchProducts(ctx context.Context, limit int) []Product {
	products := make([]Product, 0, limit)

	for _, category := range shoeCategories {
		batch, err := c.fetchCategory(ctx, category)
		if err != nil {
			// Partial failure is tolerated, the category is skipped
			c.logger.Warn("category fetch failed",
				zap.String("category", category),
				zap.Error(err),
			)
			continue
		}
		for _, p := range batch {
			if Excluded(p.Title) {
				continue
			}
			products = append(products, p)
		}
	}

	// Keyword-search fallback when all categories failed or filtered
	// to zero. The denylist does not apply on this path.
	if len(products) == 0 {
		var resp listResponse
		if err := c.get(ctx, "/search?q=shoes", &resp); err != nil {
			c.recorder.Record(ctx, history.CollectionProductHistory, history.QueryRecord{
				Type:    history.QueryTypeProductFetch,
				API:     apiName,
				Success: false,
				Detail:  err.Error(),
			})
			return []Product{}
		}
		products = resp.Products
	}

	if len(products) > limit {
		products = products[:limit]
	}

	sample := products
	if len(sample) > 3 {
		sample = sample[:3]
	}
	c.recorder.Record(ctx, history.CollectionProductHistory, history.QueryRecord{
		Type:    history.QueryTypeProductFetch,
		API:     apiName,
		Success: true,
		Detail:  fmt.Sprintf("fetched %d shoe products", len(products)),
		Extra: bson.M{
			"count":      len(products),
			"categories": shoeCategories,
			"sample":     sampleDocs(sample),
		},
	})

	return products
}

// FetchByID fetches a single product. A 4xx/5xx or transport error
// yields a nil product and a typed *remote.APIError.
func (c *Client) FetchByID(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := c.get(ctx, fmt.Sprintf("/%d", id), &product); err != nil {
		c.recorder.Record(ctx, history.CollectionProductHistory, history.QueryRecord{
			Type:    history.QueryTypeProductFetch,
			API:     apiName,
			Success: false,
			Detail:  err.Error(),
			Extra:   bson.M{"product_id": id},
		})
		return nil, err
	}

	c.recorder.Record(ctx, history.CollectionProductHistory, history.QueryRecord{
		Type:    history.QueryTypeProductFetch,
		API:     apiName,
		Success: true,
		Detail:  fmt.Sprintf("fetched product %d", id),
		Extra:   bson.M{"product_id": id, "product": productDoc(product)},
	})
	return &product, nil
}

// Search runs a free-text search. Queries that do not already mention
// footwear get " shoes" appended to bias results toward it.
func (c *Client) Search(ctx context.Context, query string) []Product {
	searchQuery := query
	lowered := strings.ToLower(query)
	if !strings.Contains(lowered, "shoe") && !strings.Contains(lowered, "zapato") {
		searchQuery = query + " shoes"
	}

	var resp listResponse
	if err := c.get(ctx, "/search?q="+url.QueryEscape(searchQuery), &resp); err != nil {
		c.recorder.Record(ctx, history.CollectionProductHistory, history.QueryRecord{
			Type:    history.QueryTypeSearch,
			API:     apiName,
			Success: false,
			Detail:  err.Error(),
			Extra:   bson.M{"query": searchQuery},
		})
		return []Product{}
	}

	c.recorder.Record(ctx, history.CollectionProductHistory, history.QueryRecord{
		Type:    history.QueryTypeSearch,
		API:     apiName,
		Success: true,
		Detail:  fmt.Sprintf("search %q returned %d products", searchQuery, len(resp.Products)),
		Extra:   bson.M{"query": searchQuery, "count": len(resp.Products)},
	})
	return resp.Products
}

func (c *Client) fetchCategory(ctx context.Context, category string) ([]Product, error) {
	var resp listResponse
	if err := c.get(ctx, "/category/"+category, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// productDoc flattens a product for the audit store. Decimal fields
// carry no bson codec, so prices and ratings go in as strings.
func productDoc(p Product) bson.M {
	return bson.M{
		"id":       p.ID,
		"title":    p.Title,
		"price":    p.Price.String(),
		"category": p.Category,
		"brand":    p.Brand,
		"stock":    p.Stock,
		"rating":   p.Rating.String(),
	}
}

func sampleDocs(products []Product) []bson.M {
	docs := make([]bson.M, 0, len(products))
	for _, p := range products {
		docs = append(docs, productDoc(p))
	}
	return docs
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return remote.Classify(apiName, err)
	}
	return remote.GetJSON(ctx, c.http, apiName, c.baseURL+path, out)
}
