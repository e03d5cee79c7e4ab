package dummyjson

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-shop/internal/clients/remote"
	"go-shop/internal/config"
	"go-shop/internal/features/history"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type recorderStub struct {
	collections []string
	records     []history.QueryRecord
}

func (r *recorderStub) Record(ctx context.Context, collection string, record history.QueryRecord) {
	r.collections = append(r.collections, collection)
	r.records = append(r.records, record)
}

func newTestClient(serverURL string) (*Client, *recorderStub) {
	recorder := &recorderStub{}
	cfg := &config.Config{
		DummyJSONURL: serverURL,
		HTTPTimeout:  2 * time.Second,
	}
	return NewClient(cfg, recorder, zap.NewNop()), recorder
}

func TestExcluded(t *testing.T) {
	cases := []struct {
		title string
		want  bool
	}{
		{"Nike Air Jordan 1 Red And Black", false},
		{"Basketball Shoes Pro", true},
		{"Men's Running Shoes", false},
		{"Premium Tennis Ball Pack", true},
		{"Iron Golf Set", true},
		{"CRICKET BAT", true},
		{"Sandals", false},
	}

	for _, tc := range cases {
		if got := Excluded(tc.title); got != tc.want {
			t.Errorf("Excluded(%q) = %v, want %v", tc.title, got, tc.want)
		}
	}
}

func TestFetchProductsFiltersAndTruncates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/category/womens-shoes":
			w.Write([]byte(`{"products":[
				{"id":1,"title":"Red Heels","price":29.99,"category":"womens-shoes"},
				{"id":2,"title":"Basketball Shoes Pro","price":59.99,"category":"womens-shoes"}
			]}`))
		case "/category/mens-shoes":
			w.Write([]byte(`{"products":[
				{"id":3,"title":"Men's Running Shoes","price":49.99,"category":"mens-shoes"},
				{"id":4,"title":"Leather Boots","price":79.99,"category":"mens-shoes"}
			]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client, recorder := newTestClient(server.URL)
	products := client.FetchProducts(context.Background(), 2)

	if len(products) != 2 {
		t.Fatalf("expected 2 products after filter and truncation, got %d", len(products))
	}
	for _, p := range products {
		if p.Title == "Basketball Shoes Pro" {
			t.Errorf("denylisted product %q survived the filter", p.Title)
		}
	}
	if products[0].ID != 1 || products[1].ID != 3 {
		t.Errorf("unexpected products: %+v", products)
	}

	if len(recorder.records) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(recorder.records))
	}
	rec := recorder.records[0]
	if !rec.Success || rec.Type != history.QueryTypeProductFetch {
		t.Errorf("unexpected audit record: %+v", rec)
	}
	if recorder.collections[0] != history.CollectionProductHistory {
		t.Errorf("record went to %q", recorder.collections[0])
	}
}

func TestFetchProductsAuditSampleSurvivesBSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/category/womens-shoes":
			w.Write([]byte(`{"products":[
				{"id":1,"title":"Red Heels","price":29.99,"rating":4.5,"category":"womens-shoes"}
			]}`))
		case "/category/mens-shoes":
			w.Write([]byte(`{"products":[]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client, recorder := newTestClient(server.URL)
	client.FetchProducts(context.Background(), 30)

	if len(recorder.records) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(recorder.records))
	}

	// Round-trip through bson the way the audit store would; the price
	// must come back as a value, not an empty document.
	raw, err := bson.Marshal(recorder.records[0].Extra)
	if err != nil {
		t.Fatalf("marshal extra: %v", err)
	}
	var extra bson.M
	if err := bson.Unmarshal(raw, &extra); err != nil {
		t.Fatalf("unmarshal extra: %v", err)
	}

	sample, ok := extra["sample"].(bson.A)
	if !ok || len(sample) != 1 {
		t.Fatalf("unexpected sample: %#v", extra["sample"])
	}
	doc, ok := sample[0].(bson.M)
	if !ok {
		t.Fatalf("unexpected sample entry: %#v", sample[0])
	}
	if doc["price"] != "29.99" {
		t.Errorf("price = %#v, want %q", doc["price"], "29.99")
	}
	if doc["rating"] != "4.5" {
		t.Errorf("rating = %#v, want %q", doc["rating"], "4.5")
	}
}

func TestFetchProductsSearchFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			// Fallback results skip the denylist.
			w.Write([]byte(`{"products":[
				{"id":10,"title":"Basketball Shoes Pro","price":59.99}
			]}`))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)
	products := client.FetchProducts(context.Background(), 30)

	if len(products) != 1 || products[0].ID != 10 {
		t.Fatalf("expected the fallback search result, got %+v", products)
	}
}

func TestFetchProductsTotalFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, recorder := newTestClient(server.URL)
	products := client.FetchProducts(context.Background(), 30)

	if len(products) != 0 {
		t.Fatalf("expected empty slice, got %d products", len(products))
	}
	if len(recorder.records) != 1 || recorder.records[0].Success {
		t.Fatalf("expected one failure audit record, got %+v", recorder.records)
	}
}

func TestSearchBiasesTowardShoes(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`{"products":[]}`))
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)

	client.Search(context.Background(), "red nike")
	if gotQuery != "red nike shoes" {
		t.Errorf("query = %q, want %q", gotQuery, "red nike shoes")
	}

	client.Search(context.Background(), "running shoes")
	if gotQuery != "running shoes" {
		t.Errorf("query = %q, should not be biased twice", gotQuery)
	}

	client.Search(context.Background(), "zapatos rojos")
	if gotQuery != "zapatos rojos" {
		t.Errorf("query = %q, spanish mention should not be biased", gotQuery)
	}
}

func TestFetchByIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client, recorder := newTestClient(server.URL)

	product, err := client.FetchByID(context.Background(), 999)
	if product != nil {
		t.Fatalf("expected nil product, got %+v", product)
	}

	var apiErr *remote.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *remote.APIError, got %T", err)
	}
	if apiErr.Kind != remote.KindBadStatus || apiErr.Status != http.StatusNotFound {
		t.Errorf("unexpected error classification: %+v", apiErr)
	}
	if len(recorder.records) != 1 || recorder.records[0].Success {
		t.Fatalf("expected one failure audit record, got %+v", recorder.records)
	}
}
