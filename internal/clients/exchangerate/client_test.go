package exchangerate

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

	"github.com/shopspring/decimal"
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
		ExchangeAPIURL: serverURL,
		HTTPTimeout:    2 * time.Second,
	}
	return NewClient(cfg, recorder, zap.NewNop()), recorder
}

func TestGetRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/latest/USD" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"base":"USD","date":"2024-05-01","rates":{"COP":4000,"EUR":0.92}}`))
	}))
	defer server.Close()

	client, recorder := newTestClient(server.URL)

	rate, err := client.GetRate(context.Background())
	if err != nil {
		t.Fatalf("GetRate: %v", err)
	}
	if !rate.COP.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("COP = %s, want 4000", rate.COP)
	}
	if rate.Base != "USD" || len(rate.Rates) != 2 {
		t.Errorf("unexpected rate: %+v", rate)
	}

	if len(recorder.records) != 1 || !recorder.records[0].Success {
		t.Fatalf("expected one success audit record, got %+v", recorder.records)
	}
	if recorder.collections[0] != history.CollectionExchangeHistory {
		t.Errorf("record went to %q", recorder.collections[0])
	}
}

func TestGetRateBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	client, recorder := newTestClient(server.URL)

	_, err := client.GetRate(context.Background())
	var apiErr *remote.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *remote.APIError, got %T", err)
	}
	if apiErr.Kind != remote.KindBadStatus || apiErr.Status != http.StatusBadGateway {
		t.Errorf("unexpected classification: %+v", apiErr)
	}
	if len(recorder.records) != 1 || recorder.records[0].Success {
		t.Fatalf("expected one failure audit record, got %+v", recorder.records)
	}
}

func TestConvertRoundsToTwoPlaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"USD","date":"2024-05-01","rates":{"COP":4000}}`))
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)

	conversion, err := client.Convert(context.Background(), decimal.RequireFromString("49.99"))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if want := decimal.RequireFromString("199960.00"); !conversion.AmountCOP.Equal(want) {
		t.Errorf("AmountCOP = %s, want %s", conversion.AmountCOP, want)
	}
	if !conversion.Rate.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("Rate = %s, want 4000", conversion.Rate)
	}
}

func TestConvertWithoutCOPEntry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base":"USD","date":"2024-05-01","rates":{"EUR":0.92}}`))
	}))
	defer server.Close()

	client, recorder := newTestClient(server.URL)

	_, err := client.Convert(context.Background(), decimal.NewFromInt(10))
	if !errors.Is(err, ErrNoCOPRate) {
		t.Fatalf("expected ErrNoCOPRate, got %v", err)
	}

	// One success record for the fetch, one failure for the conversion.
	if len(recorder.records) != 2 {
		t.Fatalf("expected 2 audit records, got %d", len(recorder.records))
	}
	last := recorder.records[1]
	if last.Success || last.Type != history.QueryTypeConversion {
		t.Errorf("unexpected conversion record: %+v", last)
	}
}
