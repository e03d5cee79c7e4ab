// Package exchangerate wraps the USD-base currency rate API. Only the
// COP entry is consumed; the full table is kept on the value object and
// logged for diagnostics.
package exchangerate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-shop/internal/clients/remote"
	"go-shop/internal/config"
	"go-shop/internal/features/history"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const apiName = "ExchangeRate"

// ErrNoCOPRate means the rate table came back without a usable COP
// entry. Distinct from transport failure: the fetch itself succeeded.
var ErrNoCOPRate = errors.New("exchangerate: no COP rate in response")

// Rate is a value object, never persisted as a row of record.
type Rate struct {
	COP   decimal.Decimal            `json:"rate_cop"`
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

type Conversion struct {
	AmountUSD decimal.Decimal `json:"amount_usd"`
	AmountCOP decimal.Decimal `json:"amount_cop"`
	Rate      decimal.Decimal `json:"rate"`
}

type rateResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

type Client struct {
	baseURL  string
	http     *http.Client
	recorder history.Recorder
	logger   *zap.Logger
}

func NewClient(cfg *config.Config, recorder history.Recorder, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.ExchangeAPIURL, "/"),
		http: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		recorder: recorder,
		logger:   logger,
	}
}

// GetRate fetches the current USD rate table. A zero COP entry is not
// itself an error; transport failures come back as *remote.APIError.
func (c *Client) GetRate(ctx context.Context) (*Rate, error) {
	var resp rateResponse
	if err := remote.GetJSON(ctx, c.http, apiName, c.baseURL+"/latest/USD", &resp); err != nil {
		c.recorder.Record(ctx, history.CollectionExchangeHistory, history.QueryRecord{
			Type:    history.QueryTypePriceFetch,
			API:     apiName,
			Success: false,
			Detail:  err.Error(),
		})
		return nil, err
	}

	rate := &Rate{
		COP:   resp.Rates["COP"],
		Base:  resp.Base,
		Date:  resp.Date,
		Rates: resp.Rates,
	}

	c.recorder.Record(ctx, history.CollectionExchangeHistory, history.QueryRecord{
		Type:    history.QueryTypePriceFetch,
		API:     apiName,
		Success: true,
		Detail:  fmt.Sprintf("1 USD = %s COP", rate.COP),
		Extra: bson.M{
			"rate_usd_cop": rate.COP.String(),
			"base":         rate.Base,
			"date":         rate.Date,
			"rates":        stringTable(resp.Rates),
		},
	})

	return rate, nil
}

// Convert computes amountUSD in COP at the current rate. The returned
// amount is rounded to 2 decimal places; persisted prices are computed
// elsewhere at full precision.
func (c *Client) Convert(ctx context.Context, amountUSD decimal.Decimal) (*Conversion, error) {
	rate, err := c.GetRate(ctx)
	if err == nil && rate.COP.IsZero() {
		err = ErrNoCOPRate
	}
	if err != nil {
		c.recorder.Record(ctx, history.CollectionExchangeHistory, history.QueryRecord{
			Type:    history.QueryTypeConversion,
			API:     apiName,
			Success: false,
			Detail:  err.Error(),
			Extra:   bson.M{"amount_usd": amountUSD.String()},
		})
		return nil, err
	}

	conversion := &Conversion{
		AmountUSD: amountUSD,
		AmountCOP: amountUSD.Mul(rate.COP).Round(2),
		Rate:      rate.COP,
	}

	c.recorder.Record(ctx, history.CollectionExchangeHistory, history.QueryRecord{
		Type:    history.QueryTypeConversion,
		API:     apiName,
		Success: true,
		Detail:  fmt.Sprintf("%s USD = %s COP", conversion.AmountUSD, conversion.AmountCOP),
		Extra: bson.M{
			"amount_usd": conversion.AmountUSD.String(),
			"amount_cop": conversion.AmountCOP.String(),
			"rate":       conversion.Rate.String(),
		},
	})

	return conversion, nil
}

func stringTable(rates map[string]decimal.Decimal) bson.M {
	table := bson.M{}
	for code, value := range rates {
		table[code] = value.String()
	}
	return table
}
