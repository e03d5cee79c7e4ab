package history

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type QueryType string

const (
	QueryTypeProductFetch QueryType = "product_fetch"
	QueryTypePriceFetch   QueryType = "price_fetch"
	QueryTypeSearch       QueryType = "search"
	QueryTypeConversion   QueryType = "conversion"
)

// Audit collections. Each remote API gets its own call history; every
// pipeline run additionally writes one summary into api_queries.
const (
	CollectionProductHistory  = "product_api_history"
	CollectionExchangeHistory = "exchange_api_history"
	CollectionQueries         = "api_queries"
)

// QueryRecord is one remote-call attempt's outcome. Append-only and
// purely observational: no foreign keys into the catalog store.
type QueryRecord struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Type      QueryType          `json:"type" bson:"type"`
	API       string             `json:"api" bson:"api"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
	Success   bool               `json:"success" bson:"success"`
	Detail    string             `json:"detail,omitempty" bson:"detail,omitempty"`
	Extra     bson.M             `json:"extra,omitempty" bson:"extra,omitempty"`
}
