package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Markets is the body of GET /v1/markets.
type Markets struct {
	Items []MarketsMarket
}

// MarketsMarket describes one venue. Market is a free-form string here; the
// catalog may list venues the aggregate endpoints do not support yet.
type MarketsMarket struct {
	Market      string             `json:"market"`
	URL         string             `json:"url"`
	Description *string            `json:"description,omitempty"`
	Type        *string            `json:"type,omitempty"`
	Country     *string            `json:"country,omitempty"`
	Icon        *string            `json:"icon,omitempty"`
	Trustpilot  *MarketsTrustpilot `json:"trustpilot,omitempty"`
	Fees        *MarketsFees       `json:"fees,omitempty"`
	UpdatedAt   *time.Time         `json:"updated_at,omitempty"`
}

type MarketsTrustpilot struct {
	Rating  *float64 `json:"rating,omitempty"`
	Reviews *int     `json:"reviews,omitempty"`
	Link    *string  `json:"link,omitempty"`
}

type MarketsFees struct {
	Deposit    *MarketsFee `json:"deposit,omitempty"`
	Buyer      *MarketsFee `json:"buyer,omitempty"`
	Seller     *MarketsFee `json:"seller,omitempty"`
	Withdrawal *MarketsFee `json:"withdrawal,omitempty"`
}

// FeeKind tags which variant a MarketsFee holds.
type FeeKind uint8

const (
	FeeKindFlat FeeKind = iota + 1
	FeeKindRange
)

func (k FeeKind) String() string {
	switch k {
	case FeeKindFlat:
		return "flat"
	case FeeKindRange:
		return "range"
	default:
		return "unknown"
	}
}

// MarketsFee is either a flat rate or a {min, max} range. Use Flat and Range
// to read it; exactly one of them reports true.
type MarketsFee struct {
	kind FeeKind
	rate float64
	rng  MarketsFeeRange
}

// MarketsFeeRange bounds a variable fee. Either side may be unknown.
type MarketsFeeRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

func FlatFee(rate float64) MarketsFee {
	return MarketsFee{kind: FeeKindFlat, rate: rate}
}

func RangeFee(r MarketsFeeRange) MarketsFee {
	return MarketsFee{kind: FeeKindRange, rng: r}
}

func (f MarketsFee) Kind() FeeKind {
	return f.kind
}

func (f MarketsFee) Flat() (float64, bool) {
	return f.rate, f.kind == FeeKindFlat
}

func (f MarketsFee) Range() (MarketsFeeRange, bool) {
	return f.rng, f.kind == FeeKindRange
}

func (m *Markets) UnmarshalJSON(data []byte) error {
	return decodeArray("Markets", data, &m.Items)
}

func (m Markets) MarshalJSON() ([]byte, error) {
	return marshalItems(m.Items)
}

func (m *MarketsMarket) UnmarshalJSON(data []byte) error {
	o := newObject("MarketsMarket", data)
	field(o, "market", &m.Market)
	field(o, "url", &m.URL)
	pointer(o, "description", optional, &m.Description)
	pointer(o, "type", optional, &m.Type)
	pointer(o, "country", optional, &m.Country)
	pointer(o, "icon", optional, &m.Icon)
	pointer(o, "trustpilot", optional, &m.Trustpilot)
	pointer(o, "fees", optional, &m.Fees)
	optionalTimestamp(o, "updated_at", &m.UpdatedAt)
	return o.Err()
}

func (t *MarketsTrustpilot) UnmarshalJSON(data []byte) error {
	o := newObject("MarketsTrustpilot", data)
	pointer(o, "rating", optional, &t.Rating)
	pointer(o, "reviews", optional, &t.Reviews)
	pointer(o, "link", optional, &t.Link)
	return o.Err()
}

func (f *MarketsFees) UnmarshalJSON(data []byte) error {
	o := newObject("MarketsFees", data)
	pointer(o, "deposit", optional, &f.Deposit)
	pointer(o, "buyer", optional, &f.Buyer)
	pointer(o, "seller", optional, &f.Seller)
	pointer(o, "withdrawal", optional, &f.Withdrawal)
	return o.Err()
}

// UnmarshalJSON tries a flat number first and falls back to the range
// object. Any other shape is an error, never an absent fee.
func (f *MarketsFee) UnmarshalJSON(data []byte) error {
	var rate float64
	if err := json.Unmarshal(data, &rate); err == nil {
		*f = FlatFee(rate)
		return nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return &DecodeError{
			Entity: "MarketsFee",
			Kind:   InvalidValue,
			Err:    fmt.Errorf("expected a number or a {min, max} object, got %s", trimmed),
		}
	}

	var r MarketsFeeRange
	if err := r.UnmarshalJSON(data); err != nil {
		return err
	}
	*f = RangeFee(r)
	return nil
}

func (f MarketsFee) MarshalJSON() ([]byte, error) {
	switch f.kind {
	case FeeKindFlat:
		return json.Marshal(f.rate)
	case FeeKindRange:
		return json.Marshal(f.rng)
	default:
		return []byte("null"), nil
	}
}

func (r *MarketsFeeRange) UnmarshalJSON(data []byte) error {
	o := newObject("MarketsFeeRange", data)
	pointer(o, "min", optional, &r.Min)
	pointer(o, "max", optional, &r.Max)
	return o.Err()
}
