package model

import "time"

// CurrencyRates is the body of GET /v1/currency_rates.
type CurrencyRates struct {
	Items []CurrencyRate
}

// CurrencyRate is the USD conversion rate of one currency.
type CurrencyRate struct {
	CurrencyCode   string    `json:"currency_code"`
	CurrencyName   string    `json:"currency_name"`
	CurrencySymbol string    `json:"currency_symbol"`
	Rate           float64   `json:"rate"`
	Timestamp      time.Time `json:"timestamp"`
}

func (r *CurrencyRates) UnmarshalJSON(data []byte) error {
	return decodeArray("CurrencyRates", data, &r.Items)
}

func (r CurrencyRates) MarshalJSON() ([]byte, error) {
	return marshalItems(r.Items)
}

func (r *CurrencyRate) UnmarshalJSON(data []byte) error {
	o := newObject("CurrencyRate", data)
	field(o, "currency_code", &r.CurrencyCode)
	field(o, "currency_name", &r.CurrencyName)
	field(o, "currency_symbol", &r.CurrencySymbol)
	field(o, "rate", &r.Rate)
	timestamp(o, "timestamp", &r.Timestamp)
	return o.Err()
}

// Lookup returns the rate for a currency code.
func (r CurrencyRates) Lookup(code string) (CurrencyRate, bool) {
	for _, rate := range r.Items {
		if rate.CurrencyCode == code {
			return rate, true
		}
	}
	return CurrencyRate{}, false
}
