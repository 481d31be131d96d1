package model

import (
	"fmt"
	"strings"
)

// Market identifies a trading venue the API aggregates data from.
type Market string

const (
	MarketSteam       Market = "STEAMCOMMUNITY"
	MarketBuff        Market = "BUFF163"
	MarketYoupin      Market = "YOUPIN898"
	MarketC5Game      Market = "C5GAME"
	MarketCSFloat     Market = "CSFLOAT"
	MarketSkinport    Market = "SKINPORT"
	MarketDMarket     Market = "DMARKET"
	MarketWaxpeer     Market = "WAXPEER"
	MarketBitSkins    Market = "BITSKINS"
	MarketSkinBaron   Market = "SKINBARON"
	MarketShadowPay   Market = "SHADOWPAY"
	MarketGamerPay    Market = "GAMERPAY"
	MarketMarketCSGO  Market = "MARKETCSGO"
	MarketWhiteMarket Market = "WHITEMARKET"
	MarketLisSkins    Market = "LISSKINS"
	MarketHaloSkins   Market = "HALOSKINS"
	MarketCSMoney     Market = "CSMONEY"
	MarketTradeit     Market = "TRADEIT"
	MarketSkinsMonkey Market = "SKINSMONKEY"
	MarketCSDeals     Market = "CSDEALS"
)

var markets = []Market{
	MarketSteam,
	MarketBuff,
	MarketYoupin,
	MarketC5Game,
	MarketCSFloat,
	MarketSkinport,
	MarketDMarket,
	MarketWaxpeer,
	MarketBitSkins,
	MarketSkinBaron,
	MarketShadowPay,
	MarketGamerPay,
	MarketMarketCSGO,
	MarketWhiteMarket,
	MarketLisSkins,
	MarketHaloSkins,
	MarketCSMoney,
	MarketTradeit,
	MarketSkinsMonkey,
	MarketCSDeals,
}

// AllMarkets returns every supported market in declaration order.
func AllMarkets() []Market {
	out := make([]Market, len(markets))
	copy(out, markets)
	return out
}

// String returns the wire value.
func (m Market) String() string {
	return string(m)
}

// IsValid reports whether m is one of the supported markets.
func (m Market) IsValid() bool {
	for _, known := range markets {
		if m == known {
			return true
		}
	}
	return false
}

// UnmarshalText accepts only the exact wire values.
func (m *Market) UnmarshalText(text []byte) error {
	v := Market(text)
	if !v.IsValid() {
		return fmt.Errorf("unknown market %q", string(text))
	}
	*m = v
	return nil
}

// ParseMarket resolves user input such as "buff163" to a Market.
func ParseMarket(s string) (Market, error) {
	m := Market(strings.ToUpper(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("unknown market %q", s)
	}
	return m, nil
}

// Currency is an ISO 4217 code the API can convert prices into.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyCNY Currency = "CNY"
	CurrencyRUB Currency = "RUB"
	CurrencyPLN Currency = "PLN"
	CurrencyBRL Currency = "BRL"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
	CurrencyJPY Currency = "JPY"
	CurrencyKRW Currency = "KRW"
	CurrencyTRY Currency = "TRY"
	CurrencyUAH Currency = "UAH"
	CurrencyCHF Currency = "CHF"
	CurrencySEK Currency = "SEK"
	CurrencyNOK Currency = "NOK"
	CurrencyDKK Currency = "DKK"
	CurrencyCZK Currency = "CZK"
	CurrencyINR Currency = "INR"
	CurrencyKZT Currency = "KZT"
	CurrencyHKD Currency = "HKD"
	CurrencySGD Currency = "SGD"
)

// DefaultCurrency is used when a caller does not pick one.
const DefaultCurrency = CurrencyUSD

var currencies = []Currency{
	CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyCNY, CurrencyRUB, CurrencyPLN,
	CurrencyBRL, CurrencyCAD, CurrencyAUD, CurrencyJPY, CurrencyKRW, CurrencyTRY,
	CurrencyUAH, CurrencyCHF, CurrencySEK, CurrencyNOK, CurrencyDKK, CurrencyCZK,
	CurrencyINR, CurrencyKZT, CurrencyHKD, CurrencySGD,
}

func (c Currency) String() string {
	return string(c)
}

func (c Currency) IsValid() bool {
	for _, known := range currencies {
		if c == known {
			return true
		}
	}
	return false
}

func (c *Currency) UnmarshalText(text []byte) error {
	v := Currency(text)
	if !v.IsValid() {
		return fmt.Errorf("unknown currency %q", string(text))
	}
	*c = v
	return nil
}

// ParseCurrency resolves user input such as "eur". An empty string yields
// DefaultCurrency.
func ParseCurrency(s string) (Currency, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultCurrency, nil
	}
	c := Currency(strings.ToUpper(s))
	if !c.IsValid() {
		return "", fmt.Errorf("unknown currency %q", s)
	}
	return c, nil
}
