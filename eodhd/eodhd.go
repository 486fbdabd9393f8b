// Package eodhd fetches daily OHLC quotes from the EODHD API, the paid
// alternative to the default Yahoo source. Free-tier keys are enough for
// end-of-day Tokyo quotes.
package eodhd

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/etnz/llmbattle"
	"github.com/etnz/llmbattle/date"
)

// Fetcher pulls end-of-day bars from the /api/eod endpoint.
type Fetcher struct {
	APIKey string
	Log    zerolog.Logger
}

// New returns a fetcher for the given API key.
func New(apiKey string, log zerolog.Logger) *Fetcher {
	return &Fetcher{APIKey: apiKey, Log: log}
}

// Ticker maps a contest symbol to EODHD's ticker format: EODHD uses its own
// exchange code "TSE" for Tokyo where the rest of the world says ".T".
func Ticker(symbol string) string {
	if t, ok := strings.CutSuffix(symbol, ".T"); ok {
		return t + ".TSE"
	}
	return symbol
}

// Daily fetches the quote of every symbol for one trading day. A symbol that
// did not trade, or whose fetch failed, yields an all-null quote so a later
// re-fetch can fill the gap.
func (f *Fetcher) Daily(ctx context.Context, symbols []string, on date.Date) (llmbattle.SnapshotMap, error) {
	snap := make(llmbattle.SnapshotMap, len(symbols))
	for _, sym := range symbols {
		q, err := f.daily(ctx, sym, on)
		if err != nil {
			f.Log.Warn().Err(err).Str("symbol", sym).Stringer("date", on).Msg("quote fetch failed")
			q = llmbattle.Quote{}
		}
		snap[sym] = q
	}
	return snap, nil
}

func (f *Fetcher) daily(ctx context.Context, symbol string, on date.Date) (llmbattle.Quote, error) {
	// https://eodhd.com/api/eod/NVD.F?api_token=demo&fmt=json
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },
	// bounds are included in the response, so from=to yields at most one bar.
	addr := fmt.Sprintf("https://eodhd.com/api/eod/%s?fmt=json&api_token=%s&from=%s&to=%s",
		Ticker(symbol), f.APIKey, on, on)

	type info struct {
		Date  date.Date        `json:"date"`
		Open  *decimal.Decimal `json:"open"`
		High  *decimal.Decimal `json:"high"`
		Low   *decimal.Decimal `json:"low"`
		Close *decimal.Decimal `json:"close"`
	}

	content := make([]info, 0)
	if err := jwget(ctx, newDailyCachingClient(), addr, &content); err != nil {
		return llmbattle.Quote{}, err
	}
	for _, bar := range content {
		if bar.Date != on {
			continue
		}
		return llmbattle.Quote{Open: bar.Open, High: bar.High, Low: bar.Low, Close: bar.Close}, nil
	}
	return llmbattle.Quote{}, nil
}
