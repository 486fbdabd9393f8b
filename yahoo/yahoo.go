// Package yahoo fetches daily OHLC quotes from the Yahoo Finance chart API,
// the free source covering Tokyo Stock Exchange tickers (".T" suffix).
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/etnz/llmbattle"
	"github.com/etnz/llmbattle/date"
)

const chartBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// Fetcher pulls one-day bars from the chart endpoint.
type Fetcher struct {
	Client *http.Client
	Log    zerolog.Logger
}

// New returns a fetcher with a daily-expiring disk cache, so re-running a
// fetch for the same day does not hammer the API.
func New(log zerolog.Logger) *Fetcher {
	return &Fetcher{Client: newDailyCachingClient(), Log: log}
}

// yahooChart is the response proxy for the chart API. Quote arrays carry
// explicit nulls for untraded slots, hence the pointer elements.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					High  []*float64 `json:"high"`
					Low   []*float64 `json:"low"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Daily fetches the quote of every symbol for one trading day. A symbol that
// did not trade, or whose fetch failed, yields an all-null quote: the snapshot
// always covers every requested symbol, and a later re-fetch can fill the
// gaps.
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
	// Bound the window to the requested day in JST so the response carries at
	// most one bar.
	from := time.Date(on.Year(), on.Month(), on.Day(), 0, 0, 0, 0, llmbattle.Tokyo)
	to := from.AddDate(0, 0, 1)
	addr := fmt.Sprintf("%s/%s?interval=1d&period1=%d&period2=%d",
		chartBaseURL, url.PathEscape(symbol), from.Unix(), to.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return llmbattle.Quote{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return llmbattle.Quote{}, fmt.Errorf("chart fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return llmbattle.Quote{}, fmt.Errorf("chart read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return llmbattle.Quote{}, fmt.Errorf("chart status %d for %q", resp.StatusCode, symbol)
	}
	return parseChart(body, on)
}

// parseChart extracts the bar matching the requested JST date from a chart
// response. No matching bar is not an error: the quote is simply all null.
func parseChart(body []byte, on date.Date) (llmbattle.Quote, error) {
	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return llmbattle.Quote{}, fmt.Errorf("chart decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return llmbattle.Quote{}, fmt.Errorf("chart api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return llmbattle.Quote{}, nil
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	for i, ts := range result.Timestamp {
		// Timestamps are the session open; map them to a JST calendar date.
		if date.New(time.Unix(ts, 0).In(llmbattle.Tokyo).Date()) != on {
			continue
		}
		return llmbattle.Quote{
			Open:  dec(at(quote.Open, i)),
			High:  dec(at(quote.High, i)),
			Low:   dec(at(quote.Low, i)),
			Close: dec(at(quote.Close, i)),
		}, nil
	}
	return llmbattle.Quote{}, nil
}

func at(vals []*float64, i int) *float64 {
	if i < len(vals) {
		return vals[i]
	}
	return nil
}

func dec(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}
