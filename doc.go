// Package llmbattle runs a recurring stock-picking contest between LLM
// backends on the Tokyo Stock Exchange.
//
// Each week every configured model picks a small set of tickers. Daily open,
// high, low and close prices are fetched for those tickers, and the weekly
// return of each pick is measured from the first available trading-day open
// of the week (the buy price) to the latest close. Per-model average returns
// are folded into daily results, week-final summaries, and monthly reports.
//
// The core functionalities include:
//   - Trading Calendar: trading-day arithmetic for the Tokyo market, combining
//     weekends, Japanese national holidays and a manual closed-dates override.
//   - Return Aggregator: buy-price resolution across partially-missing daily
//     snapshots, per-symbol returns, and per-model averages that distinguish
//     "no data" from "zero return".
//   - Report Compiler: idempotent merging of freshly computed results into
//     previously persisted daily, weekly and monthly records.
//
// All persisted records are plain JSON files with explicit nulls, designed to
// live in a git repository. This package serves as the foundational logic for
// the `ltb` command-line tool; LLM calls, price fetching and markdown
// rendering live in their own subpackages.
package llmbattle
