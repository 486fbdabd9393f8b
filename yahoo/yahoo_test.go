package yahoo

import (
	"testing"

	"github.com/etnz/llmbattle/date"
)

// chartFixture is a trimmed chart response for 7203.T on 2024-02-05. The
// timestamp is the session open, 09:00 JST.
const chartFixture = `{
  "chart": {
    "result": [
      {
        "timestamp": [1707091200],
        "indicators": {
          "quote": [
            {
              "open": [2890.0],
              "high": [2920.5],
              "low": [2875.0],
              "close": [2910.0]
            }
          ]
        }
      }
    ],
    "error": null
  }
}`

func TestParseChart(t *testing.T) {
	q, err := parseChart([]byte(chartFixture), date.MustParse("2024-02-05"))
	if err != nil {
		t.Fatal(err)
	}
	if q.Open == nil || !q.Open.Equal(*dec(f(2890))) {
		t.Errorf("open = %v, want 2890", q.Open)
	}
	if q.Close == nil || !q.Close.Equal(*dec(f(2910))) {
		t.Errorf("close = %v, want 2910", q.Close)
	}
}

func TestParseChartOtherDay(t *testing.T) {
	q, err := parseChart([]byte(chartFixture), date.MustParse("2024-02-06"))
	if err != nil {
		t.Fatal(err)
	}
	if q.Open != nil || q.Close != nil {
		t.Errorf("quote for a day with no bar = %+v, want all null", q)
	}
}

func TestParseChartNullSlots(t *testing.T) {
	fixture := `{
  "chart": {
    "result": [
      {
        "timestamp": [1707091200],
        "indicators": {
          "quote": [
            {
              "open": [null],
              "high": [null],
              "low": [null],
              "close": [2910.0]
            }
          ]
        }
      }
    ],
    "error": null
  }
}`
	q, err := parseChart([]byte(fixture), date.MustParse("2024-02-05"))
	if err != nil {
		t.Fatal(err)
	}
	if q.Open != nil {
		t.Errorf("open = %v, want null preserved", q.Open)
	}
	if q.Close == nil {
		t.Error("close is null, want 2910")
	}
}

func TestParseChartAPIError(t *testing.T) {
	fixture := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`
	if _, err := parseChart([]byte(fixture), date.MustParse("2024-02-05")); err == nil {
		t.Fatal("parseChart accepted an api error payload")
	}
}

func TestParseChartEmptyResult(t *testing.T) {
	fixture := `{"chart":{"result":[],"error":null}}`
	q, err := parseChart([]byte(fixture), date.MustParse("2024-02-05"))
	if err != nil {
		t.Fatal(err)
	}
	if q.Open != nil || q.Close != nil {
		t.Errorf("quote = %+v, want all null", q)
	}
}

func f(v float64) *float64 { return &v }
