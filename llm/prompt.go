package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// BuildPrompt is the one prompt every backend receives: pick exactly
// req.MaxPicks Tokyo Stock Exchange tickers for the week, answer in JSON only,
// rationale in Japanese.
func BuildPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a Japanese equity picker. Choose exactly %d Tokyo Stock Exchange tickers for the week starting %s.\n", req.MaxPicks, req.WeekStart)
	b.WriteString("You may pick any listed ticker you judge attractive.")
	if len(req.Universe) > 0 {
		fmt.Fprintf(&b, " Focus on these symbols if suitable: %s.", strings.Join(req.Universe, ", "))
	}
	b.WriteString("\n")
	b.WriteString("Tickers must include the exchange suffix \".T\" (example: 7203.T). Do not return raw numbers.\n")
	b.WriteString("Respond with JSON only, following schema:\n")
	b.WriteString(`{"picks":[{"symbol":"<ticker>","reason":"<short justification>","method":"<analysis method used>"}, ...]}` + "\n")
	b.WriteString(`"method" should be a short label like "fundamental", "technical", "theme", "news", or similar.` + "\n")
	b.WriteString(`Write "reason" and "method" in Japanese.` + "\n")
	b.WriteString("No extra text or commentary.")
	return b.String()
}

// NormalizeSymbol cleans up a ticker a model returned. Digit-only answers are
// common for JP tickers and get the exchange suffix appended.
func NormalizeSymbol(sym string) string {
	sym = strings.TrimSpace(sym)
	if sym != "" && strings.Trim(sym, "0123456789") == "" {
		return sym + ".T"
	}
	return sym
}

// extractPayload carves a JSON object out of a non-strict answer: markdown
// code fences are stripped, then surrounding prose removed by keeping the
// first '{' through the last '}'.
func extractPayload(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}
	if strings.HasPrefix(s, "```") {
		lines := strings.Split(s, "\n")
		if strings.HasPrefix(strings.TrimSpace(lines[0]), "```") {
			lines = lines[1:]
		}
		if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
			lines = lines[:len(lines)-1]
		}
		s = strings.TrimSpace(strings.Join(lines, "\n"))
	}
	if !strings.HasPrefix(s, "{") {
		start := strings.Index(s, "{")
		end := strings.LastIndex(s, "}")
		if start >= 0 && start < end {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}

// ParseResponse parses a backend's answer of shape
// {"picks":[{"symbol":"7203.T","reason":"...","method":"..."}, ...]}.
// Strict JSON is tried first, then fence stripping and object carving.
// An answer with fewer than maxPicks symbols is an error: a short answer
// cannot be averaged against the other entrants.
func ParseResponse(text string, maxPicks int) (Response, error) {
	var jobj any
	if err := json.Unmarshal([]byte(text), &jobj); err != nil {
		extracted := extractPayload(text)
		if extracted == "" {
			return Response{}, fmt.Errorf("empty answer")
		}
		if err := json.Unmarshal([]byte(extracted), &jobj); err != nil {
			return Response{}, fmt.Errorf("answer is not json: %w", err)
		}
	}

	jval, err := jsonpath.Get("$.picks", jobj)
	if err != nil {
		return Response{}, fmt.Errorf("answer has no picks list: %w", err)
	}
	jpicks, ok := jval.([]any)
	if !ok {
		return Response{}, fmt.Errorf("picks is not a list")
	}

	var resp Response
	for _, jp := range jpicks {
		entry, ok := jp.(map[string]any)
		if !ok {
			continue
		}
		sym, _ := entry["symbol"].(string)
		if sym == "" {
			continue
		}
		reason, _ := entry["reason"].(string)
		method, _ := entry["method"].(string)
		resp.Symbols = append(resp.Symbols, NormalizeSymbol(sym))
		resp.Reasons = append(resp.Reasons, reason)
		resp.Methods = append(resp.Methods, method)
		if len(resp.Symbols) >= maxPicks {
			break
		}
	}
	if len(resp.Symbols) < maxPicks {
		return Response{}, fmt.Errorf("answer has %d symbols, want %d", len(resp.Symbols), maxPicks)
	}
	return resp, nil
}
