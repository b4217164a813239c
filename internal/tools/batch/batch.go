package batch

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the outcome for one id of a batch call.
type Result struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchResult aggregates the per-id results of a batch call.
type BatchResult struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Results    []Result `json:"results"`
}

// ParseStringOrArray parses a tool argument that may be a single id, a
// JSON array of ids, or a JSON-encoded array string such as `["a","b"]`.
// Some MCP clients send arrays in the latter form. Duplicate ids are
// collapsed, keeping first occurrence order.
func ParseStringOrArray(param any, paramName string) ([]string, error) {
	if param == nil {
		return nil, fmt.Errorf("%s is required", paramName)
	}

	var result []string

	switch v := param.(type) {
	case string:
		if v == "" {
			return nil, fmt.Errorf("%s cannot be empty", paramName)
		}
		if ids, ok := parseJSONArray(v); ok {
			if len(ids) == 0 {
				return nil, fmt.Errorf("%s cannot be empty", paramName)
			}
			return checkItems(lo.ToAnySlice(ids), paramName)
		}
		result = []string{v}
	case []string:
		items, err := checkItems(lo.ToAnySlice(v), paramName)
		if err != nil {
			return nil, err
		}
		result = items
	case []any:
		items, err := checkItems(v, paramName)
		if err != nil {
			return nil, err
		}
		result = items
	default:
		return nil, fmt.Errorf("%s must be a string or array of strings", paramName)
	}

	return lo.Uniq(result), nil
}

func parseJSONArray(s string) ([]string, bool) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return nil, false
	}
	var ids []string
	if err := json.Unmarshal([]byte(trimmed), &ids); err != nil {
		return nil, false
	}
	return ids, true
}

func checkItems(items []any, paramName string) ([]string, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%s cannot be empty", paramName)
	}
	result := make([]string, 0, len(items))
	for i, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be a string", paramName, i)
		}
		if str == "" {
			return nil, fmt.Errorf("%s[%d] cannot be empty", paramName, i)
		}
		result = append(result, str)
	}
	return lo.Uniq(result), nil
}

// Summarize counts the results of a batch.
func Summarize(results []Result) BatchResult {
	br := BatchResult{
		Total:   len(results),
		Results: results,
	}
	for _, r := range results {
		if r.Status == StatusSuccess {
			br.Successful++
		} else {
			br.Failed++
		}
	}
	return br
}

// ProcessBatch runs fn for each id and collects one result per id, in
// order. A failing id does not stop the batch.
func ProcessBatch(ids []string, fn func(id string) (string, error)) []Result {
	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		res, err := fn(id)
		if err != nil {
			results = append(results, NewErrorResult(id, err))
			continue
		}
		results = append(results, NewSuccessResult(id, res))
	}
	return results
}

// NewSuccessResult creates a success result
func NewSuccessResult(id, message string) Result {
	return Result{
		ID:     id,
		Status: StatusSuccess,
		Result: message,
	}
}

// NewErrorResult creates an error result
func NewErrorResult(id string, err error) Result {
	return Result{
		ID:     id,
		Status: StatusError,
		Error:  err.Error(),
	}
}
