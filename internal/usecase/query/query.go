// Package query selects fields of a stored probe run with JSONPath, using the
// run's JSON field names (e.g. $.routes[1].latency.p95_ms).
package query

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/myspotontheweb/presentation-kubernetes/internal/domain"
)

func Field(run domain.ProbeRun, expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, &domain.OpError{
			Op:   "query.field",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("empty jsonpath expression"),
		}
	}

	doc, err := toDocument(run)
	if err != nil {
		return nil, &domain.OpError{Op: "query.field", Kind: domain.KindExecution, Err: err}
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "query.field",
			Kind: domain.KindNotFound,
			Err:  fmt.Errorf("jsonpath %q: %w", expr, err),
		}
	}
	return val, nil
}

// Format renders a selected value: strings and numbers bare, everything else as JSON.
func Format(val any) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "null", nil
	default:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func toDocument(run domain.ProbeRun) (any, error) {
	b, err := json.Marshal(run)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
