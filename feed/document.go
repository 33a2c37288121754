package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PaesslerAG/gval"
	"github.com/PaesslerAG/jsonpath"

	"github.com/capnow/portfolio"
)

/*
Fields locate the counters in a progress document, the default matches

	{
	    "current": 42000,
	    "target": 100000
	}

but a feed can expose them anywhere, e.g. "$.campaign.committed".
*/
type Fields struct {
	Current string // JSONPath of the committed amount
	Target  string // JSONPath of the campaign goal
}

// DefaultFields locates "current" and "target" at the document root.
func DefaultFields() Fields { return Fields{Current: "$.current", Target: "$.target"} }

// Validate checks both fields are well formed JSONPath expressions.
func (fs Fields) Validate() error {
	_, err := fs.compile()
	return err
}

// query holds the compiled Fields.
type query struct {
	fields          Fields
	current, target gval.Evaluable
}

func (fs Fields) compile() (*query, error) {
	current, err := jsonpath.New(fs.Current)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q for current: %w", fs.Current, err)
	}
	target, err := jsonpath.New(fs.Target)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q for target: %w", fs.Target, err)
	}
	return &query{fields: fs, current: current, target: target}, nil
}

// Parse extracts a ProgressState from a JSON progress document.
//
// A missing, null, zero or empty counter takes its default: 0 for current and
// portfolio.DefaultTarget for target. Numeric strings are accepted. Any other
// value, or a malformed path in fields, is an error.
func Parse(data []byte, fields Fields) (portfolio.ProgressState, error) {
	q, err := fields.compile()
	if err != nil {
		return portfolio.ProgressState{}, err
	}
	return q.parse(data)
}

func (q *query) parse(data []byte) (portfolio.ProgressState, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return portfolio.ProgressState{}, fmt.Errorf("format error in progress document: %w", err)
	}

	current, err := lookup(doc, q.fields.Current, q.current)
	if err != nil {
		return portfolio.ProgressState{}, err
	}
	target, err := lookup(doc, q.fields.Target, q.target)
	if err != nil {
		return portfolio.ProgressState{}, err
	}

	p := portfolio.ProgressState{Current: current, Target: target}
	if p.Target == 0 {
		p.Target = portfolio.DefaultTarget
	}
	if err := p.Validate(); err != nil {
		return portfolio.ProgressState{}, err
	}
	return p, nil
}

// lookup returns the number selected by eval in doc, 0 if there is none.
func lookup(doc any, path string, eval gval.Evaluable) (float64, error) {
	jval, err := eval(context.Background(), doc)
	if err != nil {
		// the path is valid, jsonpath reports unknown keys as errors.
		return 0, nil
	}
	// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return 0, nil
		}
		jval = jlist[0]
	}
	return number(path, jval)
}

// number converts a decoded JSON value to a float.
func number(path string, jval any) (float64, error) {
	switch v := jval.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case json.Number:
		return v.Float64()
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0, &portfolio.InvalidInputError{Field: path, Value: math.NaN(), Reason: fmt.Sprintf("%q is not a number", v)}
		}
		return f, nil
	default:
		return 0, &portfolio.InvalidInputError{Field: path, Value: math.NaN(), Reason: fmt.Sprintf("%T is not a number", jval)}
	}
}
