package query

import (
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 25
	DefaultSort  = "-createdAt"

	// MaxLimit and MaxPage keep (page-1)*limit far from int overflow
	MaxLimit = 100
	MaxPage  = 1_000_000
)

// Reserved parameters never become filters
const (
	ParamSelect = "select"
	ParamSort   = "sort"
	ParamPage   = "page"
	ParamLimit  = "limit"
)

// Op is a comparison operator from the allow-list
type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

var sqlOps = map[Op]string{
	OpEq:  "=",
	OpGt:  ">",
	OpGte: ">=",
	OpLt:  "<",
	OpLte: "<=",
}

func parseOp(token string) (Op, bool) {
	switch op := Op(strings.ToLower(token)); op {
	case OpGt, OpGte, OpLt, OpLte, OpIn:
		return op, true
	}
	return OpEq, false
}

// Predicate is one field/operator/value filter. Values holds a single
// element for every operator except OpIn.
type Predicate struct {
	Field  string
	Op     Op
	Values []string
}

// Eq builds an equality predicate, used for route-fixed scopes
func Eq(field, value string) Predicate {
	return Predicate{Field: field, Op: OpEq, Values: []string{value}}
}

// SortKey orders by one field
type SortKey struct {
	Field string
	Desc  bool
}

// Spec is the parsed, not yet schema-checked, form of a list request
type Spec struct {
	Filters []Predicate
	Sort    []SortKey
	Select  []string
	Page    int
	Limit   int
}

// Skip is the number of matches before the current page
func (s Spec) Skip() int {
	page, limit := clampPaging(s.Page, s.Limit)
	return (page - 1) * limit
}

// Selects reports whether name was explicitly selected, or nothing was
func (s Spec) Selects(name string) bool {
	if len(s.Select) == 0 {
		return true
	}
	for _, f := range s.Select {
		if f == name {
			return true
		}
	}
	return false
}

// ParseSpec turns raw query parameters into a Spec.
//
// Filter keys accept `field=v`, `field[op]=v` and `field__op=v`. Unknown
// operator tokens fall back to equality on the base field. When a key is
// repeated only the last value is used.
func ParseSpec(params url.Values) Spec {
	spec := Spec{
		Select: splitList(last(params, ParamSelect)),
		Sort:   parseSort(last(params, ParamSort)),
		Page:   boundedInt(last(params, ParamPage), DefaultPage, MaxPage),
		Limit:  boundedInt(last(params, ParamLimit), DefaultLimit, MaxLimit),
	}

	for key := range params {
		switch key {
		case ParamSelect, ParamSort, ParamPage, ParamLimit:
			continue
		}

		field, op := parseFilterKey(key)
		if field == "" {
			continue
		}

		value := last(params, key)
		values := []string{value}
		if op == OpIn {
			values = splitList(value)
		}
		spec.Filters = append(spec.Filters, Predicate{Field: field, Op: op, Values: values})
	}

	// map iteration order is random
	sort.Slice(spec.Filters, func(i, j int) bool {
		if spec.Filters[i].Field != spec.Filters[j].Field {
			return spec.Filters[i].Field < spec.Filters[j].Field
		}
		return spec.Filters[i].Op < spec.Filters[j].Op
	})

	return spec
}

func parseFilterKey(key string) (string, Op) {
	if i := strings.IndexByte(key, '['); i > 0 && strings.HasSuffix(key, "]") {
		op, _ := parseOp(key[i+1 : len(key)-1])
		return key[:i], op
	}

	if i := strings.LastIndex(key, "__"); i > 0 {
		op, _ := parseOp(key[i+2:])
		return key[:i], op
	}

	return key, OpEq
}

func parseSort(raw string) []SortKey {
	fields := splitList(raw)
	if len(fields) == 0 {
		fields = []string{DefaultSort}
	}

	keys := make([]SortKey, 0, len(fields))
	for _, f := range fields {
		desc := strings.HasPrefix(f, "-")
		name := strings.TrimLeft(f, "-+")
		if name == "" {
			continue
		}
		keys = append(keys, SortKey{Field: name, Desc: desc})
	}
	if len(keys) == 0 {
		return parseSort(DefaultSort)
	}
	return keys
}

func last(params url.Values, key string) string {
	vals := params[key]
	if len(vals) == 0 {
		return ""
	}
	return vals[len(vals)-1]
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}

// boundedInt parses a positive integer, saturating at max. Values too large
// for an int also saturate.
func boundedInt(raw string, def, max int) int {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
			return max
		}
		return def
	}
	if n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

func clampPaging(page, limit int) (int, int) {
	switch {
	case page < 1:
		page = DefaultPage
	case page > MaxPage:
		page = MaxPage
	}
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return page, limit
}
