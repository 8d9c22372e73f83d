// Package query translates list-endpoint query strings into a typed filter,
// projection, sort and pagination description that a storage layer can turn
// into a database query. Operators and field names are validated against
// allow-lists so raw client input never reaches the query engine.
package query

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Op is a comparison operator recognized in query-string keys.
type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

// Defaults applied when page/limit are absent or malformed.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// DefaultSortField orders results by creation time descending when the client
// does not ask for a sort.
const DefaultSortField = "createdAt"

// ErrBadQuery wraps all parse failures so callers can map them to a 400.
type ErrBadQuery struct {
	Key    string
	Reason string
}

func (e *ErrBadQuery) Error() string {
	return fmt.Sprintf("invalid query parameter %q: %s", e.Key, e.Reason)
}

// Condition is one typed filter clause: field <op> value.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// SortField is one sort clause; Desc when the client prefixed the field with '-'.
type SortField struct {
	Field string
	Desc  bool
}

// Options is the parsed form of a list request.
type Options struct {
	Conditions []Condition
	Select     []string
	Sort       []SortField
	Page       int
	Limit      int
}

// PageRef identifies one page in pagination metadata.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries next/prev descriptors; each is present only when that
// page actually exists.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

var reservedKeys = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

var allowedOps = map[string]Op{
	"gt":  OpGt,
	"gte": OpGte,
	"lt":  OpLt,
	"lte": OpLte,
	"in":  OpIn,
}

var fieldRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.]*$`)

// Parse converts raw query-string values into Options. Reserved keys are
// stripped from filtering; every other key is either `field` (equality) or
// `field[op]` with op in the allow-list. Non-numeric page/limit fall back to
// defaults; an empty value set matches all records.
func Parse(values url.Values) (Options, error) {
	opts := Options{Page: DefaultPage, Limit: DefaultLimit}

	for key, vals := range values {
		if reservedKeys[key] {
			continue
		}
		if len(vals) == 0 {
			continue
		}
		cond, err := parseCondition(key, vals[0])
		if err != nil {
			return Options{}, err
		}
		opts.Conditions = append(opts.Conditions, cond)
	}

	if sel := values.Get("select"); sel != "" {
		for _, f := range strings.Split(sel, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			if !fieldRe.MatchString(f) {
				return Options{}, &ErrBadQuery{Key: "select", Reason: "malformed field name"}
			}
			opts.Select = append(opts.Select, f)
		}
	}

	if sort := values.Get("sort"); sort != "" {
		for _, f := range strings.Split(sort, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			sf := SortField{Field: f}
			if strings.HasPrefix(f, "-") {
				sf = SortField{Field: f[1:], Desc: true}
			}
			if !fieldRe.MatchString(sf.Field) {
				return Options{}, &ErrBadQuery{Key: "sort", Reason: "malformed field name"}
			}
			opts.Sort = append(opts.Sort, sf)
		}
	}
	if len(opts.Sort) == 0 {
		opts.Sort = []SortField{{Field: DefaultSortField, Desc: true}}
	}

	if p, err := strconv.Atoi(values.Get("page")); err == nil && p > 0 {
		opts.Page = p
	}
	if l, err := strconv.Atoi(values.Get("limit")); err == nil && l > 0 {
		opts.Limit = l
	}

	return opts, nil
}

func parseCondition(key, raw string) (Condition, error) {
	field := key
	op := OpEq
	if i := strings.IndexByte(key, '['); i >= 0 {
		if !strings.HasSuffix(key, "]") {
			return Condition{}, &ErrBadQuery{Key: key, Reason: "unterminated operator"}
		}
		name := key[i+1 : len(key)-1]
		allowed, ok := allowedOps[name]
		if !ok {
			return Condition{}, &ErrBadQuery{Key: key, Reason: fmt.Sprintf("unsupported operator %q", name)}
		}
		field = key[:i]
		op = allowed
	}
	if !fieldRe.MatchString(field) {
		return Condition{}, &ErrBadQuery{Key: key, Reason: "malformed field name"}
	}

	if op == OpIn {
		parts := strings.Split(raw, ",")
		list := make([]any, 0, len(parts))
		for _, p := range parts {
			list = append(list, eqForms(strings.TrimSpace(p))...)
		}
		return Condition{Field: field, Op: op, Value: list}, nil
	}
	if op == OpEq {
		forms := eqForms(raw)
		if len(forms) > 1 {
			// Without a schema the stored type is unknown, so an equality
			// match must accept both the typed and the literal form:
			// zipcode=02118 has to hit the stored string "02118", not 2118.
			return Condition{Field: field, Op: OpIn, Value: forms}, nil
		}
		return Condition{Field: field, Op: op, Value: forms[0]}, nil
	}
	return Condition{Field: field, Op: op, Value: coerce(raw)}, nil
}

// coerce turns a raw string into the most specific scalar the query engine can
// compare natively. Used for range operators, where the value must be numeric
// (or at least ordered) to mean anything.
func coerce(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

// eqForms returns every representation an equality value may be stored under:
// the coerced scalar plus the raw literal when the two differ.
func eqForms(raw string) []any {
	typed := coerce(raw)
	if _, isString := typed.(string); isString {
		return []any{typed}
	}
	return []any{typed, raw}
}

// Skip returns the record offset implied by page and limit.
func (o Options) Skip() int64 {
	return int64(o.Page-1) * int64(o.Limit)
}

// Paginate builds the pagination metadata for a page of the given total.
// next exists iff skip+limit < total; prev exists iff page > 1.
func Paginate(page, limit int, total int64) Pagination {
	var p Pagination
	skip := int64(page-1) * int64(limit)
	if skip+int64(limit) < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return p
}
