package query

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"bootcamp-backend/internal/shared/apperror"
)

const (
	baseAlias   = "t"
	expandAlias = "x"
)

// Expansion joins a parent record and returns it as a nested JSON object.
// It is fixed per route and never built from request input.
type Expansion struct {
	As          string
	Target      *Schema
	LocalColumn string
	Select      []string
}

// Options carry route-level additions to a request Spec
type Options struct {
	// Scope filters are ANDed before the request filters
	Scope []Predicate
	// Expand is included when nothing is selected or its name is selected
	Expand *Expansion
	// AlwaysSelect fields are projected even when not requested
	AlwaysSelect []string
}

// Query is a compiled, parameterized read
type Query struct {
	table      string
	projection []string
	fields     []string
	join       string
	where      []string
	args       []any
	orderBy    []string
	sort       []SortKey
	limit      int
	offset     int
}

// Fields lists the API names projected by SelectSQL
func (q *Query) Fields() []string { return q.fields }

// Sort returns the validated sort keys
func (q *Query) Sort() []SortKey { return q.sort }

func (q *Query) Limit() int  { return q.limit }
func (q *Query) Offset() int { return q.offset }

// Args returns the filter arguments shared by both statements
func (q *Query) Args() []any { return q.args }

func (q *Query) whereClause() string {
	if len(q.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.where, " AND ")
}

func (q *Query) from() string {
	return pq.QuoteIdentifier(q.table) + " " + baseAlias
}

// CountSQL counts every match, ignoring pagination
func (q *Query) CountSQL() (string, []any) {
	return "SELECT COUNT(*) FROM " + q.from() + q.whereClause(), q.args
}

// SelectSQL fetches one page
func (q *Query) SelectSQL() (string, []any) {
	args := make([]any, 0, len(q.args)+2)
	args = append(args, q.args...)
	args = append(args, q.limit, q.offset)

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(q.projection, ", "))
	b.WriteString(" FROM ")
	b.WriteString(q.from())
	b.WriteString(q.join)
	b.WriteString(q.whereClause())
	b.WriteString(" ORDER BY ")
	b.WriteString(strings.Join(q.orderBy, ", "))
	fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(q.args)+1, len(q.args)+2)

	return b.String(), args
}

// Compile checks spec against schema and builds the SQL.
// Unknown fields and bad values become validation errors.
func Compile(schema *Schema, spec Spec, opts Options) (*Query, error) {
	spec.Page, spec.Limit = clampPaging(spec.Page, spec.Limit)
	if len(spec.Sort) == 0 {
		spec.Sort = parseSort(DefaultSort)
	}

	q := &Query{
		table:  schema.Table,
		limit:  spec.Limit,
		offset: spec.Skip(),
	}

	// Filters
	for _, p := range append(append([]Predicate{}, opts.Scope...), spec.Filters...) {
		f, err := schema.checkPredicate(p)
		if err != nil {
			return nil, err
		}
		q.where = append(q.where, q.predicateSQL(f, p))
	}

	// Projection
	if err := q.project(schema, spec, opts); err != nil {
		return nil, err
	}

	// Ordering
	hasID := false
	for _, k := range spec.Sort {
		f, err := schema.lookup(k.Field, "sort")
		if err != nil {
			return nil, err
		}
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		q.orderBy = append(q.orderBy, column(baseAlias, f.Column)+" "+dir)
		q.sort = append(q.sort, k)
		hasID = hasID || f.Name == "id"
	}
	if !hasID {
		q.orderBy = append(q.orderBy, column(baseAlias, "id")+" ASC")
	}

	return q, nil
}

func (q *Query) bind(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *Query) predicateSQL(f Field, p Predicate) string {
	col := column(baseAlias, f.Column)

	if f.Type == TextArray {
		if p.Op == OpIn {
			return col + " && " + q.bind(p.Values) + "::text[]"
		}
		return q.bind(p.Values[0]) + "::text = ANY(" + col + ")"
	}

	cast := f.Type.cast()
	if p.Op == OpIn {
		return col + " = ANY(" + q.bind(p.Values) + "::text[]::" + cast + "[])"
	}
	return col + " " + sqlOps[p.Op] + " " + q.bind(p.Values[0]) + "::text::" + cast
}

func (q *Query) project(schema *Schema, spec Spec, opts Options) error {
	expand := opts.Expand
	if expand != nil && !spec.Selects(expand.As) {
		expand = nil
	}

	var names []string
	seen := make(map[string]struct{})
	add := func(name string) {
		if expand != nil && name == expand.As {
			return
		}
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	add("id")
	if len(spec.Select) == 0 {
		for _, f := range schema.Fields() {
			add(f.Name)
		}
	} else {
		for _, name := range spec.Select {
			add(name)
		}
		for _, name := range opts.AlwaysSelect {
			add(name)
		}
	}

	for _, name := range names {
		f, err := schema.lookup(name, "select")
		if err != nil {
			return err
		}
		q.projection = append(q.projection, projectSQL(baseAlias, f)+" AS "+pq.QuoteIdentifier(f.Name))
		q.fields = append(q.fields, f.Name)
	}

	if e := expand; e != nil {
		obj, err := e.objectSQL()
		if err != nil {
			return err
		}
		q.projection = append(q.projection, obj+" AS "+pq.QuoteIdentifier(e.As))
		q.fields = append(q.fields, e.As)
		q.join = fmt.Sprintf(" LEFT JOIN %s %s ON %s = %s",
			pq.QuoteIdentifier(e.Target.Table), expandAlias,
			column(expandAlias, "id"), column(baseAlias, e.LocalColumn))
	}

	return nil
}

func (e *Expansion) objectSQL() (string, error) {
	pairs := make([]string, 0, len(e.Select))
	for _, name := range e.Select {
		f, ok := e.Target.Field(name)
		if !ok {
			return "", apperror.Internal(fmt.Errorf("expansion %s: unknown field %s", e.As, name))
		}
		pairs = append(pairs, pq.QuoteLiteral(f.Name)+", "+projectSQL(expandAlias, f))
	}
	return fmt.Sprintf("CASE WHEN %s IS NULL THEN NULL ELSE json_build_object(%s) END",
		column(expandAlias, "id"), strings.Join(pairs, ", ")), nil
}

func column(alias, name string) string {
	return alias + "." + pq.QuoteIdentifier(name)
}

func projectSQL(alias string, f Field) string {
	col := column(alias, f.Column)
	switch f.Type {
	case Number:
		return col + "::float8"
	case UUID:
		return col + "::text"
	}
	return col
}
