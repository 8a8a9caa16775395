package query

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bootcamp-backend/internal/shared/apperror"
)

// FieldType decides how filter values are validated and cast
type FieldType int

const (
	Text FieldType = iota
	Number
	Bool
	Time
	UUID
	TextArray
)

func (t FieldType) String() string {
	switch t {
	case Number:
		return "number"
	case Bool:
		return "boolean"
	case Time:
		return "timestamp"
	case UUID:
		return "uuid"
	case TextArray:
		return "text[]"
	default:
		return "text"
	}
}

// cast is the Postgres type a bound text value is converted to
func (t FieldType) cast() string {
	switch t {
	case Number:
		return "numeric"
	case Bool:
		return "boolean"
	case Time:
		return "timestamptz"
	case UUID:
		return "uuid"
	default:
		return "text"
	}
}

// supports reports whether op is meaningful for this type
func (t FieldType) supports(op Op) bool {
	switch t {
	case Bool, UUID, TextArray:
		return op == OpEq || op == OpIn
	}
	return true
}

// validate checks a raw filter value against the type
func (t FieldType) validate(raw string) error {
	var err error
	switch t {
	case Number:
		_, err = decimal.NewFromString(raw)
	case Bool:
		_, err = strconv.ParseBool(raw)
	case Time:
		if _, err = time.Parse(time.RFC3339, raw); err != nil {
			_, err = time.Parse("2006-01-02", raw)
		}
	case UUID:
		_, err = uuid.Parse(raw)
	}
	return err
}

// Field maps an API name to a column
type Field struct {
	Name   string
	Column string
	Type   FieldType
}

// Schema is the allow-list of queryable fields for one table.
// A field named "id" is required.
type Schema struct {
	Table  string
	fields []Field
	byName map[string]Field
}

func NewSchema(table string, fields ...Field) *Schema {
	s := &Schema{
		Table:  table,
		fields: fields,
		byName: make(map[string]Field, len(fields)),
	}
	for _, f := range fields {
		s.byName[f.Name] = f
	}
	return s
}

// Field looks up an API field
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Fields returns every field in declaration order
func (s *Schema) Fields() []Field {
	return s.fields
}

func (s *Schema) lookup(name, usage string) (Field, error) {
	f, ok := s.byName[name]
	if !ok {
		return Field{}, apperror.Validation("Invalid %s field '%s'", usage, name)
	}
	return f, nil
}

func (s *Schema) checkPredicate(p Predicate) (Field, error) {
	f, err := s.lookup(p.Field, "filter")
	if err != nil {
		return Field{}, err
	}
	if !f.Type.supports(p.Op) {
		return Field{}, apperror.Validation("Operator '%s' is not supported for field '%s'", p.Op, p.Field)
	}
	for _, v := range p.Values {
		if err := f.Type.validate(v); err != nil {
			return Field{}, apperror.Validation("Invalid value '%s' for %s field '%s'", v, f.Type, p.Field)
		}
	}
	if p.Op != OpIn && len(p.Values) != 1 {
		return Field{}, apperror.Validation("Field '%s' expects a single value", p.Field)
	}
	return f, nil
}
