// Package validation holds the input predicates the services apply before
// touching a repository. Services receive them as a Rules value so tests can
// substitute their own.
package validation

import (
	"math"
	"reflect"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/expensedesk/reimbursement-service/internal/domain"
)

// Rules is the set of predicates used by the service layer.
type Rules interface {
	IsValidID(id any) bool
	IsValidString(values ...string) bool
	IsValidObject(obj any, nullable ...string) bool
	HasContent(obj any) bool
	IsPropertyOf(name string, fields domain.FieldSet) bool
}

type rules struct {
	v *validator.Validate
}

// New returns the default Rules.
func New() Rules {
	return &rules{v: validator.New()}
}

// IsValidID accepts integral numbers greater than zero.
func (r *rules) IsValidID(id any) bool {
	switch n := id.(type) {
	case int:
		return n > 0
	case int8:
		return n > 0
	case int16:
		return n > 0
	case int32:
		return n > 0
	case int64:
		return n > 0
	case uint, uint8, uint16, uint32, uint64:
		return reflect.ValueOf(n).Uint() > 0
	case float32:
		return isPositiveInteger(float64(n))
	case float64:
		return isPositiveInteger(n)
	default:
		return false
	}
}

func isPositiveInteger(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	return f > 0 && f == math.Trunc(f)
}

// IsValidString fails on the first empty value.
func (r *rules) IsValidString(values ...string) bool {
	for _, s := range values {
		if s == "" {
			return false
		}
	}
	return true
}

// IsValidObject requires every exported field except those named in
// nullable to be non-zero. Names are Go field names. A nil pointer field
// counts as empty.
func (r *rules) IsValidObject(obj any, nullable ...string) bool {
	if !isStruct(obj) {
		return false
	}
	rv := reflect.Indirect(reflect.ValueOf(obj))
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() || slices.Contains(nullable, field.Name) {
			continue
		}
		if !r.isSet(rv.Field(i)) {
			return false
		}
	}
	return true
}

func (r *rules) isSet(fv reflect.Value) bool {
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return false
		}
		fv = fv.Elem()
	}
	if fv.Kind() == reflect.Struct {
		return !fv.IsZero()
	}
	return r.v.Var(fv.Interface(), "required") == nil
}

// HasContent is false for nil and for zero values such as the empty
// sentinel a mapper returns when no row matched.
func (r *rules) HasContent(obj any) bool {
	if obj == nil {
		return false
	}
	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		return rv.Len() > 0
	default:
		return !rv.IsZero()
	}
}

// IsPropertyOf reports whether name is an allow-listed lookup key.
func (r *rules) IsPropertyOf(name string, fields domain.FieldSet) bool {
	if name == "" || fields == nil {
		return false
	}
	_, ok := fields.Column(name)
	return ok
}

func isStruct(obj any) bool {
	if obj == nil {
		return false
	}
	rv := reflect.ValueOf(obj)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Struct
}
