package datablock

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/matzehuels/s7db/pkg/errors"
)

// ArrayOption configures an [Array] during construction.
type ArrayOption func(*arrayConfig)

type arrayConfig struct {
	values    any
	hasValues bool
	length    int
	offset    int
}

// WithValues sets the element values. Any slice or nested slice of bool or
// integer values is accepted ([]int, [][]int64, []any{[]any{...}}, ...).
// A nil or empty value is treated as "no values".
func WithValues(values any) ArrayOption {
	return func(c *arrayConfig) {
		c.values = values
		c.hasValues = !isEmptySequence(values)
	}
}

// WithLength declares an uninitialized one-dimensional array of n elements.
// It is ignored when values are supplied.
func WithLength(n int) ArrayOption {
	return func(c *arrayConfig) { c.length = n }
}

// WithStartOffset sets the lower bound of the outermost dimension.
// Inner dimensions always start at 0.
func WithStartOffset(offset int) ArrayOption {
	return func(c *arrayConfig) { c.offset = offset }
}

// Array is a one- or multi-dimensional array of Bool or DInt elements.
type Array struct {
	name    string
	elem    Kind
	values  []any // normalized nested values; leaves are bool or int64
	extents []int
	offset  int
	decl    string
}

// NewArray creates an array variable of the given element kind.
//
// It returns an UNSUPPORTED_TYPE error if elem is not Bool or DInt,
// JAGGED_ARRAY if nested values are not rectangular, INVALID_VALUE if an
// element does not match elem, and INVALID_INPUT if neither values nor a
// positive length is given.
func NewArray(name string, elem Kind, opts ...ArrayOption) (*Array, error) {
	if !elem.IsElement() {
		return nil, errors.New(errors.ErrCodeUnsupportedType,
			"array %q: element type %s not supported (choose from %s)", name, elem, kindList([]Kind{KindBool, KindDInt}))
	}

	var cfg arrayConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	a := &Array{name: name, elem: elem, offset: cfg.offset}

	if cfg.hasValues {
		root, err := normalize(reflect.ValueOf(cfg.values), elem, nil)
		if err != nil {
			return nil, inArray(name, err)
		}
		list, ok := root.([]any)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "array %q: values must be a sequence", name)
		}
		extents := deriveExtents(list)
		if err := checkShape(list, extents, 0, nil); err != nil {
			return nil, inArray(name, err)
		}
		a.values = list
		a.extents = extents
	} else {
		if cfg.length < 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"array %q: no values given and length %d is not positive", name, cfg.length)
		}
		a.extents = []int{cfg.length}
	}

	a.decl = declaration(name, a.typeExpr())
	return a, nil
}

func (a *Array) Name() string        { return a.name }
func (a *Array) Kind() Kind          { return KindArray }
func (a *Array) Declaration() string { return a.decl }
func (a *Array) sealed()             {}

// ElementKind returns the kind of the array's elements.
func (a *Array) ElementKind() Kind { return a.elem }

// StartOffset returns the lower bound of the outermost dimension.
func (a *Array) StartOffset() int { return a.offset }

// Dimensions returns the number of dimensions.
func (a *Array) Dimensions() int { return len(a.extents) }

// Extents returns a copy of the per-dimension sizes, outermost first.
func (a *Array) Extents() []int { return append([]int(nil), a.extents...) }

// Len returns the total number of declared elements.
func (a *Array) Len() int {
	n := 1
	for _, e := range a.extents {
		n *= e
	}
	return n
}

// Initialized reports whether the array carries literal values.
func (a *Array) Initialized() bool { return a.values != nil }

// Values returns a deep copy of the nested values, or nil for a
// length-only array. Leaves are bool or int64.
func (a *Array) Values() []any {
	if a.values == nil {
		return nil
	}
	return cloneList(a.values)
}

// typeExpr renders `Array[lo..hi, 0..n-1, ...] of <elem>`.
func (a *Array) typeExpr() string {
	var b strings.Builder
	b.WriteString("Array[")
	for d, extent := range a.extents {
		lo := 0
		if d == 0 {
			lo = a.offset
		} else {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(lo))
		b.WriteString("..")
		b.WriteString(strconv.Itoa(lo + extent - 1))
	}
	b.WriteString("] of ")
	b.WriteString(a.elem.String())
	return b.String()
}

// Initialization renders one `"<name>"[i,j,...] := <literal>;` statement per
// element in row-major order. Indices are 0-based and do not include the
// start offset. A length-only array renders nothing.
func (a *Array) Initialization() (string, error) {
	if a.values == nil {
		return "", nil
	}

	var literal func(any) string
	switch a.elem {
	case KindBool:
		if a.Dimensions() > 1 {
			return "", errors.New(errors.ErrCodeUnimplemented,
				"array %q: initialization of %d-dimensional Bool arrays is not implemented", a.name, a.Dimensions())
		}
		literal = func(v any) string { return boolLiteral(v.(bool)) }
	case KindDInt:
		literal = func(v any) string { return dintLiteral(v.(int64)) }
	case KindString, KindArray, KindCustom:
		return "", errors.New(errors.ErrCodeUnsupportedType, "array %q: element type %s not supported", a.name, a.elem)
	default:
		return "", errors.New(errors.ErrCodeUnsupportedType, "array %q: element type %s not supported", a.name, a.elem)
	}

	flat := flatten(a.values, nil)
	cursor := make([]int, len(a.extents))
	target := quote(a.name)

	var b strings.Builder
	for _, v := range flat {
		b.WriteString(assignment(target+"["+joinInts(cursor)+"]", literal(v)))
		advance(cursor, a.extents)
	}
	return b.String(), nil
}

// advance increments cursor like an odometer: the last slot moves fastest
// and carries into the next more significant slot when it reaches its extent.
func advance(cursor, extents []int) {
	for d := len(cursor) - 1; d >= 0; d-- {
		cursor[d]++
		if cursor[d] < extents[d] {
			return
		}
		cursor[d] = 0
	}
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// deriveExtents walks the first element of each level and records its length.
func deriveExtents(list []any) []int {
	var extents []int
	var cur any = list
	for {
		l, ok := cur.([]any)
		if !ok {
			return extents
		}
		extents = append(extents, len(l))
		if len(l) == 0 {
			return extents
		}
		cur = l[0]
	}
}

// checkShape verifies that every sequence at depth d has extents[d] items and
// that leaves appear exactly at the innermost depth.
func checkShape(list []any, extents []int, depth int, path []int) error {
	if len(list) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "empty sequence at %s", formatPath(path))
	}
	if len(list) != extents[depth] {
		return errors.New(errors.ErrCodeJaggedArray,
			"sequence at %s has %d elements, expected %d", formatPath(path), len(list), extents[depth])
	}
	innermost := depth == len(extents)-1
	for i, item := range list {
		sub, isList := item.([]any)
		switch {
		case innermost && isList:
			return errors.New(errors.ErrCodeJaggedArray, "unexpected sequence at %s", formatPath(append(path, i)))
		case !innermost && !isList:
			return errors.New(errors.ErrCodeJaggedArray, "expected sequence at %s", formatPath(append(path, i)))
		case isList:
			if err := checkShape(sub, extents, depth+1, append(path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// inArray prefixes a shape or value error with the array name, keeping its code.
func inArray(name string, err error) error {
	return errors.New(errors.GetCode(err), "array %q: %s", name, errors.UserMessage(err))
}

func formatPath(path []int) string {
	if len(path) == 0 {
		return "top level"
	}
	return "[" + joinInts(path) + "]"
}

// flatten appends all leaves of list in row-major order.
func flatten(list []any, out []any) []any {
	for _, item := range list {
		if sub, ok := item.([]any); ok {
			out = flatten(sub, out)
			continue
		}
		out = append(out, item)
	}
	return out
}

func cloneList(list []any) []any {
	out := make([]any, len(list))
	for i, item := range list {
		if sub, ok := item.([]any); ok {
			out[i] = cloneList(sub)
			continue
		}
		out[i] = item
	}
	return out
}

// isEmptySequence reports whether v is nil or a zero-length slice or array.
func isEmptySequence(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len() == 0
	default:
		return false
	}
}

// normalize converts rv into a fresh tree of []any with bool or int64 leaves.
func normalize(rv reflect.Value, elem Kind, path []int) (any, error) {
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, errors.New(errors.ErrCodeInvalidValue, "nil element at %s", formatPath(path))
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			v, err := normalize(rv.Index(i), elem, append(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	switch elem {
	case KindBool:
		if rv.Kind() == reflect.Bool {
			return rv.Bool(), nil
		}
	case KindDInt:
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return rv.Int(), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if rv.Uint() <= math.MaxInt64 {
				return int64(rv.Uint()), nil
			}
		case reflect.Float32, reflect.Float64:
			// Decoders such as encoding/json produce float64 for every number.
			// MaxInt64 is not representable as a float64, so the upper bound
			// is exclusive.
			f := rv.Float()
			if f == math.Trunc(f) && f >= math.MinInt64 && f < 1<<63 {
				return int64(f), nil
			}
		}
	case KindString, KindArray, KindCustom:
	}
	return nil, errors.New(errors.ErrCodeInvalidValue,
		"element at %s: %v is not a %s value", formatPath(path), rv.Interface(), elem)
}
