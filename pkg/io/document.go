package io

import (
	"math"
	"regexp"
	"strings"

	"github.com/matzehuels/s7db/pkg/datablock"
	"github.com/matzehuels/s7db/pkg/errors"
)

// Document is the declarative definition of a data block.
type Document struct {
	Name            string         `json:"name" yaml:"name" toml:"name"`
	OptimizedAccess *bool          `json:"optimized_access,omitempty" yaml:"optimized_access,omitempty" toml:"optimized_access,omitempty"`
	OPCAccess       *bool          `json:"opc_access,omitempty" yaml:"opc_access,omitempty" toml:"opc_access,omitempty"`
	ReadOnly        bool           `json:"read_only,omitempty" yaml:"read_only,omitempty" toml:"read_only,omitempty"`
	Unlinked        bool           `json:"unlinked,omitempty" yaml:"unlinked,omitempty" toml:"unlinked,omitempty"`
	Output          string         `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty"`
	Variables       []VariableSpec `json:"variables" yaml:"variables" toml:"variables"`
}

// VariableSpec is the definition of a single variable.
type VariableSpec struct {
	Name        string             `json:"name" yaml:"name" toml:"name"`
	Type        string             `json:"type" yaml:"type" toml:"type"`
	Value       any                `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Values      any                `json:"values,omitempty" yaml:"values,omitempty" toml:"values,omitempty"`
	Length      int                `json:"length,omitempty" yaml:"length,omitempty" toml:"length,omitempty"`
	StartOffset int                `json:"start_offset,omitempty" yaml:"start_offset,omitempty" toml:"start_offset,omitempty"`
	TypeName    string             `json:"type_name,omitempty" yaml:"type_name,omitempty" toml:"type_name,omitempty"`
	Members     []datablock.Member `json:"members,omitempty" yaml:"members,omitempty" toml:"members,omitempty"`
	Expr        string             `json:"expr,omitempty" yaml:"expr,omitempty" toml:"expr,omitempty"`
}

// Build validates the document and constructs the block it describes.
// Errors identify the offending variable by index and name.
func (d *Document) Build() (*datablock.Block, error) {
	if err := errors.ValidateBlockName(d.Name); err != nil {
		return nil, err
	}
	if d.Output != "" {
		if err := errors.ValidatePath(d.Output); err != nil {
			return nil, err
		}
	}

	opts := []datablock.Option{
		datablock.WithReadOnly(d.ReadOnly),
		datablock.WithUnlinked(d.Unlinked),
	}
	if d.OptimizedAccess != nil {
		opts = append(opts, datablock.WithOptimizedAccess(*d.OptimizedAccess))
	}
	if d.OPCAccess != nil {
		opts = append(opts, datablock.WithOPCAccess(*d.OPCAccess))
	}
	b := datablock.New(d.Name, opts...)

	for i, spec := range d.Variables {
		v, err := spec.build(d.Name)
		if err != nil {
			return nil, errors.New(errors.GetCode(err), "variable %d (%s): %s", i, spec.Name, errors.UserMessage(err))
		}
		if err := b.Add(v); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// ApplyDefaults fills the block attributes the document leaves unset.
// Nil defaults are ignored; set values are copied.
func (d *Document) ApplyDefaults(optimizedAccess, opcAccess *bool) {
	if d.OptimizedAccess == nil && optimizedAccess != nil {
		v := *optimizedAccess
		d.OptimizedAccess = &v
	}
	if d.OPCAccess == nil && opcAccess != nil {
		v := *opcAccess
		d.OPCAccess = &v
	}
}

// arrayTypeRe matches "Array of DInt", "array of bool", "Array[DInt]".
var arrayTypeRe = regexp.MustCompile(`(?i)^\s*array\s*(?:of\s+(\w+)|\[\s*(\w+)\s*\])\s*$`)

// ParseType parses a definition type string into its kind and, for arrays,
// the element kind.
func ParseType(s string) (kind, elem datablock.Kind, err error) {
	if m := arrayTypeRe.FindStringSubmatch(s); m != nil {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		elem, err = datablock.ParseKind(name)
		if err != nil {
			return 0, 0, err
		}
		return datablock.KindArray, elem, nil
	}
	kind, err = datablock.ParseKind(s)
	if err != nil {
		return 0, 0, err
	}
	if kind == datablock.KindArray {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "array type needs an element type (e.g. \"Array of DInt\")")
	}
	return kind, 0, nil
}

// FormatType renders the definition type string of v.
func FormatType(v datablock.Variable) string {
	if a, ok := v.(*datablock.Array); ok {
		return "Array of " + a.ElementKind().String()
	}
	return v.Kind().String()
}

func (s VariableSpec) build(block string) (datablock.Variable, error) {
	if err := errors.ValidateVariableName(s.Name); err != nil {
		return nil, err
	}
	kind, elem, err := ParseType(s.Type)
	if err != nil {
		return nil, err
	}

	if s.Expr != "" {
		result, err := evalExpr(s.Expr, block, s.Name)
		if err != nil {
			return nil, err
		}
		if kind == datablock.KindArray {
			s.Values = result
		} else {
			s.Value = result
		}
	}

	switch kind {
	case datablock.KindBool:
		b, ok := s.Value.(bool)
		if !ok {
			return nil, invalidValue(s.Value, kind)
		}
		return datablock.NewBool(s.Name, b), nil
	case datablock.KindDInt:
		n, ok := toInt64(s.Value)
		if !ok {
			return nil, invalidValue(s.Value, kind)
		}
		return datablock.NewDInt(s.Name, n), nil
	case datablock.KindString:
		str, ok := s.Value.(string)
		if !ok {
			return nil, invalidValue(s.Value, kind)
		}
		return datablock.NewString(s.Name, str), nil
	case datablock.KindArray:
		values := s.Values
		if values == nil {
			values = s.Value
		}
		return datablock.NewArray(s.Name, elem,
			datablock.WithValues(values),
			datablock.WithLength(s.Length),
			datablock.WithStartOffset(s.StartOffset))
	case datablock.KindCustom:
		if strings.TrimSpace(s.TypeName) == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "custom type needs type_name")
		}
		return datablock.NewCustom(s.Name, s.TypeName, s.Members...), nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedType, "type %s not supported", kind)
	}
}

func invalidValue(v any, kind datablock.Kind) error {
	if v == nil {
		return errors.New(errors.ErrCodeInvalidValue, "missing %s value", kind)
	}
	return errors.New(errors.ErrCodeInvalidValue, "%v (%T) is not a %s value", v, v, kind)
}

// toInt64 accepts the integer representations produced by the JSON, YAML,
// TOML and expr decoders.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), uint64(n) <= math.MaxInt64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	case float64:
		return floatToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	default:
		return 0, false
	}
}

// floatToInt64 converts integral floats in the int64 range. The upper bound
// is exclusive because float64(math.MaxInt64) rounds up to 2^63.
func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= 1<<63 {
		return 0, false
	}
	return int64(f), true
}
