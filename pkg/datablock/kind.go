package datablock

import (
	"fmt"
	"strings"

	"github.com/matzehuels/s7db/pkg/errors"
)

// Kind identifies the type of a [Variable].
type Kind int

// Supported variable kinds.
const (
	KindBool Kind = iota + 1
	KindDInt
	KindString
	KindArray
	KindCustom
)

// String returns the type name used in generated source.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindDInt:
		return "DInt"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindCustom:
		return "Custom"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindBool, KindDInt, KindString, KindArray, KindCustom:
		return true
	default:
		return false
	}
}

// IsElement reports whether k may be used as an array element kind.
func (k Kind) IsElement() bool {
	switch k {
	case KindBool, KindDInt:
		return true
	case KindString, KindArray, KindCustom:
		return false
	default:
		return false
	}
}

// Kinds returns all supported kinds in declaration order.
func Kinds() []Kind {
	return []Kind{KindBool, KindDInt, KindString, KindArray, KindCustom}
}

// ParseKind parses a kind name case-insensitively ("bool", "DINT", ...).
func ParseKind(s string) (Kind, error) {
	name := strings.TrimSpace(s)
	for _, k := range Kinds() {
		if strings.EqualFold(name, k.String()) {
			return k, nil
		}
	}
	return 0, errors.New(errors.ErrCodeUnsupportedType, "unknown type %q (choose from %s)", s, kindList(Kinds()))
}

// kindList formats kinds as "Bool, DInt, ...".
func kindList(kinds []Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}
