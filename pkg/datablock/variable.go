package datablock

import (
	"strconv"
	"strings"
)

// indent prefixes every initialization statement.
const indent = "   "

// Variable is a named, typed field of a [Block].
//
// The set of implementations is closed: *Bool, *DInt, *String, *Array and
// *Custom. Declaration is computed once at construction; Initialization is
// rendered on demand and may fail for unsupported shapes.
type Variable interface {
	// Name returns the identifier used verbatim (quoted) in output.
	Name() string

	// Kind returns the variable's kind, fixed at construction.
	Kind() Kind

	// Declaration returns the fragment `"<name>" : <TypeExpr>`.
	Declaration() string

	// Initialization returns zero or more assignment statements, each
	// indented and terminated with ";\n".
	Initialization() (string, error)

	sealed()
}

// declaration formats the shared `"<name>" : <type>` fragment.
func declaration(name, typeExpr string) string {
	return quote(name) + " : " + typeExpr
}

// quote wraps a name in double quotes without escaping.
// Names are emitted verbatim.
func quote(name string) string {
	return `"` + name + `"`
}

// assignment formats a single statement `   <target> := <literal>;`.
func assignment(target, literal string) string {
	return indent + target + " := " + literal + ";\n"
}

// boolLiteral renders a boolean as the platform keyword.
func boolLiteral(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// dintLiteral renders an integer in decimal.
func dintLiteral(n int64) string {
	return strconv.FormatInt(n, 10)
}

// stringLiteral renders s between single quotes. No escaping is performed.
func stringLiteral(s string) string {
	return "'" + s + "'"
}

// =============================================================================
// Scalars
// =============================================================================

// Bool is a boolean variable.
type Bool struct {
	name  string
	value bool
	decl  string
}

// NewBool creates a Bool variable.
func NewBool(name string, value bool) *Bool {
	return &Bool{name: name, value: value, decl: declaration(name, KindBool.String())}
}

func (v *Bool) Name() string        { return v.name }
func (v *Bool) Kind() Kind          { return KindBool }
func (v *Bool) Declaration() string { return v.decl }
func (v *Bool) Value() bool         { return v.value }
func (v *Bool) sealed()             {}

// Initialization renders `"<name>" := true;` or `false`.
func (v *Bool) Initialization() (string, error) {
	return assignment(quote(v.name), boolLiteral(v.value)), nil
}

// DInt is a 32-bit signed integer variable. Values are not range checked.
type DInt struct {
	name  string
	value int64
	decl  string
}

// NewDInt creates a DInt variable.
func NewDInt(name string, value int64) *DInt {
	return &DInt{name: name, value: value, decl: declaration(name, KindDInt.String())}
}

func (v *DInt) Name() string        { return v.name }
func (v *DInt) Kind() Kind          { return KindDInt }
func (v *DInt) Declaration() string { return v.decl }
func (v *DInt) Value() int64        { return v.value }
func (v *DInt) sealed()             {}

// Initialization renders `"<name>" := <decimal>;`.
func (v *DInt) Initialization() (string, error) {
	return assignment(quote(v.name), dintLiteral(v.value)), nil
}

// String is a string variable.
//
// The literal is emitted between single quotes without escaping, so a value
// containing a single quote produces invalid source.
type String struct {
	name  string
	value string
	decl  string
}

// NewString creates a String variable.
func NewString(name, value string) *String {
	return &String{name: name, value: value, decl: declaration(name, KindString.String())}
}

func (v *String) Name() string        { return v.name }
func (v *String) Kind() Kind          { return KindString }
func (v *String) Declaration() string { return v.decl }
func (v *String) Value() string       { return v.value }
func (v *String) sealed()             {}

// Initialization renders `"<name>" := '<literal>';`.
func (v *String) Initialization() (string, error) {
	return assignment(quote(v.name), stringLiteral(v.value)), nil
}

// =============================================================================
// Custom
// =============================================================================

// Member is a single member assignment of a [Custom] variable.
// Literal is emitted verbatim.
type Member struct {
	Path    string `json:"path" yaml:"path" toml:"path"`
	Literal string `json:"literal" yaml:"literal" toml:"literal"`
}

// Custom is a variable of a user-defined type (UDT).
type Custom struct {
	name     string
	typeName string
	members  []Member
	decl     string
}

// NewCustom creates a Custom variable of the given user-defined type.
// Members are assigned in the given order during initialization.
func NewCustom(name, typeName string, members ...Member) *Custom {
	return &Custom{
		name:     name,
		typeName: typeName,
		members:  append([]Member(nil), members...),
		decl:     declaration(name, quote(typeName)),
	}
}

func (v *Custom) Name() string        { return v.name }
func (v *Custom) Kind() Kind          { return KindCustom }
func (v *Custom) Declaration() string { return v.decl }
func (v *Custom) TypeName() string    { return v.typeName }
func (v *Custom) sealed()             {}

// Members returns a copy of the member assignments.
func (v *Custom) Members() []Member {
	return append([]Member(nil), v.members...)
}

// Initialization renders `"<name>".<path> := <literal>;` per member.
// A Custom without members keeps the type's defaults and renders nothing.
func (v *Custom) Initialization() (string, error) {
	var b strings.Builder
	for _, m := range v.members {
		b.WriteString(assignment(quote(v.name)+"."+m.Path, m.Literal))
	}
	return b.String(), nil
}
