package datablock

import (
	"strings"
	"testing"
)

func TestScalarDeclarations(t *testing.T) {
	tests := []struct {
		v    Variable
		want string
		kind Kind
	}{
		{NewBool("is_active", true), `"is_active" : Bool`, KindBool},
		{NewDInt("length", 100), `"length" : DInt`, KindDInt},
		{NewString("text", "example string"), `"text" : String`, KindString},
		{NewCustom("motor", "MotorData"), `"motor" : "MotorData"`, KindCustom},
	}

	for _, tt := range tests {
		t.Run(tt.v.Name(), func(t *testing.T) {
			got := tt.v.Declaration()
			if got != tt.want {
				t.Errorf("Declaration() = %q, want %q", got, tt.want)
			}
			if n := strings.Count(got, `"`+tt.v.Name()+`"`); n != 1 {
				t.Errorf("Declaration() contains quoted name %d times, want 1", n)
			}
			if tt.v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.v.Kind(), tt.kind)
			}
		})
	}
}

func TestBoolInitialization(t *testing.T) {
	tests := []struct {
		value   bool
		want    string
		notWant string
	}{
		{true, "true", "false"},
		{false, "false", "true"},
	}

	for _, tt := range tests {
		got, err := NewBool("flag", tt.value).Initialization()
		if err != nil {
			t.Fatalf("Initialization() error: %v", err)
		}
		if !strings.Contains(got, tt.want) || strings.Contains(got, tt.notWant) {
			t.Errorf("Initialization() = %q, want %q only", got, tt.want)
		}
	}
}

func TestScalarInitialization(t *testing.T) {
	tests := []struct {
		name string
		v    Variable
		want string
	}{
		{"bool", NewBool("is_active", true), "   \"is_active\" := true;\n"},
		{"dint", NewDInt("length", 100), "   \"length\" := 100;\n"},
		{"negative dint", NewDInt("delta", -42), "   \"delta\" := -42;\n"},
		{"string", NewString("text", "example string"), "   \"text\" := 'example string';\n"},
		{"empty string", NewString("text", ""), "   \"text\" := '';\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.Initialization()
			if err != nil {
				t.Fatalf("Initialization() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Initialization() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringLiteralNotEscaped(t *testing.T) {
	got, _ := NewString("s", `it's "raw"`).Initialization()
	if !strings.Contains(got, `'it's "raw"'`) {
		t.Errorf("Initialization() = %q, want literal preserved verbatim", got)
	}
}

func TestEmptyNameAccepted(t *testing.T) {
	v := NewDInt("", 1)
	if v.Declaration() != `"" : DInt` {
		t.Errorf("Declaration() = %q", v.Declaration())
	}
}

func TestCustomInitialization(t *testing.T) {
	v := NewCustom("motor", "MotorData",
		Member{Path: "speed", Literal: "1500"},
		Member{Path: "enabled", Literal: "true"},
	)
	got, err := v.Initialization()
	if err != nil {
		t.Fatalf("Initialization() error: %v", err)
	}
	want := "   \"motor\".speed := 1500;\n   \"motor\".enabled := true;\n"
	if got != want {
		t.Errorf("Initialization() = %q, want %q", got, want)
	}

	empty, _ := NewCustom("m", "T").Initialization()
	if empty != "" {
		t.Errorf("Initialization() without members = %q, want empty", empty)
	}
}

func TestCustomMembersCopied(t *testing.T) {
	members := []Member{{Path: "a", Literal: "1"}}
	v := NewCustom("x", "T", members...)
	members[0].Literal = "2"
	if v.Members()[0].Literal != "1" {
		t.Error("NewCustom should copy members")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"Bool", KindBool, false},
		{"dint", KindDInt, false},
		{" STRING ", KindString, false},
		{"array", KindArray, false},
		{"Custom", KindCustom, false},
		{"Real", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range Kinds() {
		if !k.Valid() {
			t.Errorf("%v.Valid() = false", k)
		}
	}
	if Kind(0).Valid() || Kind(99).Valid() {
		t.Error("unknown kinds should not be valid")
	}
	if Kind(99).String() != "Kind(99)" {
		t.Errorf("Kind(99).String() = %q", Kind(99).String())
	}
}
