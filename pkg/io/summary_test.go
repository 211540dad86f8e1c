package io

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/s7db/pkg/datablock"
	"github.com/matzehuels/s7db/pkg/errors"
)

func TestSummarize(t *testing.T) {
	b, err := Load(filepath.Join("testdata", "demo.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	s := Summarize(b)

	if s.Name != "test_db" || !s.OptimizedAccess || !s.OPCAccess {
		t.Errorf("Summarize() header = %+v", s)
	}
	if len(s.Variables) != 10 {
		t.Fatalf("len(Variables) = %d, want 10", len(s.Variables))
	}

	// 4 scalars + 8 + 4 + 6 array elements + 0 (length only) + 4 (expr) + 2 members
	if s.Statements != 28 {
		t.Errorf("Statements = %d, want 28", s.Statements)
	}

	matrix := s.Variables[6]
	if matrix.Type != "Array of DInt" || !reflect.DeepEqual(matrix.Dimensions, []int{3, 2}) || matrix.Statements != 6 {
		t.Errorf("matrix summary = %+v", matrix)
	}
	if !s.Renderable() {
		t.Error("Renderable() = false, want true")
	}
}

func TestSummarizeUnrenderable(t *testing.T) {
	b := datablock.New("db")
	grid, err := datablock.NewArray("grid", datablock.KindBool, datablock.WithValues([][]bool{{true}, {false}}))
	if err != nil {
		t.Fatal(err)
	}
	_ = b.Add(datablock.NewBool("ok", true))
	_ = b.Add(grid)

	s := Summarize(b)
	if s.Renderable() {
		t.Error("Renderable() = true, want false")
	}
	if s.Variables[1].ErrorCode != errors.ErrCodeUnimplemented {
		t.Errorf("ErrorCode = %q, want %s", s.Variables[1].ErrorCode, errors.ErrCodeUnimplemented)
	}
	if s.Statements != 1 {
		t.Errorf("Statements = %d, want 1", s.Statements)
	}
}
