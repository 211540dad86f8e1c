package io

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/s7db/pkg/datablock"
	"github.com/matzehuels/s7db/pkg/errors"
)

func TestJSONRoundTrip(t *testing.T) {
	orig, err := Load(filepath.Join("testdata", "demo.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want, err := orig.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(orig, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	got, err := back.Serialize()
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if got != want {
		t.Errorf("round trip changed source:\n%s\nwant\n%s", got, want)
	}
}

func TestFromBlockFlags(t *testing.T) {
	b := datablock.New("db",
		datablock.WithOptimizedAccess(false),
		datablock.WithOPCAccess(false),
		datablock.WithReadOnly(true))
	doc := FromBlock(b)

	if doc.OptimizedAccess == nil || *doc.OptimizedAccess {
		t.Error("OptimizedAccess should be exported as false")
	}
	if doc.OPCAccess == nil || *doc.OPCAccess {
		t.Error("OPCAccess should be exported as false")
	}
	if !doc.ReadOnly || doc.Unlinked {
		t.Errorf("ReadOnly, Unlinked = %v, %v, want true, false", doc.ReadOnly, doc.Unlinked)
	}
	if doc.Variables == nil {
		t.Error("Variables should be empty, not nil")
	}
}

func TestExportSource(t *testing.T) {
	b, err := Load(filepath.Join("testdata", "demo.json"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out", "nested", "test_db.db")
	if err := ExportSource(b, path); err != nil {
		t.Fatalf("ExportSource() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := b.Serialize()
	if string(data) != want {
		t.Error("ExportSource() content differs from Serialize()")
	}
}

func TestExportSourceUnrenderable(t *testing.T) {
	b := datablock.New("db")
	grid, err := datablock.NewArray("grid", datablock.KindBool, datablock.WithValues([][]bool{{true}, {false}}))
	if err != nil {
		t.Fatal(err)
	}
	_ = b.Add(grid)

	path := filepath.Join(t.TempDir(), "db.db")
	if err := ExportSource(b, path); !errors.Is(err, errors.ErrCodeUnimplemented) {
		t.Fatalf("ExportSource() error = %v, want %s", err, errors.ErrCodeUnimplemented)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("ExportSource() should not create a file for an unrenderable block")
	}
}

func TestExportJSON(t *testing.T) {
	b := datablock.New("db")
	_ = b.Add(datablock.NewDInt("n", 3))

	path := filepath.Join(t.TempDir(), "db.json")
	if err := ExportJSON(b, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	doc, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile() error: %v", err)
	}
	if doc.Name != "db" || len(doc.Variables) != 1 || doc.Variables[0].Type != "DInt" {
		t.Errorf("ImportFile() = %+v", doc)
	}
}
