package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/s7db/pkg/datablock"
	"github.com/matzehuels/s7db/pkg/errors"
)

// FromBlock converts a block into its definition document.
// Building the returned document yields a block that serializes identically.
func FromBlock(b *datablock.Block) *Document {
	optimized, opc := b.OptimizedAccess(), b.OPCAccess()
	doc := &Document{
		Name:            b.Name(),
		OptimizedAccess: &optimized,
		OPCAccess:       &opc,
		ReadOnly:        b.ReadOnly(),
		Unlinked:        b.Unlinked(),
		Variables:       make([]VariableSpec, 0, b.Len()),
	}

	for _, v := range b.Variables() {
		spec := VariableSpec{Name: v.Name(), Type: FormatType(v)}
		switch v := v.(type) {
		case *datablock.Bool:
			spec.Value = v.Value()
		case *datablock.DInt:
			spec.Value = v.Value()
		case *datablock.String:
			spec.Value = v.Value()
		case *datablock.Array:
			spec.StartOffset = v.StartOffset()
			if v.Initialized() {
				spec.Values = v.Values()
			} else {
				spec.Length = v.Len()
			}
		case *datablock.Custom:
			spec.TypeName = v.TypeName()
			spec.Members = v.Members()
		}
		doc.Variables = append(doc.Variables, spec)
	}
	return doc
}

// WriteJSON encodes the definition of b as indented JSON and writes it to w.
// The output can be read back with [ReadJSON].
func WriteJSON(b *datablock.Block, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromBlock(b)); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode definition")
	}
	return nil
}

// ExportJSON writes the definition of b to a JSON file at path.
func ExportJSON(b *datablock.Block, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSON(b, w) })
}

// WriteSource writes the generated S7 source of b to w.
func WriteSource(b *datablock.Block, w io.Writer) error {
	_, err := b.WriteTo(w)
	return err
}

// ExportSource writes the generated S7 source of b to path, creating parent
// directories as needed. An empty path uses the block's default filename.
// Nothing is written if the block cannot be rendered.
func ExportSource(b *datablock.Block, path string) error {
	if path == "" {
		path = b.DefaultFilename()
	}
	src, err := b.Serialize()
	if err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, src)
		if err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
		}
		return nil
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "create directory %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}
