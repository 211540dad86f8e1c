package datablock

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/s7db/pkg/errors"
)

// FileExtension is appended to the block name to derive the default output path.
const FileExtension = ".db"

// Version is the fixed block version written into the header.
const Version = "0.1"

// Option configures a [Block].
type Option func(*Block)

// WithOptimizedAccess sets S7_Optimized_Access. Defaults to true.
func WithOptimizedAccess(on bool) Option {
	return func(b *Block) { b.optimizedAccess = on }
}

// WithReadOnly marks the block READ_ONLY.
func WithReadOnly(on bool) Option {
	return func(b *Block) { b.readOnly = on }
}

// WithUnlinked marks the block UNLINKED.
func WithUnlinked(on bool) Option {
	return func(b *Block) { b.unlinked = on }
}

// WithOPCAccess controls OPC UA accessibility. Defaults to true; when
// disabled the header carries DB_Accessible_From_OPC_UA := 'FALSE'.
func WithOPCAccess(on bool) Option {
	return func(b *Block) { b.opcAccess = on }
}

// Block is a named data block holding an ordered list of variables.
type Block struct {
	name            string
	optimizedAccess bool
	readOnly        bool
	unlinked        bool
	opcAccess       bool
	vars            []Variable
}

// New creates an empty block.
func New(name string, opts ...Option) *Block {
	b := &Block{
		name:            name,
		optimizedAccess: true,
		opcAccess:       true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Block) Name() string          { return b.name }
func (b *Block) OptimizedAccess() bool { return b.optimizedAccess }
func (b *Block) ReadOnly() bool        { return b.readOnly }
func (b *Block) Unlinked() bool        { return b.unlinked }
func (b *Block) OPCAccess() bool       { return b.opcAccess }

// Len returns the number of registered variables.
func (b *Block) Len() int { return len(b.vars) }

// Variables returns a copy of the registered variables in order.
func (b *Block) Variables() []Variable {
	return append([]Variable(nil), b.vars...)
}

// Add appends v. Duplicate names and repeated registration of the same
// variable are allowed; each registration is emitted independently.
//
// A nil variable or one whose kind is not supported is rejected with an
// UNSUPPORTED_TYPE error and the block is left unchanged.
func (b *Block) Add(v Variable) error {
	if v == nil {
		return errors.New(errors.ErrCodeUnsupportedType, "block %q: cannot add nil variable", b.name)
	}
	if err := checkKind(v); err != nil {
		return errors.New(errors.ErrCodeUnsupportedType, "block %q: %s", b.name, errors.UserMessage(err))
	}
	b.vars = append(b.vars, v)
	return nil
}

// checkKind verifies that the variable's kind matches its concrete type.
func checkKind(v Variable) error {
	want := Kind(0)
	switch v.(type) {
	case *Bool:
		want = KindBool
	case *DInt:
		want = KindDInt
	case *String:
		want = KindString
	case *Array:
		want = KindArray
	case *Custom:
		want = KindCustom
	}
	if !v.Kind().Valid() || v.Kind() != want {
		return errors.New(errors.ErrCodeUnsupportedType,
			"variable %q has unsupported type %s (choose from %s)", v.Name(), v.Kind(), kindList(Kinds()))
	}
	return nil
}

// DefaultFilename returns "<name>.db".
func (b *Block) DefaultFilename() string {
	return b.name + FileExtension
}

// Serialize renders the complete source text. It does not modify the block
// and returns identical output for identical state.
func (b *Block) Serialize() (string, error) {
	var buf strings.Builder
	b.writeHeader(&buf)
	b.writeDeclarations(&buf)
	if err := b.writeInitialization(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (b *Block) writeHeader(buf *strings.Builder) {
	fmt.Fprintf(buf, "DATA_BLOCK %s\n", quote(b.name))
	buf.WriteString("{")
	if !b.opcAccess {
		buf.WriteString(" DB_Accessible_From_OPC_UA := 'FALSE' ;\n")
	}
	fmt.Fprintf(buf, " S7_Optimized_Access := '%s' }\n", strings.ToUpper(boolLiteral(b.optimizedAccess)))
	fmt.Fprintf(buf, "VERSION : %s\n", Version)
	if b.unlinked {
		buf.WriteString("UNLINKED\n")
	}
	if b.readOnly {
		buf.WriteString("READ_ONLY\n")
	}
}

func (b *Block) writeDeclarations(buf *strings.Builder) {
	buf.WriteString("NON_RETAIN\n")
	buf.WriteString("   VAR\n")
	for _, v := range b.vars {
		buf.WriteString("      ")
		buf.WriteString(v.Declaration())
		buf.WriteString(";\n")
	}
	buf.WriteString("   END_VAR\n\n\n")
}

func (b *Block) writeInitialization(buf *strings.Builder) error {
	buf.WriteString("BEGIN\n")
	for i, v := range b.vars {
		init, err := v.Initialization()
		if err != nil {
			return errors.Wrap(errors.GetCode(err), err, "block %q: variable %d (%s)", b.name, i, v.Name())
		}
		buf.WriteString(init)
	}
	buf.WriteString("END_DATA_BLOCK\n")
	return nil
}

// WriteTo renders the block and writes it to w in a single call.
// Nothing is written if rendering fails.
func (b *Block) WriteTo(w io.Writer) (int64, error) {
	src, err := b.Serialize()
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(w, bytes.NewBufferString(src))
	if err != nil {
		return n, errors.Wrap(errors.ErrCodeIO, err, "write block %q", b.name)
	}
	return n, nil
}

// WriteFile renders the block and writes it to path, replacing any existing
// file. An empty path writes to [Block.DefaultFilename]. The file is not
// touched if rendering fails. On write failure the block stays valid and the
// call can be retried.
func (b *Block) WriteFile(path string) error {
	if path == "" {
		path = b.DefaultFilename()
	}
	src, err := b.Serialize()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	defer f.Close()
	if _, err := f.WriteString(src); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}
