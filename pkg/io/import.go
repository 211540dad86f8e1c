package io

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/s7db/pkg/datablock"
	"github.com/matzehuels/s7db/pkg/errors"
)

// Format identifies a definition file encoding.
type Format string

// Supported definition formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported definition formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// ParseFormat parses a format name ("json", "yaml", "yml", "toml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown definition format %q (must be json, yaml or toml)", s)
	}
}

// FormatFromPath derives the definition format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot detect format of %s (no extension)", path)
	}
	return ParseFormat(ext)
}

// Decode reads a definition document from r.
//
// The document is only decoded, not validated; call [Document.Build] to
// validate it and construct the block. Decode does not close r.
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			if err == io.EOF {
				return nil, errors.New(errors.ErrCodeInvalidInput, "decode yaml: empty document")
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "decode toml: unknown field %s", undecoded[0])
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown definition format %q", format)
	}
	return &doc, nil
}

// Read decodes a definition from r and builds the block.
func Read(r io.Reader, format Format) (*datablock.Block, error) {
	doc, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

// ReadJSON decodes a JSON definition from r and builds the block.
func ReadJSON(r io.Reader) (*datablock.Block, error) { return Read(r, FormatJSON) }

// ReadYAML decodes a YAML definition from r and builds the block.
func ReadYAML(r io.Reader) (*datablock.Block, error) { return Read(r, FormatYAML) }

// ReadTOML decodes a TOML definition from r and builds the block.
func ReadTOML(r io.Reader) (*datablock.Block, error) { return Read(r, FormatTOML) }

// ImportFile reads the definition at path. The format follows the file
// extension. A missing file is reported as FILE_NOT_FOUND.
func ImportFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	doc, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.New(errors.GetCode(err), "%s: %s", path, errorDetail(err))
	}
	return doc, nil
}

// Load imports the definition at path and builds the block.
func Load(path string) (*datablock.Block, error) {
	doc, err := ImportFile(path)
	if err != nil {
		return nil, err
	}
	b, err := doc.Build()
	if err != nil {
		return nil, errors.New(errors.GetCode(err), "%s: %s", path, errors.UserMessage(err))
	}
	return b, nil
}

// errorDetail returns the message and cause of err without the code prefix.
func errorDetail(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) && e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return errors.UserMessage(err)
}
