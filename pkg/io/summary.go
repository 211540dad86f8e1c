package io

import (
	"strings"

	"github.com/matzehuels/s7db/pkg/datablock"
	"github.com/matzehuels/s7db/pkg/errors"
)

// Summary describes a block without its full source.
type Summary struct {
	Name            string            `json:"name"`
	OptimizedAccess bool              `json:"optimized_access"`
	OPCAccess       bool              `json:"opc_access"`
	ReadOnly        bool              `json:"read_only"`
	Unlinked        bool              `json:"unlinked"`
	Variables       []VariableSummary `json:"variables"`
	// Statements is the total number of initialization statements.
	Statements int `json:"statements"`
}

// VariableSummary describes one variable of a block.
type VariableSummary struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Declaration string `json:"declaration"`
	Dimensions  []int  `json:"dimensions,omitempty"`
	Statements  int    `json:"statements"`
	// Error is set when the variable cannot be rendered; its code is in
	// ErrorCode.
	Error     string      `json:"error,omitempty"`
	ErrorCode errors.Code `json:"error_code,omitempty"`
}

// Summarize describes b. Variables that fail to render are reported in
// their Error field instead of failing the whole summary.
func Summarize(b *datablock.Block) *Summary {
	s := &Summary{
		Name:            b.Name(),
		OptimizedAccess: b.OptimizedAccess(),
		OPCAccess:       b.OPCAccess(),
		ReadOnly:        b.ReadOnly(),
		Unlinked:        b.Unlinked(),
		Variables:       make([]VariableSummary, 0, b.Len()),
	}
	for _, v := range b.Variables() {
		vs := VariableSummary{
			Name:        v.Name(),
			Type:        FormatType(v),
			Declaration: v.Declaration(),
		}
		if a, ok := v.(*datablock.Array); ok {
			vs.Dimensions = a.Extents()
		}
		init, err := v.Initialization()
		if err != nil {
			vs.Error = errors.UserMessage(err)
			vs.ErrorCode = errors.GetCode(err)
		} else {
			vs.Statements = strings.Count(init, "\n")
		}
		s.Statements += vs.Statements
		s.Variables = append(s.Variables, vs)
	}
	return s
}

// Renderable reports whether every variable of the summary can be rendered.
func (s *Summary) Renderable() bool {
	for _, v := range s.Variables {
		if v.Error != "" {
			return false
		}
	}
	return true
}
