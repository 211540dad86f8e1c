// Package io reads data-block definitions from JSON, YAML and TOML files and
// writes blocks back out as definitions or as S7 source.
//
// # Overview
//
// A definition describes one data block declaratively. It is the file-based
// counterpart of building a [datablock.Block] in code:
//
//	name: test_db
//	read_only: false
//	variables:
//	  - {name: is_active, type: Bool, value: true}
//	  - {name: length, type: DInt, value: 100}
//	  - {name: text, type: String, value: example string}
//	  - {name: matrix, type: Array of DInt, values: [[10, 10], [2, 2], [1, 250]]}
//	  - {name: buffer, type: Array of Bool, length: 16, start_offset: 1}
//	  - {name: ramp, type: Array of DInt, expr: "map(1..8, # * 10)"}
//	  - name: motor
//	    type: Custom
//	    type_name: MotorData
//	    members: [{path: speed, literal: "1500"}]
//
// # Document Fields
//
// Block level:
//   - name (required): block name, validated with [errors.ValidateBlockName]
//   - optimized_access, opc_access: default true
//   - read_only, unlinked: default false
//   - output: optional relative output path for the generated source
//
// Variable level:
//   - name, type (required)
//   - value: scalar literal (Bool, DInt, String); also accepted for arrays
//   - values, length, start_offset: array contents and bounds
//   - type_name, members: Custom types
//   - expr: expr-lang expression whose result replaces value/values
//
// Type names are case-insensitive. Arrays are written "Array of DInt" or
// "Array[DInt]".
//
// # Import
//
// Use [ImportFile] to load a definition from a path (the format follows the
// extension), or [Decode] for any io.Reader. [Document.Build] turns a
// definition into a block; [Load] does both in one step.
//
// # Export
//
// [WriteJSON] and [ExportJSON] write a block's definition, [WriteSource] and
// [ExportSource] write the generated S7 source.
//
// [datablock.Block]: github.com/matzehuels/s7db/pkg/datablock.Block
// [errors.ValidateBlockName]: github.com/matzehuels/s7db/pkg/errors.ValidateBlockName
package io
