// Package datablock builds S7 data-block source files from typed variables.
//
// # Overview
//
// A [Block] is an ordered container of [Variable] values. Each variable knows
// how to render two fragments of text:
//
//   - a declaration fragment, placed in the VAR ... END_VAR section
//   - an initialization fragment, placed between BEGIN and END_DATA_BLOCK
//
// [Block.Serialize] concatenates the header and the fragments of every
// registered variable, in registration order, into a complete source file.
//
// # Variables
//
// The set of variable kinds is closed:
//
//   - [Bool], [DInt], [String]: scalar literals
//   - [Array]: one or more dimensions of Bool or DInt elements
//   - [Custom]: a user-defined type with optional member assignments
//
// Arrays accept any nested slice as input. Extents are derived from the nesting
// depth; the outermost dimension starts at the configured offset, inner
// dimensions always start at 0:
//
//	arr, err := datablock.NewArray("matrix", datablock.KindDInt,
//	    datablock.WithValues([][]int{{10, 10}, {2, 2}, {1, 250}}))
//	// "matrix" : Array[0..2, 0..1] of DInt
//
// Initialization statements enumerate elements in row-major order using raw
// 0-based indices, independent of the declared start offset.
//
// # Example
//
//	db := datablock.New("test_db")
//	_ = db.Add(datablock.NewBool("is_active", true))
//	_ = db.Add(datablock.NewDInt("length", 100))
//	if err := db.WriteFile(""); err != nil { // writes test_db.db
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// A Block has no internal locking. Serialization only reads state, so
// concurrent Serialize calls are safe as long as no goroutine calls Add.
package datablock
