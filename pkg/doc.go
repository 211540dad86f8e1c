// Package pkg holds the public libraries of s7db, a generator for Siemens S7
// data-block source files.
//
// # Overview
//
//  1. [datablock] - the data model and the S7 source serializer
//  2. [io] - JSON, YAML and TOML definition files
//  3. [pipeline] - load → hash → render → write, with caching
//  4. [cache] - file, Redis and no-op caches for generated sources
//  5. [errors] - structured error codes and input validation
//
// # Quick Start
//
// Build a block in code and render it:
//
//	db := datablock.New("test_db")
//	_ = db.Add(datablock.NewBool("is_active", true))
//	_ = db.Add(datablock.NewDInt("length", 100))
//
//	matrix, err := datablock.NewArray("matrix", datablock.KindDInt,
//	    datablock.WithValues([][]int{{10, 10}, {2, 2}, {1, 250}}))
//	if err != nil {
//	    return err
//	}
//	_ = db.Add(matrix)
//
//	if err := db.WriteFile(""); err != nil { // writes test_db.db
//	    return err
//	}
//
// Or load a definition file:
//
//	b, err := io.Load("plant.yaml")
//
// [datablock]: github.com/matzehuels/s7db/pkg/datablock
// [io]: github.com/matzehuels/s7db/pkg/io
// [pipeline]: github.com/matzehuels/s7db/pkg/pipeline
// [cache]: github.com/matzehuels/s7db/pkg/cache
// [errors]: github.com/matzehuels/s7db/pkg/errors
package pkg
