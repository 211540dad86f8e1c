package datablock_test

import (
	"fmt"

	"github.com/matzehuels/s7db/pkg/datablock"
)

func ExampleNewArray() {
	arr, err := datablock.NewArray("test_array", datablock.KindDInt,
		datablock.WithValues([][]int{{10, 10}, {2, 2}, {1, 250}}))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(arr.Declaration())
	fmt.Println(arr.Extents())

	init, _ := arr.Initialization()
	fmt.Print(init)
	// Output:
	// "test_array" : Array[0..2, 0..1] of DInt
	// [3 2]
	//    "test_array"[0,0] := 10;
	//    "test_array"[0,1] := 10;
	//    "test_array"[1,0] := 2;
	//    "test_array"[1,1] := 2;
	//    "test_array"[2,0] := 1;
	//    "test_array"[2,1] := 250;
}

func ExampleBlock_Add() {
	db := datablock.New("test_db", datablock.WithReadOnly(true))
	_ = db.Add(datablock.NewBool("is_active", true))
	_ = db.Add(datablock.NewString("text", "example string"))

	for _, v := range db.Variables() {
		fmt.Println(v.Declaration())
	}
	// Output:
	// "is_active" : Bool
	// "text" : String
}
