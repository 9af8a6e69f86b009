//go:build cgo

package main

/*
#include <stdbool.h>
#include <stdint.h>
#include <stdlib.h>
*/
import "C"
import (
	"unsafe"
)

//export IsLegal
func IsLegal(fen *C.char, move *C.char) C.bool {
	return C.bool(isLegal(C.GoString(fen), C.GoString(move)))
}

// GetLegalBitmask stage 0 写可走的轴心格（100 个），stage 1 写 pivot 上可用的步数（下标 1..3）
//
//export GetLegalBitmask
func GetLegalBitmask(fen *C.char, stage C.int, pivot C.short, maskOut *C.int8_t) C.int {
	mask := unsafe.Slice((*int8)(unsafe.Pointer(maskOut)), maskSize)
	n, err := legalMask(C.GoString(fen), int(stage), int(pivot), mask)
	if err != nil {
		return -1
	}
	return C.int(n)
}

//export CheckWinner
func CheckWinner(fen *C.char) C.int8_t {
	return C.int8_t(checkWinner(C.GoString(fen)))
}

// ApplyMove 返回新局面的 FEN，调用方用 FreeString 释放；非法时返回 NULL
//
//export ApplyMove
func ApplyMove(fen *C.char, move *C.char) *C.char {
	next, err := applyMove(C.GoString(fen), C.GoString(move))
	if err != nil {
		return nil
	}
	return C.CString(next)
}

// LegalMovesJSON 返回 {"moves":[...],"winner":...}，调用方用 FreeString 释放
//
//export LegalMovesJSON
func LegalMovesJSON(fen *C.char) *C.char {
	out, err := legalMovesJSON(C.GoString(fen))
	if err != nil {
		return nil
	}
	return C.CString(out)
}

//export FreeString
func FreeString(s *C.char) {
	C.free(unsafe.Pointer(s))
}
