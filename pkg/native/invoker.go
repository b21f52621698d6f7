// Package native describes calls into the host engine's native function table.
//
// The engine exposes every native as a 64-bit hash taking a list of 64-bit
// argument words and returning up to three words. Invoker is the only seam
// between this module and the engine; pkg/hostinterface provides the cgo
// implementation and nativetest an in-memory one.
package native

import (
	"math"

	"github.com/interactiv/extension/pkg/core"
)

// Hash identifies an engine native.
type Hash uint64

// ArgKind tells the invoker how to marshal an Arg.
type ArgKind uint8

const (
	KindWord ArgKind = iota
	KindString
	KindOut
)

// Arg is a single native argument.
type Arg struct {
	Kind ArgKind
	Word uint64
	Str  string
	// Out receives the first word written by the engine for pointer arguments.
	Out *uint64
}

// Int passes a signed integer (also used for entity handles).
func Int(v int) Arg {
	return Arg{Kind: KindWord, Word: uint64(uint32(int32(v)))}
}

// Uint passes an unsigned 32-bit value such as a model hash.
func Uint(v uint32) Arg {
	return Arg{Kind: KindWord, Word: uint64(v)}
}

// Float passes a float in the low 32 bits of the word.
func Float(v float32) Arg {
	return Arg{Kind: KindWord, Word: uint64(math.Float32bits(v))}
}

// Bool passes 1 or 0.
func Bool(v bool) Arg {
	if v {
		return Arg{Kind: KindWord, Word: 1}
	}
	return Arg{Kind: KindWord, Word: 0}
}

// String passes a pointer to a NUL terminated copy of s.
func String(s string) Arg {
	return Arg{Kind: KindString, Str: s}
}

// Out passes a pointer to scratch memory and copies the result back into dst.
func Out(dst *uint64) Arg {
	return Arg{Kind: KindOut, Out: dst}
}

// Result holds the return words of a native call.
type Result [3]uint64

// Word returns the raw first word.
func (r Result) Word() uint64 { return r[0] }

// Int returns the first word as a signed 32-bit integer.
func (r Result) Int() int { return int(int32(uint32(r[0]))) }

// Uint returns the first word as an unsigned 32-bit integer.
func (r Result) Uint() uint32 { return uint32(r[0]) }

// Bool returns whether the first word is non-zero.
func (r Result) Bool() bool { return uint32(r[0]) != 0 }

// Float returns the first word as a float.
func (r Result) Float() float32 { return math.Float32frombits(uint32(r[0])) }

// Vector decodes a padded three float vector.
func (r Result) Vector() core.Vector3 {
	return core.Vector3{
		X: math.Float32frombits(uint32(r[0])),
		Y: math.Float32frombits(uint32(r[1])),
		Z: math.Float32frombits(uint32(r[2])),
	}
}

// VectorResult encodes v the way the engine returns vectors.
func VectorResult(v core.Vector3) Result {
	return Result{
		uint64(math.Float32bits(v.X)),
		uint64(math.Float32bits(v.Y)),
		uint64(math.Float32bits(v.Z)),
	}
}

// Invoker calls engine natives. Implementations are only safe to use from the
// engine's script thread.
type Invoker interface {
	Invoke(h Hash, args ...Arg) Result
	// ReadString dereferences a char* returned by a native.
	ReadString(ptr uint64) string
}
