package semantic

import "fmt"

// Type is the stored kind of a symbol. It folds the base type, constness,
// array-ness and function-ness into one value so the symbol dump can print it
// directly. Int, Char and Void double as the base kinds.
type Type int

const (
	Unknown Type = iota
	Int
	Char
	Void
	ConstInt
	ConstChar
	ConstIntArray
	ConstCharArray
	IntArray
	CharArray
	IntFunc
	CharFunc
	VoidFunc
)

var typeNames = [...]string{
	Unknown:        "Unknown",
	Int:            "Int",
	Char:           "Char",
	Void:           "Void",
	ConstInt:       "ConstInt",
	ConstChar:      "ConstChar",
	ConstIntArray:  "ConstIntArray",
	ConstCharArray: "ConstCharArray",
	IntArray:       "IntArray",
	CharArray:      "CharArray",
	IntFunc:        "IntFunc",
	CharFunc:       "CharFunc",
	VoidFunc:       "VoidFunc",
}

func (t Type) String() string {
	if int(t) >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// VarType maps a variable's base type and flags to its stored kind.
// Anything but Int or Char yields Unknown.
func VarType(base Type, isConst, isArray bool) Type {
	switch base {
	case Int:
		switch {
		case isConst && isArray:
			return ConstIntArray
		case isConst:
			return ConstInt
		case isArray:
			return IntArray
		}
		return Int
	case Char:
		switch {
		case isConst && isArray:
			return ConstCharArray
		case isConst:
			return ConstChar
		case isArray:
			return CharArray
		}
		return Char
	}
	return Unknown
}

// FuncType maps a declared return type to the stored kind of the function.
func FuncType(ret Type) Type {
	switch ret {
	case Int:
		return IntFunc
	case Char:
		return CharFunc
	case Void:
		return VoidFunc
	}
	return Unknown
}

// Base strips constness, array-ness and function-ness.
func (t Type) Base() Type {
	switch t {
	case Int, ConstInt, ConstIntArray, IntArray, IntFunc:
		return Int
	case Char, ConstChar, ConstCharArray, CharArray, CharFunc:
		return Char
	case Void, VoidFunc:
		return Void
	}
	return Unknown
}

func (t Type) IsArray() bool {
	switch t {
	case ConstIntArray, ConstCharArray, IntArray, CharArray:
		return true
	}
	return false
}

func (t Type) IsConst() bool {
	switch t {
	case ConstInt, ConstChar, ConstIntArray, ConstCharArray:
		return true
	}
	return false
}

func (t Type) IsFunc() bool {
	return t == IntFunc || t == CharFunc || t == VoidFunc
}
