package tabulate

import "fmt"

// Typecode classifies a cell value. It doubles as a per-column type hint:
// TypeAuto means the column type is inferred from the data.
type Typecode int

const (
	TypeAuto Typecode = iota
	TypeNone
	TypeBool
	TypeInteger
	TypeRealNumber
	TypeString
	TypeNullString
	TypeDateTime
	TypeInfinity
	TypeNaN
	TypeList
	TypeDict
	TypeIPAddress
)

var typecodeNames = map[Typecode]string{
	TypeAuto:       "auto",
	TypeNone:       "none",
	TypeBool:       "bool",
	TypeInteger:    "int",
	TypeRealNumber: "float",
	TypeString:     "str",
	TypeNullString: "nullstr",
	TypeDateTime:   "datetime",
	TypeInfinity:   "inf",
	TypeNaN:        "nan",
	TypeList:       "list",
	TypeDict:       "dict",
	TypeIPAddress:  "ipaddr",
}

func (t Typecode) String() string {
	if name, ok := typecodeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("typecode(%d)", int(t))
}

// align returns the conventional alignment for values of this type.
func (t Typecode) align() Align {
	switch t {
	case TypeInteger, TypeRealNumber, TypeInfinity, TypeNaN:
		return AlignRight
	default:
		return AlignLeft
	}
}

// ParseTypeHint converts a type hint name into a Typecode. Recognized names
// match the String form of each typecode plus a few aliases ("integer",
// "realnumber", "string", "boolean").
func ParseTypeHint(name string) (Typecode, error) {
	switch name {
	case "", "auto":
		return TypeAuto, nil
	case "integer":
		return TypeInteger, nil
	case "realnumber", "real", "double":
		return TypeRealNumber, nil
	case "string", "text":
		return TypeString, nil
	case "boolean":
		return TypeBool, nil
	}
	for tc, n := range typecodeNames {
		if n == name {
			return tc, nil
		}
	}
	return TypeAuto, fmt.Errorf("%w: unknown type hint %q", ErrInvalidArgument, name)
}
