package typedesc

// Kind is the active tag of a Type.
type Kind uint8

const (
	KindVoid Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindChar
	KindNullPtr
	KindPointer
	KindEnum
	KindArray
	KindRecord
	KindOpaque
)

var kindNames = [...]string{
	KindVoid:    "void",
	KindBool:    "bool",
	KindInteger: "integer",
	KindFloat:   "float",
	KindChar:    "char",
	KindNullPtr: "nullptr",
	KindPointer: "pointer",
	KindEnum:    "enum",
	KindArray:   "array",
	KindRecord:  "record",
	KindOpaque:  "opaque",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsScalar reports whether k is one of the builtin scalar kinds the scalar
// formatter handles directly.
func (k Kind) IsScalar() bool {
	switch k {
	case KindBool, KindInteger, KindFloat, KindChar:
		return true
	default:
		return false
	}
}

// Encoding names the character representation of a KindChar type.
type Encoding uint8

const (
	EncodingPlain Encoding = iota
	EncodingWide
	EncodingUTF16
	EncodingUTF32
)

var encodingNames = [...]string{
	EncodingPlain: "plain",
	EncodingWide:  "wide",
	EncodingUTF16: "utf16",
	EncodingUTF32: "utf32",
}

func (e Encoding) String() string {
	if int(e) < len(encodingNames) {
		return encodingNames[e]
	}
	return "unknown"
}

// Shape marks a record as one of the recognized standard containers.
type Shape uint8

const (
	ShapeNone Shape = iota
	ShapeString
	ShapeVector
	ShapeDeque
	ShapeList
	ShapeSet
	ShapeMultiSet
	ShapeUnorderedSet
	ShapeFixedArray
)

var shapeNames = [...]string{
	ShapeNone:         "none",
	ShapeString:       "string",
	ShapeVector:       "vector",
	ShapeDeque:        "deque",
	ShapeList:         "list",
	ShapeSet:          "set",
	ShapeMultiSet:     "multiset",
	ShapeUnorderedSet: "unordered_set",
	ShapeFixedArray:   "array",
}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "unknown"
}

// IsContainer reports whether s is one of the element containers whose
// elements must be builtin scalars to be printed.
func (s Shape) IsContainer() bool {
	switch s {
	case ShapeVector, ShapeDeque, ShapeList, ShapeSet, ShapeMultiSet, ShapeUnorderedSet:
		return true
	default:
		return false
	}
}

// ParseShape maps a shape name back to its Shape.
func ParseShape(name string) (Shape, bool) {
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), true
		}
	}
	return ShapeNone, false
}
