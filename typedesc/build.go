package typedesc

// Constructors for the common wasm32 C types. Records whose offsets should be
// computed from natural alignment are built with layout.Struct instead.

func Void() *Type { return &Type{Kind: KindVoid} }

func Bool() *Type { return &Type{Kind: KindBool, Width: 1} }

// Int returns an integer type of the given byte width.
func Int(width uint8, signed bool) *Type {
	return &Type{Kind: KindInteger, Width: width, Signed: signed}
}

func Int8() *Type   { return Int(1, true) }
func Uint8() *Type  { return Int(1, false) }
func Int16() *Type  { return Int(2, true) }
func Uint16() *Type { return Int(2, false) }
func Int32() *Type  { return Int(4, true) }
func Uint32() *Type { return Int(4, false) }
func Int64() *Type  { return Int(8, true) }
func Uint64() *Type { return Int(8, false) }

// Float returns a floating point type. Widths above 8 are long double:
// 10 for x87 extended precision, 16 for IEEE binary128 (the wasm32 ABI).
func Float(width uint8) *Type { return &Type{Kind: KindFloat, Width: width} }

func Float32() *Type    { return Float(4) }
func Float64() *Type    { return Float(8) }
func LongDouble() *Type { return Float(16) }

// Char returns a character type with the given code unit width.
func Char(width uint8, enc Encoding) *Type {
	return &Type{Kind: KindChar, Width: width, Encoding: enc}
}

func Char8() *Type  { return Char(1, EncodingPlain) }
func Char16() *Type { return Char(2, EncodingUTF16) }
func Char32() *Type { return Char(4, EncodingUTF32) }

// WChar is wchar_t as laid out by wasm32 clang: 4 bytes, UTF-32.
func WChar() *Type { return Char(4, EncodingWide) }

func NullPtr() *Type { return &Type{Kind: KindNullPtr, Width: 4} }

func PointerTo(elem *Type) *Type {
	return &Type{Kind: KindPointer, Elem: elem}
}

// ArrayOf returns a fixed-size array of n elements.
func ArrayOf(elem *Type, n uint32) *Type {
	return &Type{Kind: KindArray, Elem: elem, Length: n, Bounded: true}
}

// UnboundedArrayOf returns an array whose length is not statically known.
// Printing one requires an explicit length from the caller.
func UnboundedArrayOf(elem *Type) *Type {
	return &Type{Kind: KindArray, Elem: elem}
}

// Enum returns an enum over underlying with the given enumerators in
// declaration order.
func Enum(name string, underlying *Type, enumerators ...Enumerator) *Type {
	return &Type{Kind: KindEnum, Name: name, Underlying: underlying, Enumerators: enumerators}
}

// Record returns an aggregate with caller supplied offsets. A zero size is
// computed from the fields by the layout package.
func Record(name string, size uint32, fields ...Field) *Type {
	return &Type{Kind: KindRecord, Name: name, Size: size, Fields: fields}
}

// String returns a string container of the given character type.
func String(char *Type) *Type {
	return &Type{Kind: KindRecord, Shape: ShapeString, Elem: char}
}

// Container returns one of the element container shapes over elem.
func Container(shape Shape, elem *Type) *Type {
	return &Type{Kind: KindRecord, Shape: shape, Elem: elem}
}

func VectorOf(elem *Type) *Type       { return Container(ShapeVector, elem) }
func DequeOf(elem *Type) *Type        { return Container(ShapeDeque, elem) }
func ListOf(elem *Type) *Type         { return Container(ShapeList, elem) }
func SetOf(elem *Type) *Type          { return Container(ShapeSet, elem) }
func MultiSetOf(elem *Type) *Type     { return Container(ShapeMultiSet, elem) }
func UnorderedSetOf(elem *Type) *Type { return Container(ShapeUnorderedSet, elem) }

// FixedArrayOf returns a std::array style record of n elements.
func FixedArrayOf(elem *Type, n uint32) *Type {
	return &Type{Kind: KindRecord, Shape: ShapeFixedArray, Elem: elem, Length: n, Bounded: true}
}

// Opaque returns a type the printer never looks inside.
func Opaque(name string, size, align uint32) *Type {
	return &Type{Kind: KindOpaque, Name: name, Size: size, Align: align}
}

// Named returns a shallow copy of t carrying a display name.
func Named(name string, t *Type) *Type {
	c := *t
	c.Name = name
	return &c
}
