// Package descfile loads type descriptors from YAML descriptions.
//
// A description names record, enum, opaque and alias types; everything
// else is written as a C++ style type expression that refers to builtins
// and to the named types:
//
//	types:
//	  Point:
//	    kind: struct
//	    fields:
//	      - {name: x, type: int}
//	      - {name: y, type: int}
//	  Node:
//	    kind: struct
//	    fields:
//	      - {name: value, type: "std::vector<int>"}
//	      - {name: next, type: "Node *"}
//	  Color:
//	    kind: enum
//	    underlying: unsigned char
//	    enumerators:
//	      - {name: "Color::Red"}
//	      - {name: "Color::Blue", value: 4}
//
// Field offsets are computed with natural wasm32 alignment unless every
// field of a record gives one. Enumerators without a value continue from
// the previous one, starting at 0.
//
// Expressions support pointers ("char *"), arrays ("int[4]", "char *[2]",
// "int[]"), the std string types, std::array<T, N> and the recognized std
// containers. const and volatile are ignored. Named types may refer to
// themselves through pointers and containers but not by value.
package descfile
