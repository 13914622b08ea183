// Package witdesc builds type descriptors from WIT types, so values produced
// by components can be rendered with the printer package.
//
// Primitive WIT types keep their WIT names ("u32", "s64", "string") in
// field listings. Records and tuples become records laid out with the
// canonical ABI's natural alignment, enums keep their case names, lists
// become vectors over the same {ptr, len} header, and flags become plain
// unsigned integers. Types whose payload depends on a discriminant
// (option, result, variant) and resource handles are described as opaque
// values of the right size, which the printer shows by address.
//
//	desc, err := witdesc.Describe(&wit.TypeDef{Kind: &wit.Record{...}})
//	s := printer.New(mem).PrintNested(addr, desc)
package witdesc
