// Package layout computes wasm32 sizes, alignments and field offsets for
// type descriptors, and defines the in-memory header layout of the guest
// containers the printer understands.
//
// # Layout Rules
//
//	Type            Size    Alignment
//	──────────────────────────────────
//	bool, char      1       1
//	short           2       2
//	int, float      4       4
//	pointer         4       4
//	long long       8       8
//	double          8       8
//	long double     16      16
//	record          sum     max field align
//	T[N]            N*T     T align
//
// Record sizes given on a descriptor are authoritative; computed sizes are
// the end of the last field rounded up to the record's alignment.
package layout
