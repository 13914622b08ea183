package printer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/wippyai/wasm-valueprinter/typedesc"
)

var (
	utf16Decoding = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	utf32Decoding = utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
)

// FormatString renders a buffer of code units of character type char as a
// double-quoted UTF-8 string literal.
func FormatString(char *typedesc.Type, data []byte) (string, error) {
	text, err := transcode(char, data)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(text) + 2)
	b.WriteByte('"')
	for _, r := range text {
		writeEscapedRune(&b, r)
	}
	b.WriteByte('"')
	return b.String(), nil
}

func transcode(char *typedesc.Type, data []byte) (string, error) {
	var enc encoding.Encoding
	switch char.Width {
	case 2:
		enc = utf16Decoding
	case 4:
		enc = utf32Decoding
	default:
		if utf8.Valid(data) {
			return string(data), nil
		}
		return strings.ToValidUTF8(string(data), string(utf8.RuneError)), nil
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// readString reads a character buffer starting at addr. A bounded read takes
// exactly n code units; an unbounded one stops before the first zero code
// unit or after limit units.
func (p *Printer) readString(addr uint32, char *typedesc.Type, n uint32, bounded bool) (string, error) {
	unit := uint32(char.Width)
	if unit == 0 {
		unit = 1
	}

	if !bounded {
		var err error
		n, err = p.terminatedLength(addr, unit)
		if err != nil {
			return "", err
		}
	}

	if n == 0 {
		return FormatString(char, nil)
	}
	size, err := span(n, unit)
	if err != nil {
		return "", err
	}
	data, err := p.mem.Read(addr, size)
	if err != nil {
		return "", err
	}
	return FormatString(char, data)
}

func (p *Printer) terminatedLength(addr, unit uint32) (uint32, error) {
	var n uint32
	for n < p.cfg.maxString {
		v, err := readUnsigned(p.mem, addr+n*unit, uint8(unit))
		if err != nil {
			return 0, err
		}
		if v == 0 {
			break
		}
		n++
	}
	return n, nil
}
