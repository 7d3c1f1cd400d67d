// Package encoding wraps around the various encoding stuff in
// golang.org/x/text/encoding. Part of the reason this exists is that
// the package names such as "unicode" clash with the stdlib, and
// it's rather easier if we just hide it from xmltree.
package encoding

import (
	"bytes"
	"fmt"
	"strings"

	enc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// Load resolves a case-insensitive IANA-ish encoding label to a
// golang.org/x/text/encoding.Encoding, or nil if the label is
// unrecognized.
func Load(name string) enc.Encoding {
	switch strings.ToLower(name) {
	case "utf8", "utf-8":
		return unicode.UTF8
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case "utf-16le", "utf16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "utf-16be", "utf16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "euc-jp":
		return japanese.EUCJP
	case "shift_jis", "shift-jis", "shiftjis", "cp932":
		return japanese.ShiftJIS
	case "jis", "iso-2022-jp":
		return japanese.ISO2022JP
	case "big5":
		return traditionalchinese.Big5
	case "euc-kr":
		return korean.EUCKR
	case "hz-gb2312":
		return simplifiedchinese.HZGB2312
	case "cp437":
		return charmap.CodePage437
	case "cp866":
		return charmap.CodePage866
	case "iso-8859-10":
		return charmap.ISO8859_10
	case "iso-8859-13":
		return charmap.ISO8859_13
	case "iso-8859-14":
		return charmap.ISO8859_14
	case "iso-8859-15":
		return charmap.ISO8859_15
	case "iso-8859-16":
		return charmap.ISO8859_16
	case "iso-8859-2":
		return charmap.ISO8859_2
	case "iso-8859-3":
		return charmap.ISO8859_3
	case "iso-8859-4":
		return charmap.ISO8859_4
	case "iso-8859-5":
		return charmap.ISO8859_5
	case "iso-8859-6":
		return charmap.ISO8859_6
	case "iso-8859-7":
		return charmap.ISO8859_7
	case "iso-8859-8":
		return charmap.ISO8859_8
	case "koi8r":
		return charmap.KOI8R
	case "koir8u":
		return charmap.KOI8U
	case "macintosh":
		return charmap.Macintosh
	case "macintoshcyrillic":
		return charmap.MacintoshCyrillic
	case "windows1250":
		return charmap.Windows1250
	case "windows1251":
		return charmap.Windows1251
	case "iso-8859-1", "windows1252":
		return charmap.Windows1252
	case "windows1253":
		return charmap.Windows1253
	case "windows1254":
		return charmap.Windows1254
	case "windows1255":
		return charmap.Windows1255
	case "windows1256":
		return charmap.Windows1256
	case "windows1257":
		return charmap.Windows1257
	case "windows1258":
		return charmap.Windows1258
	case "windows874":
		return charmap.Windows874
	case "xuserdefined":
		return charmap.XUserDefined
	}
	return nil
}

// ErrUnsupported is returned by Detect when the input carries a BOM
// this library refuses to handle (UTF-32).
var ErrUnsupported = fmt.Errorf("encoding not supported")

// ErrMismatch is returned by Detect when a BOM-detected encoding
// disagrees with the encoding named in the XML declaration.
type ErrMismatch struct {
	FromBOM  string
	Declared string
}

func (e *ErrMismatch) Error() string {
	return fmt.Sprintf("encoding mismatch: BOM indicates %q but declaration says %q", e.FromBOM, e.Declared)
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF32LE = []byte{0xFF, 0xFE, 0x00, 0x00}
	bomUTF32BE = []byte{0x00, 0x00, 0xFE, 0xFF}

	declUTF16LE = []byte{0x3C, 0x00, 0x3F, 0x00}
	declUTF16BE = []byte{0x00, 0x3C, 0x00, 0x3F}
)

// Result is the outcome of Detect: the resolved encoding label and the
// input transcoded to UTF-8, with any BOM already stripped.
type Result struct {
	Name string
	UTF8 []byte
}

// Detect implements the encoding-detection order: BOM sniffing, then
// UTF-16-without-BOM heuristics on the "<?xml" prefix, then the
// declared "encoding=" pseudo-attribute read as ASCII, defaulting to
// UTF-8. It returns the input transcoded to UTF-8.
//
// When both a BOM (or the BOM-less UTF-16 heuristic) and a declared
// "encoding=" pseudo-attribute are present and they disagree, Detect
// returns an *ErrMismatch rather than silently preferring one over
// the other.
func Detect(b []byte) (*Result, error) {
	if bytes.HasPrefix(b, bomUTF32LE) || bytes.HasPrefix(b, bomUTF32BE) {
		return nil, ErrUnsupported
	}

	var bomName string
	body := b
	switch {
	case bytes.HasPrefix(b, bomUTF8):
		bomName, body = "UTF-8", b[len(bomUTF8):]
	case bytes.HasPrefix(b, bomUTF16LE):
		bomName, body = "UTF-16LE", b[len(bomUTF16LE):]
	case bytes.HasPrefix(b, bomUTF16BE):
		bomName, body = "UTF-16BE", b[len(bomUTF16BE):]
	case len(b) >= 4 && bytes.Equal(b[:4], declUTF16LE):
		bomName = "UTF-16LE"
	case len(b) >= 4 && bytes.Equal(b[:4], declUTF16BE):
		bomName = "UTF-16BE"
	}

	if bomName == "" {
		if name, ok := sniffDeclaredEncoding(body); ok {
			return decodeWith(name, body)
		}
		return &Result{Name: "UTF-8", UTF8: body}, nil
	}

	res, err := decodeWith(bomName, body)
	if err != nil {
		return nil, err
	}
	// Sniff the declaration from the now-decoded UTF-8 text: the raw
	// bytes are only ASCII-scannable once transcoded, since a
	// BOM-less UTF-16 document interleaves nulls with every ASCII
	// byte of "encoding=...".
	if declared, ok := sniffDeclaredEncoding(res.UTF8); ok && !encodingsAgree(bomName, declared) {
		return nil, &ErrMismatch{FromBOM: bomName, Declared: declared}
	}
	return res, nil
}

// encodingsAgree reports whether a declared "encoding=" value is
// consistent with the encoding the BOM (or BOM-less heuristic)
// already established. An unqualified "UTF-16" declaration names the
// same family as either detected endianness, since the BOM is what
// disambiguated it in the first place.
func encodingsAgree(bomName, declared string) bool {
	if strings.EqualFold(bomName, declared) {
		return true
	}
	if strings.EqualFold(declared, "UTF-16") || strings.EqualFold(declared, "UTF16") {
		return strings.EqualFold(bomName, "UTF-16LE") || strings.EqualFold(bomName, "UTF-16BE")
	}
	return false
}

func decodeWith(name string, b []byte) (*Result, error) {
	if strings.EqualFold(name, "UTF-8") {
		return &Result{Name: name, UTF8: b}, nil
	}
	e := Load(name)
	if e == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, name)
	}
	out, err := e.NewDecoder().Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("failed to decode as %s: %w", name, err)
	}
	return &Result{Name: name, UTF8: out}, nil
}

// sniffDeclaredEncoding looks for `encoding="..."` or `encoding='...'`
// before the first '>' of b (or within the first 200 bytes when no '>'
// comes sooner), treating b as ASCII (safe: the XML
// declaration itself is required to be ASCII-only up to this
// pseudo-attribute).
func sniffDeclaredEncoding(b []byte) (string, bool) {
	end := bytes.IndexByte(b, '>')
	if end < 0 || end > 200 {
		if len(b) < 200 {
			end = len(b)
		} else {
			end = 200
		}
	}
	line := b[:end]
	idx := bytes.Index(line, []byte("encoding"))
	if idx < 0 {
		return "", false
	}
	rest := line[idx+len("encoding"):]
	rest = bytes.TrimLeft(rest, " \t\r\n")
	if len(rest) == 0 || rest[0] != '=' {
		return "", false
	}
	rest = rest[1:]
	rest = bytes.TrimLeft(rest, " \t\r\n")
	if len(rest) == 0 {
		return "", false
	}
	q := rest[0]
	if q != '\'' && q != '"' {
		return "", false
	}
	rest = rest[1:]
	end2 := bytes.IndexByte(rest, q)
	if end2 < 0 {
		return "", false
	}
	return string(rest[:end2]), true
}
