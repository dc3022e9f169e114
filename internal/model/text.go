package model

import (
	"encoding/binary"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// EncodeWide converts a UTF-8 string into UTF-16 code units.
// Invalid input is replaced with U+FFFD rather than rejected.
func EncodeWide(s string) []uint16 {
	b, err := utf16le.NewEncoder().Bytes([]byte(strings.ToValidUTF8(s, "�")))
	if err != nil {
		return nil
	}
	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b[2*i:])
	}
	return out
}

// DecodeWide converts UTF-16 code units into a UTF-8 string
func DecodeWide(w []uint16) string {
	b := make([]byte, 2*len(w))
	for i, u := range w {
		binary.LittleEndian.PutUint16(b[2*i:], u)
	}
	s, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(s)
}

// EncodeANSI converts a string into Windows-1252 bytes.
// Characters outside the code page become '?'.
func EncodeANSI(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			out = append(out, b)
		} else {
			out = append(out, '?')
		}
	}
	return out
}

// DecodeANSI converts Windows-1252 bytes into a string
func DecodeANSI(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(charmap.Windows1252.DecodeByte(c))
	}
	return sb.String()
}

// trimNul cuts a code unit array at its first terminator
func trimNul(w []uint16) []uint16 {
	for i, u := range w {
		if u == 0 {
			return w[:i]
		}
	}
	return w
}

// SetFaceName stores name as the null-terminated face name, truncating it to fit
func (lf *LogFont) SetFaceName(name string) {
	lf.FaceName = [FaceNameLen]uint16{}
	w := EncodeWide(name)
	if len(w) > FaceNameLen-1 {
		w = w[:FaceNameLen-1]
	}
	copy(lf.FaceName[:], w)
}

// Name returns the face name
func (lf LogFont) Name() string {
	return DecodeWide(trimNul(lf.FaceName[:]))
}

// NewDescription builds a header description from the application name and
// the picture title: "app\0title\0\0". An empty app yields no description.
func NewDescription(app, title string) []uint16 {
	if app == "" && title == "" {
		return nil
	}
	d := EncodeWide(app)
	d = append(d, 0)
	d = append(d, EncodeWide(title)...)
	d = append(d, 0, 0)
	return d
}

// DescriptionSegments splits a description into its non-empty segments
func DescriptionSegments(d []uint16) []string {
	var segs []string
	start := 0
	for i, u := range d {
		if u != 0 {
			continue
		}
		if i > start {
			segs = append(segs, DecodeWide(d[start:i]))
		}
		start = i + 1
	}
	if start < len(d) {
		segs = append(segs, DecodeWide(d[start:]))
	}
	return segs
}
