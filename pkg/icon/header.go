package icon

import (
	"fmt"
	"io"
	"strings"
)

// DefaultPrefix is prepended to the icon name for the array and file.
const DefaultPrefix = "icon_"

// Identifier turns a file base name into a C identifier.
func Identifier(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, name)
}

// WriteHeader renders the mask as a PROGMEM array declaration named name.
func WriteHeader(w io.Writer, name string, m *Mask) error {
	literals := make([]string, len(m.Bits))
	for n, b := range m.Bits {
		literals[n] = fmt.Sprintf("%#x", b)
	}
	_, err := fmt.Fprintf(w, "const uint8_t %s[] PROGMEM = {\n%s\n};\n", name, strings.Join(literals, ","))
	return err
}
