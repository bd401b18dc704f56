package lint

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// ErrInvalidUTF8 is returned when a script without a UTF-16 byte order mark
// is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("file is not valid UTF-8")

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts raw script bytes to text. UTF-16 input is recognised by its
// byte order mark and transcoded; anything else must be valid UTF-8. A UTF-8
// byte order mark is kept so rules see the file as written.
func Decode(data []byte) (string, error) {
	if bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) {
		if len(data)%2 != 0 {
			return "", fmt.Errorf("decoding UTF-16: odd byte count %d", len(data))
		}
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decoding UTF-16: %w", err)
		}
		return string(out), nil
	}
	if !utf8.Valid(data) {
		return "", ErrInvalidUTF8
	}
	return string(data), nil
}

// ReadFile reads and decodes the script at path. The display path is path
// made relative to root with forward slashes; when that is not possible the
// path is used as given.
func ReadFile(root, path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	text, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return NewFile(abs, DisplayPath(root, abs), text), nil
}

// DisplayPath returns path relative to root using forward slashes.
func DisplayPath(root, path string) string {
	if root == "" {
		return filepath.ToSlash(path)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return filepath.ToSlash(path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
