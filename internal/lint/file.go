package lint

import "strings"

// File holds one AutoHotkey script and its source. Text is authoritative;
// Lines is derived from it with line terminators stripped.
type File struct {
	AbsPath string
	Path    string
	Text    string
	Lines   []string
}

// NewFile returns a File for text. path is the display path used in
// diagnostics, absPath the location on disk (may be empty for stdin).
func NewFile(absPath, path, text string) *File {
	return &File{
		AbsPath: absPath,
		Path:    path,
		Text:    text,
		Lines:   SplitLines(text),
	}
}

// SplitLines splits text on "\n", "\r\n" and "\r". A terminator at the end
// of text does not start a new line, so "" yields no lines and "a\n" one.
func SplitLines(text string) []string {
	var lines []string
	for len(text) > 0 {
		i := strings.IndexAny(text, "\r\n")
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i])
		if text[i] == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			i++
		}
		text = text[i+1:]
	}
	return lines
}

// HasTrailingNewline reports whether the file ends in a line terminator.
// A lone "\r" counts, as it does for SplitLines.
func (f *File) HasTrailingNewline() bool {
	return strings.HasSuffix(f.Text, "\n") || strings.HasSuffix(f.Text, "\r")
}
