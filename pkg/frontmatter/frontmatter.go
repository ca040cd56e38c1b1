// Package frontmatter provides utilities for parsing and formatting
// YAML and TOML frontmatter in markdown files.
package frontmatter

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Delimiters recognized at the start of a document.
const (
	YAMLDelimiter = "---"
	TOMLDelimiter = "+++"
)

var (
	// ErrMissingFrontmatter is returned by MustParse when no frontmatter is found.
	ErrMissingFrontmatter = errors.New("missing frontmatter")

	// ErrUnclosedFrontmatter is returned when the opening delimiter has no
	// matching closing delimiter.
	ErrUnclosedFrontmatter = errors.New("missing closing frontmatter delimiter")

	// ErrInvalidYAML is returned when a "---" block is not valid YAML.
	ErrInvalidYAML = errors.New("invalid YAML frontmatter")

	// ErrInvalidTOML is returned when a "+++" block is not valid TOML.
	ErrInvalidTOML = errors.New("invalid TOML frontmatter")
)

// Parse extracts frontmatter and body content from a reader.
// If no frontmatter is present, matter is left untouched and the full
// content is returned as body.
func Parse[T any](r io.Reader, matter *T) (body []byte, err error) {
	return parse(r, matter, false)
}

// MustParse is like Parse but returns ErrMissingFrontmatter if no
// frontmatter is found.
func MustParse[T any](r io.Reader, matter *T) (body []byte, err error) {
	return parse(r, matter, true)
}

func parse[T any](r io.Reader, matter *T, required bool) ([]byte, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	delim, rest := detectDelimiter(content)
	if delim == "" {
		if required {
			return nil, ErrMissingFrontmatter
		}
		return content, nil
	}

	fm, body, ok := split(rest, delim)
	if !ok {
		return nil, ErrUnclosedFrontmatter
	}

	if err := unmarshal(delim, fm, matter); err != nil {
		return nil, err
	}
	return body, nil
}

// utf8BOM is stripped from the start of a document before looking for the
// opening delimiter.
var utf8BOM = []byte("\uFEFF")

// delimiterOf returns the delimiter line consists of, or "". Trailing
// whitespace and carriage returns are ignored.
func delimiterOf(line []byte) string {
	switch string(bytes.TrimRight(line, " \t\r")) {
	case YAMLDelimiter:
		return YAMLDelimiter
	case TOMLDelimiter:
		return TOMLDelimiter
	}
	return ""
}

// detectDelimiter returns the delimiter that opens content and everything
// after the opening line, or "" when the first line is not a delimiter.
func detectDelimiter(content []byte) (string, []byte) {
	line, rest, found := bytes.Cut(bytes.TrimPrefix(content, utf8BOM), []byte("\n"))
	if !found {
		return "", nil
	}
	return delimiterOf(line), rest
}

// split separates the frontmatter block from the body at the first line
// matching delim.
func split(rest []byte, delim string) (matter, body []byte, ok bool) {
	offset := 0
	for offset < len(rest) {
		line := rest[offset:]
		next := len(rest)
		if end := bytes.IndexByte(line, '\n'); end >= 0 {
			line = line[:end]
			next = offset + end + 1
		}

		if delimiterOf(line) == delim {
			return rest[:offset], rest[next:], true
		}
		offset = next
	}
	return nil, nil, false
}

func unmarshal(delim string, data []byte, matter any) error {
	switch delim {
	case TOMLDelimiter:
		if err := toml.Unmarshal(data, matter); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTOML, err)
		}
	default:
		if err := yaml.Unmarshal(data, matter); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
	}
	return nil
}

// ParseHeader parses only the frontmatter from the reader.
// It stops reading after the closing delimiter; the body is not consumed.
// Returns nil if no frontmatter is found (matter remains empty).
func ParseHeader(r io.Reader, matter any) error {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		return scanner.Err()
	}
	delim := delimiterOf(bytes.TrimPrefix(scanner.Bytes(), utf8BOM))
	if delim == "" {
		return nil
	}

	var buf bytes.Buffer
	for scanner.Scan() {
		line := scanner.Bytes()
		if delimiterOf(line) == delim {
			return unmarshal(delim, buf.Bytes(), matter)
		}
		buf.Write(line)
		buf.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return ErrUnclosedFrontmatter
}

// Format formats content with YAML frontmatter.
// The matter struct is serialized to YAML and wrapped in "---" delimiters,
// followed by the body content.
func Format(matter any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(YAMLDelimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(matter); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	buf.WriteString(YAMLDelimiter + "\n")
	writeBody(&buf, body)
	return buf.Bytes(), nil
}

// FormatTOML formats content with TOML frontmatter wrapped in "+++" delimiters.
func FormatTOML(matter any, body string) ([]byte, error) {
	data, err := toml.Marshal(matter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(TOMLDelimiter + "\n")
	buf.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		buf.WriteString("\n")
	}
	buf.WriteString(TOMLDelimiter + "\n")
	writeBody(&buf, body)
	return buf.Bytes(), nil
}

func writeBody(buf *bytes.Buffer, body string) {
	if body == "" {
		return
	}
	buf.WriteString("\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
}
