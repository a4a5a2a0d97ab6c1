package markdown

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Parse reads YAML frontmatter into T and returns the trimmed body.
// Windows line endings left by some editors are normalised first.
func Parse[T any](r io.Reader) (T, string, error) {
	var meta T
	data, err := io.ReadAll(r)
	if err != nil {
		return meta, "", fmt.Errorf("reading document: %w", err)
	}
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return meta, "", fmt.Errorf("parsing frontmatter: %w", err)
	}
	return meta, strings.TrimSpace(string(body)), nil
}

// Marshal writes meta as a YAML frontmatter block followed by body.
func Marshal[T any](meta T, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return nil, fmt.Errorf("marshaling frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling frontmatter: %w", err)
	}
	buf.WriteString("---\n")

	if body = strings.TrimSpace(body); body != "" {
		buf.WriteString("\n" + body + "\n")
	}
	return buf.Bytes(), nil
}
