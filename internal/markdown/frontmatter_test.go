package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMeta struct {
	Key    string   `yaml:"key"`
	Name   string   `yaml:"name"`
	Source string   `yaml:"source,omitempty"`
	Files  []string `yaml:"files,omitempty"`
}

func TestParse_AllFields(t *testing.T) {
	input := `---
key: business-continuity
name: "Business Continuity"
source: personal
files:
  - bcp.pdf
  - dr-plan.docx
---

Recovery objectives are four hours.
`
	meta, body, err := Parse[testMeta](strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "business-continuity", meta.Key)
	assert.Equal(t, "Business Continuity", meta.Name)
	assert.Equal(t, "personal", meta.Source)
	assert.Equal(t, []string{"bcp.pdf", "dr-plan.docx"}, meta.Files)
	assert.Equal(t, "Recovery objectives are four hours.", body)
}

func TestParse_EmptyBody(t *testing.T) {
	input := `---
key: governance
name: Governance
---
`
	meta, body, err := Parse[testMeta](strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "governance", meta.Key)
	assert.Equal(t, "", body)
}

func TestParse_NoFrontmatter(t *testing.T) {
	meta, body, err := Parse[testMeta](strings.NewReader("Just some plain notes."))
	require.NoError(t, err)
	assert.Equal(t, "", meta.Key)
	assert.Equal(t, "Just some plain notes.", body)
}

func TestParse_MalformedYAML(t *testing.T) {
	_, _, err := Parse[testMeta](strings.NewReader("---\n{{invalid yaml\n---\n"))
	assert.Error(t, err)
}

func TestMarshal_RoundTrip(t *testing.T) {
	original := testMeta{Key: "transition", Name: "Transition", Files: []string{"plan.pdf"}}
	body := "Handover runs over six weeks.\n\n- Week 1: shadowing\n- Week 2: reverse shadowing"

	data, err := Marshal(original, body)
	require.NoError(t, err)

	parsed, parsedBody, err := Parse[testMeta](strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
	assert.Equal(t, body, parsedBody)
}

func TestMarshal_EmptyBody(t *testing.T) {
	data, err := Marshal(testMeta{Key: "governance", Name: "Governance"}, "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "---\n"))

	_, body, err := Parse[testMeta](strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, "", body)
}

func TestParse_CRLF(t *testing.T) {
	input := "---\r\nkey: governance\r\nname: Governance\r\n---\r\n\r\nLine one\r\nLine two\r\n"
	meta, body, err := Parse[testMeta](strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "governance", meta.Key)
	assert.Equal(t, "Line one\nLine two", body)
}

func TestMarshal_IndentsLists(t *testing.T) {
	data, err := Marshal(testMeta{Key: "transition", Name: "Transition", Files: []string{"plan.pdf"}}, "")
	require.NoError(t, err)
	assert.Contains(t, string(data), "files:\n  - plan.pdf\n")
}
