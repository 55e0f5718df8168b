package llmtool

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStructuredPrompt_RendersSections(t *testing.T) {
	ps := StructuredPromptSpec{
		Purpose:      "Analyze this project.",
		Background:   []string{"App Name: Demo", "  ", "Bundle ID: com.demo"},
		OutputFormat: "JSON only.",
		Language:     "Arabic",
		OutputFields: []PromptField{
			{Name: "readinessScore", Type: "number", Required: true, Description: "0-100."},
			{Name: "notes", Type: "[]string"},
			{Name: " "},
		},
		Constraints: []string{"No markdown.", ""},
	}

	out, err := BuildStructuredPrompt(ps)
	require.NoError(t, err)

	for _, sec := range []string{"[PURPOSE]", "[BACKGROUND]", "[OUTPUT]", "[CONSTRAINTS]", "[OUTPUT_FORMAT]", "[LANGUAGE]"} {
		assert.Contains(t, out, sec)
	}
	assert.Contains(t, out, "App Name: Demo\nBundle ID: com.demo\n")
	assert.Contains(t, out, "- readinessScore (number, required): 0-100.")
	assert.Contains(t, out, "- notes ([]string, optional)")
	assert.Contains(t, out, "- No markdown.\n")
	assert.True(t, strings.HasSuffix(out, "Arabic\n"))
	assert.Less(t, strings.Index(out, "[PURPOSE]"), strings.Index(out, "[LANGUAGE]"))
}

func TestBuildStructuredPrompt_OmitsEmptySections(t *testing.T) {
	out, err := BuildStructuredPrompt(StructuredPromptSpec{Purpose: "Only purpose."})
	require.NoError(t, err)
	assert.Equal(t, "[PURPOSE]\nOnly purpose.\n", out)
}

func TestBuildStructuredPrompt_RequiresPurpose(t *testing.T) {
	_, err := BuildStructuredPrompt(StructuredPromptSpec{Language: "English"})
	assert.Error(t, err)
}
