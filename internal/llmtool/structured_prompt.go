package llmtool

import (
	"bytes"
	"fmt"
	"strings"
)

// PromptField describes a single output field in a simple schema.
type PromptField struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

// StructuredPromptSpec defines the sections for a structured prompt.
// Empty sections are omitted from the rendered text.
type StructuredPromptSpec struct {
	Purpose      string
	Background   []string
	OutputFields []PromptField
	Constraints  []string
	OutputFormat string
	Language     string
}

// BuildStructuredPrompt renders ps as bracketed sections.
func BuildStructuredPrompt(ps StructuredPromptSpec) (string, error) {
	if strings.TrimSpace(ps.Purpose) == "" {
		return "", fmt.Errorf("llmtool: purpose is empty")
	}

	var buf bytes.Buffer
	writeSection(&buf, "PURPOSE", ps.Purpose)
	writeSection(&buf, "BACKGROUND", formatLines(ps.Background))
	writeSection(&buf, "OUTPUT", formatFields(ps.OutputFields))
	writeSection(&buf, "CONSTRAINTS", formatList(ps.Constraints))
	writeSection(&buf, "OUTPUT_FORMAT", ps.OutputFormat)
	writeSection(&buf, "LANGUAGE", ps.Language)

	return strings.TrimSpace(buf.String()) + "\n", nil
}

func formatFields(fields []PromptField) string {
	if len(fields) == 0 {
		return ""
	}
	var buf strings.Builder
	for _, f := range fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			continue
		}
		req := "optional"
		if f.Required {
			req = "required"
		}
		if f.Description != "" {
			fmt.Fprintf(&buf, "- %s (%s, %s): %s\n", name, f.Type, req, f.Description)
		} else {
			fmt.Fprintf(&buf, "- %s (%s, %s)\n", name, f.Type, req)
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var buf strings.Builder
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		fmt.Fprintf(&buf, "- %s\n", item)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatLines(lines []string) string {
	var buf strings.Builder
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		buf.WriteString(l)
		buf.WriteString("\n")
	}
	return strings.TrimRight(buf.String(), "\n")
}

func writeSection(buf *bytes.Buffer, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	buf.WriteString("[")
	buf.WriteString(title)
	buf.WriteString("]\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}
