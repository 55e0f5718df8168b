package analysis

import (
	"strings"

	genai "google.golang.org/genai"

	"react2android/internal/llmtool"
	"react2android/internal/types"
)

const DefaultLanguage = "Arabic"

var analysisFields = llmtool.MustFieldsFromStruct(types.AnalysisResult{})

// analysisSchema mirrors types.AnalysisResult; every field is required.
func analysisSchema() *genai.Schema {
	str := &genai.Schema{Type: genai.TypeString}
	strList := &genai.Schema{Type: genai.TypeArray, Items: str}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"readinessScore":      {Type: genai.TypeNumber},
			"suggestions":         strList,
			"suggestedFeatures":   strList,
			"codeSnippet":         str,
			"androidRequirements": strList,
		},
		Required: requiredFields(),
	}
}

func requiredFields() []string {
	return llmtool.RequiredNames(analysisFields)
}

// sourceContext prefers the artifact summary and falls back to the address.
func sourceContext(cfg types.AppConfiguration) string {
	if s := strings.TrimSpace(cfg.SourceArtifactSummary); s != "" {
		return "Project Files Context: " + s
	}
	return "URL: " + strings.TrimSpace(cfg.TargetAddress)
}

func analysisPrompt(cfg types.AppConfiguration, language string) (string, error) {
	ps := llmtool.ApplyPresets(llmtool.StructuredPromptSpec{
		Purpose: "Analyze this React project for conversion to an Android application.",
		Background: []string{
			"App Name: " + cfg.ApplicationName,
			"Bundle ID: " + cfg.PackageIdentifier,
			"App Type: " + string(cfg.ApplicationKind),
			sourceContext(cfg),
		},
		OutputFields: analysisFields,
		Constraints: []string{
			"Provide a professional analysis, specifically for Android conversion.",
			"Give between 3 and 5 suggestions.",
		},
		OutputFormat: "Return the response in valid JSON format.",
		Language:     "Write all prose content in " + language + ".",
	}, llmtool.PresetStrictJSON(), llmtool.PresetOnlyGivenContext())
	return llmtool.BuildStructuredPrompt(ps)
}

func bridgePrompt(features []string, language string) (string, error) {
	return llmtool.BuildStructuredPrompt(llmtool.StructuredPromptSpec{
		Purpose: "Generate a TypeScript React Hook that provides access to these native Android features using Capacitor: " +
			strings.Join(features, ", ") + ".",
		Constraints: []string{
			"Expose one hook that covers every listed feature.",
		},
		Language: "Include comments in " + language + " explaining how to use it.",
	})
}
