package llmtool

// PromptPreset is a reusable block of constraints.
type PromptPreset struct {
	Constraints []string
}

// ApplyPresets puts preset constraints ahead of the ones already in ps.
func ApplyPresets(ps StructuredPromptSpec, presets ...PromptPreset) StructuredPromptSpec {
	if len(presets) == 0 {
		return ps
	}
	var merged []string
	for _, p := range presets {
		merged = append(merged, p.Constraints...)
	}
	ps.Constraints = append(merged, ps.Constraints...)
	return ps
}

func PresetStrictJSON() PromptPreset {
	return PromptPreset{
		Constraints: []string{
			"Return JSON only, matching the output fields exactly.",
			"No markdown fences or trailing commas.",
		},
	}
}

// PresetOnlyGivenContext keeps the model from claiming it read files it
// was never sent.
func PresetOnlyGivenContext() PromptPreset {
	return PromptPreset{
		Constraints: []string{
			"Base the answer only on the details given above; the project files themselves are not available.",
		},
	}
}
