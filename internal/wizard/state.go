package wizard

import (
	"fmt"

	"react2android/internal/types"
)

// Step enumerates the wizard screens.
type Step int

const (
	StepConfiguring       Step = iota + 1 // 1
	StepReviewingAnalysis                 // 2
	StepViewingArtifact                   // 3
)

var stepNames = map[Step]string{
	StepConfiguring:       "configuring",
	StepReviewingAnalysis: "reviewing_analysis",
	StepViewingArtifact:   "viewing_artifact",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return fmt.Sprintf("step(%d)", int(s))
}

func (s Step) MarshalText() ([]byte, error) {
	if _, ok := stepNames[s]; !ok {
		return nil, fmt.Errorf("wizard: unknown step %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Step) UnmarshalText(b []byte) error {
	for k, v := range stepNames {
		if v == string(b) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("wizard: unknown step %q", string(b))
}

// StepInfo is one entry of the progress indicator.
type StepInfo struct {
	Step  Step   `json:"step"`
	Index int    `json:"index"`
	Label string `json:"label"`
}

// Steps returns the progress indicator entries in order.
func Steps() []StepInfo {
	return []StepInfo{
		{Step: StepConfiguring, Index: 1, Label: "Setup"},
		{Step: StepReviewingAnalysis, Index: 2, Label: "Analysis"},
		{Step: StepViewingArtifact, Index: 3, Label: "Conversion"},
	}
}

// User-visible failure messages. Both outbound calls report through Error.
const (
	msgValidation       = "Please complete all required fields."
	msgAnalysisFailed   = "Project analysis failed. Please try again."
	msgGenerationFailed = "Bridge code generation failed. Please try again."
)

// State is the whole session: configuration, results and flow flags.
// Generation increases on every change; outbound calls compare it on return.
type State struct {
	Step       Step                   `json:"step"`
	Mode       types.InputMode        `json:"mode"`
	Config     types.AppConfiguration `json:"config"`
	Analysis   *types.AnalysisResult  `json:"analysis,omitempty"`
	Artifact   *types.BridgeArtifact  `json:"artifact,omitempty"`
	Busy       bool                   `json:"busy"`
	Error      string                 `json:"error,omitempty"`
	Generation uint64                 `json:"generation"`
}

func newState() State {
	return State{
		Step:   StepConfiguring,
		Mode:   types.ModeFile,
		Config: types.DefaultConfiguration(),
	}
}

// clone deep-copies s so snapshots never alias controller memory.
func (s State) clone() State {
	if s.Analysis != nil {
		a := s.Analysis.Clone()
		s.Analysis = &a
	}
	if s.Artifact != nil {
		a := *s.Artifact
		s.Artifact = &a
	}
	return s
}

// requestConfig is the configuration sent for analysis: only the input of
// the selected mode is kept.
func (s State) requestConfig() types.AppConfiguration {
	cfg := s.Config
	switch s.Mode {
	case types.ModeURL:
		cfg.SourceArtifactName = ""
		cfg.SourceArtifactSummary = ""
	case types.ModeFile:
		cfg.TargetAddress = ""
	}
	return cfg
}
