package types

import (
	"fmt"
	"strings"
)

// Application kinds ---------------------------------------------------------------

// ApplicationKind is informational only; it is passed to the model as context.
type ApplicationKind string

const (
	KindPWA             ApplicationKind = "PWA"
	KindAndroid         ApplicationKind = "Android (Capacitor/Native)"
	KindIOS             ApplicationKind = "iOS (Capacitor/Native)"
	KindReactNativeExpo ApplicationKind = "React Native Expo"
)

var applicationKinds = []ApplicationKind{KindPWA, KindAndroid, KindIOS, KindReactNativeExpo}

// ApplicationKinds lists the supported kinds in display order.
func ApplicationKinds() []ApplicationKind {
	out := make([]ApplicationKind, len(applicationKinds))
	copy(out, applicationKinds)
	return out
}

func (k ApplicationKind) Valid() bool {
	for _, known := range applicationKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Input modes ---------------------------------------------------------------------

type InputMode string

const (
	ModeFile InputMode = "file"
	ModeURL  InputMode = "url"
)

func (m InputMode) Valid() bool {
	return m == ModeFile || m == ModeURL
}

// Configuration -------------------------------------------------------------------

const (
	DefaultPackageIdentifier = "com.myapp.pro"
	DefaultAccentColor       = "#3b82f6"
)

// AppConfiguration is the per-session form value edited through the wizard.
type AppConfiguration struct {
	TargetAddress         string          `json:"targetAddress,omitempty"`
	ApplicationName       string          `json:"applicationName"`
	PackageIdentifier     string          `json:"packageIdentifier"`
	AccentColor           string          `json:"accentColor"`
	ApplicationKind       ApplicationKind `json:"applicationKind"`
	SourceArtifactName    string          `json:"sourceArtifactName,omitempty"`
	SourceArtifactSummary string          `json:"sourceArtifactSummary,omitempty"`
}

// DefaultConfiguration is the value a new session starts with.
func DefaultConfiguration() AppConfiguration {
	return AppConfiguration{
		PackageIdentifier: DefaultPackageIdentifier,
		AccentColor:       DefaultAccentColor,
		ApplicationKind:   KindAndroid,
	}
}

// ArtifactSummary describes a selected file from its name and size alone.
// The file contents are never read.
func ArtifactSummary(name string, size int64) string {
	return fmt.Sprintf("Project name: %s, Size: %d bytes.", strings.TrimSpace(name), size)
}

// Model outputs -------------------------------------------------------------------

// AnalysisResult is the structured readiness analysis returned by the model.
// ReadinessScore is nominally 0-100 but is not range-checked.
type AnalysisResult struct {
	ReadinessScore      float64  `json:"readinessScore" prompt_desc:"Readiness score for Android conversion (0-100)."`
	Suggestions         []string `json:"suggestions" prompt_desc:"3-5 suggestions for optimizing the UI for Android (Material Design, safe areas)."`
	SuggestedFeatures   []string `json:"suggestedFeatures" prompt_desc:"Suggested native Android features (Push notifications, Deep linking, Splash screen)."`
	CodeSnippet         string   `json:"codeSnippet" prompt_desc:"A configuration code snippet for 'capacitor.config.ts'."`
	AndroidRequirements []string `json:"androidRequirements" prompt_desc:"Specific Android requirements (SDK versions, Gradle configurations)."`
}

// Clone returns a deep copy so callers cannot alias stored slices.
func (r AnalysisResult) Clone() AnalysisResult {
	r.Suggestions = cloneStrings(r.Suggestions)
	r.SuggestedFeatures = cloneStrings(r.SuggestedFeatures)
	r.AndroidRequirements = cloneStrings(r.AndroidRequirements)
	return r
}

// BridgeArtifact is the free-text bridge code, displayed verbatim.
type BridgeArtifact string

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
