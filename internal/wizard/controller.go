// Package wizard owns the three-step flow: configure, review the analysis,
// view the generated bridge code. One Controller holds one session.
package wizard

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"react2android/internal/types"
)

// Analyzer is the outbound side of the wizard.
type Analyzer interface {
	Analyze(ctx context.Context, cfg types.AppConfiguration) (types.AnalysisResult, error)
	GenerateBridge(ctx context.Context, features []string) (types.BridgeArtifact, error)
}

// ConfigPatch carries the fields a user edited; nil fields are left alone.
type ConfigPatch struct {
	TargetAddress     *string                `json:"targetAddress,omitempty"`
	ApplicationName   *string                `json:"applicationName,omitempty"`
	PackageIdentifier *string                `json:"packageIdentifier,omitempty"`
	AccentColor       *string                `json:"accentColor,omitempty"`
	ApplicationKind   *types.ApplicationKind `json:"applicationKind,omitempty"`
}

// acceptedArchives mirrors the file picker's accept filter.
var acceptedArchives = map[string]bool{".zip": true, ".rar": true}

type Controller struct {
	an  Analyzer
	log *slog.Logger

	mu      sync.Mutex
	st      State
	changed chan struct{}
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func NewController(an Analyzer, opts ...Option) *Controller {
	c := &Controller{
		an:      an,
		log:     slog.Default(),
		st:      newState(),
		changed: make(chan struct{}),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With("component", "wizard")
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.clone()
}

// UpdateConfig applies patch while configuring.
func (c *Controller) UpdateConfig(p ConfigPatch) (State, error) {
	if p.AccentColor != nil {
		if err := checkVar("accentColor", *p.AccentColor, "hexcolor", "accent color must be a hex color"); err != nil {
			return c.Snapshot(), err
		}
	}
	if p.ApplicationKind != nil && !p.ApplicationKind.Valid() {
		return c.Snapshot(), &ValidationError{Fields: []string{"applicationKind"}, Message: "unknown application kind"}
	}
	return c.mutate(func(s *State) error {
		if s.Step != StepConfiguring {
			return ErrInvalidStep
		}
		if p.TargetAddress != nil {
			s.Config.TargetAddress = strings.TrimSpace(*p.TargetAddress)
		}
		if p.ApplicationName != nil {
			s.Config.ApplicationName = *p.ApplicationName
		}
		if p.PackageIdentifier != nil {
			s.Config.PackageIdentifier = strings.TrimSpace(*p.PackageIdentifier)
		}
		if p.AccentColor != nil {
			s.Config.AccentColor = *p.AccentColor
		}
		if p.ApplicationKind != nil {
			s.Config.ApplicationKind = *p.ApplicationKind
		}
		return nil
	})
}

// SelectMode switches the mutually exclusive input selector.
func (c *Controller) SelectMode(m types.InputMode) (State, error) {
	if !m.Valid() {
		return c.Snapshot(), &ValidationError{Fields: []string{"mode"}, Message: "mode must be file or url"}
	}
	return c.mutate(func(s *State) error {
		if s.Step != StepConfiguring {
			return ErrInvalidStep
		}
		s.Mode = m
		return nil
	})
}

// SelectArtifact records a picked file by name and size only.
func (c *Controller) SelectArtifact(name string, size int64) (State, error) {
	name = strings.TrimSpace(name)
	if name == "" || !acceptedArchives[strings.ToLower(filepath.Ext(name))] {
		return c.Snapshot(), &ValidationError{Fields: []string{"sourceArtifactName"}, Message: "a .zip or .rar archive is required"}
	}
	if size < 0 {
		return c.Snapshot(), &ValidationError{Fields: []string{"size"}, Message: "size must not be negative"}
	}
	return c.mutate(func(s *State) error {
		if s.Step != StepConfiguring {
			return ErrInvalidStep
		}
		s.Config.SourceArtifactName = name
		s.Config.SourceArtifactSummary = types.ArtifactSummary(name, size)
		return nil
	})
}

// Back returns to the configuring step from anywhere. The configuration,
// and any prior result, are kept; a call still in flight becomes stale.
func (c *Controller) Back() State {
	st, _ := c.mutate(func(s *State) error {
		s.Step = StepConfiguring
		return nil
	})
	return st
}

// Reset starts the session over. An in-flight call keeps the busy flag set
// until it returns, and its response is discarded.
func (c *Controller) Reset() State {
	st, _ := c.mutate(func(s *State) error {
		busy, gen := s.Busy, s.Generation
		*s = newState()
		s.Busy, s.Generation = busy, gen
		return nil
	})
	return st
}

// StartAnalysis validates the configuration and runs the analysis call.
// The call is not canceled when ctx is; it runs to completion.
func (c *Controller) StartAnalysis(ctx context.Context) (State, error) {
	c.mu.Lock()
	if c.st.Step != StepConfiguring {
		c.mu.Unlock()
		return c.Snapshot(), ErrInvalidStep
	}
	if c.st.Busy {
		c.mu.Unlock()
		return c.Snapshot(), ErrBusy
	}
	if err := checkAnalysisInput(c.st); err != nil {
		c.st.Error = msgValidation
		c.notifyLocked()
		snap := c.st.clone()
		c.mu.Unlock()
		return snap, err
	}
	req := c.st.requestConfig()
	gen := c.beginLocked()
	c.mu.Unlock()

	res, err := c.an.Analyze(context.WithoutCancel(ctx), req)

	return c.finish(gen, "analysis", err, msgAnalysisFailed, func(s *State) {
		r := res.Clone()
		s.Analysis = &r
		s.Artifact = nil
		s.Step = StepReviewingAnalysis
	})
}

// GenerateBridge runs the bridge call with the stored result's
// suggested features, in order.
func (c *Controller) GenerateBridge(ctx context.Context) (State, error) {
	c.mu.Lock()
	if c.st.Step != StepReviewingAnalysis || c.st.Analysis == nil {
		c.mu.Unlock()
		return c.Snapshot(), ErrInvalidStep
	}
	if c.st.Busy {
		c.mu.Unlock()
		return c.Snapshot(), ErrBusy
	}
	features := c.st.Analysis.Clone().SuggestedFeatures
	gen := c.beginLocked()
	c.mu.Unlock()

	art, err := c.an.GenerateBridge(context.WithoutCancel(ctx), features)

	return c.finish(gen, "bridge", err, msgGenerationFailed, func(s *State) {
		a := art
		s.Artifact = &a
		s.Step = StepViewingArtifact
	})
}

// beginLocked marks a call as outstanding and returns its generation tag.
func (c *Controller) beginLocked() uint64 {
	c.st.Busy = true
	c.st.Error = ""
	c.touchLocked()
	c.notifyLocked()
	return c.st.Generation
}

// finish clears busy and applies the call outcome unless the state moved on.
func (c *Controller) finish(gen uint64, call string, callErr error, failMsg string, apply func(*State)) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.st.Busy = false
	defer c.notifyLocked()

	if gen != c.st.Generation {
		c.log.Warn("discarding late response", "call", call, "issued_gen", gen, "current_gen", c.st.Generation, "error", callErr)
		return c.st.clone(), ErrStale
	}
	if callErr != nil {
		c.log.Error("outbound call failed", "call", call, "error", callErr)
		c.st.Error = failMsg
		return c.st.clone(), callErr
	}
	apply(&c.st)
	c.touchLocked()
	return c.st.clone(), nil
}

// mutate applies a user action; on success it clears the error and bumps
// the generation.
func (c *Controller) mutate(fn func(*State) error) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := fn(&c.st); err != nil {
		return c.st.clone(), err
	}
	c.st.Error = ""
	c.touchLocked()
	c.notifyLocked()
	return c.st.clone(), nil
}

func (c *Controller) touchLocked() {
	c.st.Generation++
}

// notifyLocked wakes every subscriber.
func (c *Controller) notifyLocked() {
	close(c.changed)
	c.changed = make(chan struct{})
}
