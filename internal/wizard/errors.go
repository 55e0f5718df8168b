package wizard

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"react2android/internal/types"
)

var (
	ErrBusy        = errors.New("wizard: an outbound call is already in progress")
	ErrInvalidStep = errors.New("wizard: action not allowed in the current step")
	ErrStale       = errors.New("wizard: response discarded, state changed while the call was in flight")
)

// ValidationError is the ValidationFailure kind: a required or malformed
// input blocked the action before any call was issued.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed: " + e.Message
	}
	return "validation failed: " + e.Message + " (" + strings.Join(e.Fields, ", ") + ")"
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// analysisInput is the guard for leaving the configuring step.
type analysisInput struct {
	ApplicationName    string          `json:"applicationName" validate:"required"`
	Mode               types.InputMode `json:"mode" validate:"oneof=file url"`
	TargetAddress      string          `json:"targetAddress" validate:"required_if=Mode url"`
	SourceArtifactName string          `json:"sourceArtifactName" validate:"required_if=Mode file"`
}

func checkAnalysisInput(s State) error {
	in := analysisInput{
		ApplicationName:    s.Config.ApplicationName,
		Mode:               s.Mode,
		TargetAddress:      s.Config.TargetAddress,
		SourceArtifactName: s.Config.SourceArtifactName,
	}
	return toValidationError(validate.Struct(in), msgValidation)
}

func checkVar(field string, value any, tag, msg string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}
	return &ValidationError{Fields: []string{field}, Message: msg}
}

func toValidationError(err error, msg string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Message: err.Error()}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	sort.Strings(fields)
	return &ValidationError{Fields: fields, Message: msg}
}
