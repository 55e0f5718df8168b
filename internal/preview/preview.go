// Package preview renders the phone-shaped frame that shows the target
// site next to the form. It knows nothing about the network: an address
// that fails to load simply shows whatever the embedded viewport shows.
package preview

import (
	"embed"
	"html/template"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"react2android/internal/types"
)

// Placeholder is shown when no address is set.
const Placeholder = "Enter your site address for a live preview"

//go:embed templates/*
var templates embed.FS

var (
	deviceTmpl = template.Must(template.ParseFS(templates, "templates/device.html.tmpl"))
	validate   = validator.New()
)

// Frame is the render input.
type Frame struct {
	Embed       bool
	Address     string
	Accent      string
	Placeholder string
}

// Build derives a Frame; the viewport is embedded iff address is non-empty.
// An accent that is not a hex color falls back to the default.
func Build(address, accent string) Frame {
	address = strings.TrimSpace(address)
	if validate.Var(accent, "hexcolor") != nil {
		accent = types.DefaultAccentColor
	}
	f := Frame{
		Embed:   address != "",
		Address: address,
		Accent:  accent,
	}
	if !f.Embed {
		f.Placeholder = Placeholder
	}
	return f
}

func Render(w io.Writer, f Frame) error {
	return deviceTmpl.Execute(w, f)
}
