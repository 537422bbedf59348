package htmlpdf

import (
	"fmt"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// Params carries arbitrary render-time values. They are exposed to document
// scripts as window.renderParams before the content loads, so inline scripts
// can read them during layout (e.g. to print a page number).
type Params map[string]any

// paramPageNumber is the key injected by multi-page rendering.
const paramPageNumber = "pageNumber"

// RenderOptions configures PDF page layout for the rendering engine.
type RenderOptions struct {
	Size            string  // "letter", "a4", "legal" (default: "letter")
	Orientation     string  // "portrait", "landscape" (default: "portrait")
	Margin          float64 // inches, applied to all sides (default: 0.5)
	HeaderTemplate  string  // Chrome header HTML template (optional)
	FooterTemplate  string  // Chrome footer HTML template (optional)
	PrintBackground bool
}

// DefaultRenderOptions returns render options with default values.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Size:            PageSizeLetter,
		Orientation:     OrientationPortrait,
		Margin:          DefaultMargin,
		PrintBackground: true,
	}
}

// Validate checks that render options are valid.
// Returns nil if o is nil (nil means use defaults).
// Zero-valued fields are skipped: they fall back to defaults at render
// time, so partially-specified options are valid input.
// Does not mutate - uses case-insensitive comparison.
func (o *RenderOptions) Validate() error {
	if o == nil {
		return nil
	}

	if o.Size != "" && !isValidPageSize(o.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, o.Size)
	}

	if o.Orientation != "" && !isValidOrientation(o.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, o.Orientation)
	}

	if o.Margin != 0 && (o.Margin < MinMargin || o.Margin > MaxMargin) {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, o.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	}
	return false
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// PageSpec describes one page of a multi-page job: its source content,
// layout options and render-time parameters. TemplatePath takes precedence
// over Content when both are set.
type PageSpec struct {
	Content      string         // literal HTML (optional if TemplatePath is set)
	TemplatePath string         // path to an HTML file (optional if Content is set)
	Options      *RenderOptions // nil = defaults
	Params       Params         // merged over the injected pageNumber
}

// Validate checks that the spec names a content source.
// Omitting both fields is an error rather than a silent fallback to
// whatever content a previous call left behind.
func (s *PageSpec) Validate() error {
	if s.Content == "" && s.TemplatePath == "" {
		return ErrMissingPageSource
	}
	return s.Options.Validate()
}

// Option configures a Generator.
type Option func(*Generator)

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	timeout time.Duration
	tempDir string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("htmlpdf: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithTempDir sets the directory for streamed PDF temp files.
// The directory is created lazily on first use and shared across calls.
func WithTempDir(dir string) Option {
	return func(g *Generator) {
		if dir != "" {
			g.cfg.tempDir = dir
		}
	}
}

// WithRenderOptions sets the initial render options.
func WithRenderOptions(o *RenderOptions) Option {
	return func(g *Generator) {
		if o != nil {
			g.opts = o
		}
	}
}
