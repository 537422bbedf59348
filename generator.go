package htmlpdf

import (
	"context"
	"fmt"
	"maps"
	"os"
	"time"

	"github.com/pagecraft/go-html2pdf/internal/config"
)

// Generator accumulates content and drives the rendering and composition
// pipeline. Intake calls replace the current (content, options) pair;
// rendering always acts on the current pair.
//
// A Generator is not safe for concurrent use: intake and render calls on a
// shared instance must be sequenced by the caller. For parallel workloads
// use one Generator per in-flight request, or a GeneratorPool.
type Generator struct {
	cfg    generatorConfig
	engine renderEngine
	merger docMerger
	md     markdownConverter

	content string
	opts    *RenderOptions
}

// renderJob is an immutable snapshot of everything one render needs.
// Multi-page rendering builds jobs directly from page specs and never
// touches the session pair, so pages cannot observe each other's state.
type renderJob struct {
	content string
	opts    *RenderOptions
	params  Params
}

// New creates a Generator with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithTempDir).
func New(opts ...Option) *Generator {
	g := &Generator{
		cfg: generatorConfig{
			timeout: defaultTimeout,
			tempDir: defaultTempDir(),
		},
		opts: DefaultRenderOptions(),
		md:   newGoldmarkConverter(),
	}

	for _, opt := range opts {
		opt(g)
	}

	// Create collaborators if not injected (e.g., by tests)
	if g.engine == nil {
		g.engine = newRodEngine(g.cfg.timeout)
	}
	if g.merger == nil {
		g.merger = pdfcpuMerger{}
	}

	return g
}

// NewFromConfigFile creates a Generator with defaults loaded from a YAML
// config file or named config (see internal config resolution rules).
// Explicit options are applied after the config and win on overlap.
func NewFromConfigFile(nameOrPath string, opts ...Option) (*Generator, error) {
	cfg, err := config.LoadConfig(nameOrPath)
	if err != nil {
		return nil, err
	}

	fromCfg := []Option{WithRenderOptions(optionsFromConfig(cfg))}
	if cfg.Render.TimeoutSeconds > 0 {
		fromCfg = append(fromCfg, WithTimeout(time.Duration(cfg.Render.TimeoutSeconds)*time.Second))
	}
	if cfg.Render.TempDir != "" {
		fromCfg = append(fromCfg, WithTempDir(cfg.Render.TempDir))
	}

	return New(append(fromCfg, opts...)...), nil
}

// optionsFromConfig maps config page settings onto RenderOptions,
// falling back to library defaults for zero values.
func optionsFromConfig(cfg *config.Config) *RenderOptions {
	o := DefaultRenderOptions()
	if cfg.Page.Size != "" {
		o.Size = cfg.Page.Size
	}
	if cfg.Page.Orientation != "" {
		o.Orientation = cfg.Page.Orientation
	}
	if cfg.Page.Margin != 0 {
		o.Margin = cfg.Page.Margin
	}
	o.HeaderTemplate = cfg.Page.HeaderTemplate
	o.FooterTemplate = cfg.Page.FooterTemplate
	o.PrintBackground = cfg.Page.PrintBackground
	return o
}

// SetRenderOptions replaces the current render options wholesale.
// Passing nil resets to defaults. No merging with previous options.
func (g *Generator) SetRenderOptions(o *RenderOptions) *Generator {
	if o == nil {
		o = DefaultRenderOptions()
	}
	g.opts = o
	return g
}

// FromContent sets the HTML to render next, replacing any previous content.
func (g *Generator) FromContent(html string) *Generator {
	g.content = html
	return g
}

// FromFile reads the file as UTF-8 text and sets it as the content to
// render next. The returned error includes the offending path.
func (g *Generator) FromFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- template path is caller-provided
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
	}
	g.content = string(data)
	return nil
}

// FromMarkdown converts Markdown to a standalone HTML5 document and sets it
// as the content to render next.
func (g *Generator) FromMarkdown(ctx context.Context, markdown string) error {
	htmlContent, err := g.md.ToHTML(ctx, markdown)
	if err != nil {
		return err
	}
	g.content = htmlContent
	return nil
}

// GeneratePDF renders the current content to PDF bytes.
// Params default to {pageNumber: 1} when nil; they are visible to document
// scripts as window.renderParams before the content loads.
func (g *Generator) GeneratePDF(ctx context.Context, params Params) ([]byte, error) {
	return g.render(ctx, renderJob{
		content: g.content,
		opts:    g.opts,
		params:  params,
	})
}

// GeneratePDFStream renders the current content into a uniquely named file
// under the temp directory and returns a stream over it. Closing the stream
// deletes the file (best effort). Error semantics match GeneratePDF.
func (g *Generator) GeneratePDFStream(ctx context.Context, params Params) (*PDFStream, error) {
	path, err := newTempPDFPath(g.cfg.tempDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	job := renderJob{content: g.content, opts: g.opts, params: withDefaultParams(params)}
	if err := g.engine.RenderPDFToFile(ctx, job.content, job.opts, job.params, path); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	stream, err := openPDFStream(path)
	if err != nil {
		// The PDF was already written; remove it rather than leak it.
		_ = os.Remove(path)
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return stream, nil
}

// GenerateMultiPagePDF renders each page spec in order and composes the
// results into one document. Page i (1-based) renders with
// params = {pageNumber: i} overlaid by the spec's own params, which win on
// collision. Pages render strictly sequentially; the first failure aborts
// the whole operation and no partial PDF is returned.
func (g *Generator) GenerateMultiPagePDF(ctx context.Context, pages []PageSpec) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrMultiPageRender, ErrNoPages)
	}

	buffers := make([][]byte, 0, len(pages))
	for i, spec := range pages {
		buf, err := g.renderPageSpec(ctx, i+1, spec)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %w", ErrMultiPageRender, i+1, err)
		}
		buffers = append(buffers, buf)
	}

	return g.merger.Merge(buffers)
}

// renderPageSpec builds an immutable render job from one page spec.
// The shared session pair is never consulted or mutated here.
func (g *Generator) renderPageSpec(ctx context.Context, pageNum int, spec PageSpec) ([]byte, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	content := spec.Content
	if spec.TemplatePath != "" {
		data, err := os.ReadFile(spec.TemplatePath) // #nosec G304 -- template path is caller-provided
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFileRead, spec.TemplatePath, err)
		}
		content = string(data)
	}

	opts := spec.Options
	if opts == nil {
		opts = DefaultRenderOptions()
	}

	params := Params{paramPageNumber: pageNum}
	maps.Copy(params, spec.Params)

	return g.render(ctx, renderJob{content: content, opts: opts, params: params})
}

// render drives the engine for one job, wrapping failures in ErrRender.
func (g *Generator) render(ctx context.Context, job renderJob) ([]byte, error) {
	buf, err := g.engine.RenderPDF(ctx, job.content, job.opts, withDefaultParams(job.params))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf, nil
}

// withDefaultParams applies the default {pageNumber: 1} when params is nil.
func withDefaultParams(params Params) Params {
	if params == nil {
		return Params{paramPageNumber: 1}
	}
	return params
}

// MergePDFs composes already-rendered PDF documents into one, appending
// pages in list order onto the first document.
func (g *Generator) MergePDFs(buffers [][]byte) ([]byte, error) {
	return g.merger.Merge(buffers)
}

// Close releases engine resources (the headless browser).
func (g *Generator) Close() error {
	if g.engine != nil {
		return g.engine.Close()
	}
	return nil
}
