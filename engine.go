package htmlpdf

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/pagecraft/go-html2pdf/internal/fileutil"
)

// renderEngine abstracts the headless browser to enable testing without one.
// Each call acquires and releases its own page session; the browser itself
// is shared and connected lazily.
type renderEngine interface {
	RenderPDF(ctx context.Context, htmlContent string, opts *RenderOptions, params Params) ([]byte, error)
	RenderPDFToFile(ctx context.Context, htmlContent string, opts *RenderOptions, params Params, outPath string) error
	Close() error
}

// Compile-time interface check
var _ renderEngine = (*rodEngine)(nil)

// Paper dimensions in inches, portrait orientation.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// rodEngine renders HTML to PDF using headless Chrome via go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodEngine struct {
	browser *rod.Browser
	timeout time.Duration
}

// newRodEngine creates a rodEngine with the given timeout.
func newRodEngine(timeout time.Duration) *rodEngine {
	return &rodEngine{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (e *rodEngine) ensureBrowser() error {
	if e.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	e.browser = rod.New().ControlURL(u)
	if err := e.browser.Connect(); err != nil {
		e.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (e *rodEngine) Close() error {
	if e.browser != nil {
		err := e.browser.Close()
		e.browser = nil
		return err
	}
	return nil
}

// RenderPDF renders HTML content to PDF bytes.
func (e *rodEngine) RenderPDF(ctx context.Context, htmlContent string, opts *RenderOptions, params Params) ([]byte, error) {
	var pdfBuf []byte
	err := e.withPDFStream(ctx, htmlContent, opts, params, func(r io.Reader) error {
		buf, readErr := io.ReadAll(r)
		if readErr != nil {
			return fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, readErr)
		}
		pdfBuf = buf
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}

// RenderPDFToFile renders HTML content and copies the PDF to outPath
// without holding the whole document in memory.
func (e *rodEngine) RenderPDFToFile(ctx context.Context, htmlContent string, opts *RenderOptions, params Params, outPath string) error {
	return e.withPDFStream(ctx, htmlContent, opts, params, func(r io.Reader) error {
		f, err := os.Create(outPath) // #nosec G304 -- outPath generated by newTempPDFPath
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
		}
		if _, err := io.Copy(f, r); err != nil {
			_ = f.Close()
			return fmt.Errorf("%w: writing PDF file: %v", ErrPDFGeneration, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("%w: closing PDF file: %v", ErrPDFGeneration, err)
		}
		return nil
	})
}

// withPDFStream acquires a page session, injects params, loads the content
// and hands the PDF output stream to fn. The session is released on every
// exit path. The output stream is only valid inside fn because it is tied
// to the page.
func (e *rodEngine) withPDFStream(ctx context.Context, htmlContent string, opts *RenderOptions, params Params, fn func(io.Reader) error) error {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := e.ensureBrowser(); err != nil {
		return err
	}

	page, err := e.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Params must be registered before navigation so document scripts can
	// read window.renderParams during layout.
	script, err := buildParamsScript(params)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrParamsInject, err)
	}
	if _, err := page.EvalOnNewDocument(script); err != nil {
		return fmt.Errorf("%w: %v", ErrParamsInject, err)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContentLoad, err)
	}
	defer cleanup()

	if err := page.Navigate("file://" + tmpPath); err != nil {
		return fmt.Errorf("%w: %v", ErrContentLoad, err)
	}

	// Wait for page to load with timeout from context or default
	timeout := e.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrContentLoad, err)
	}

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return err
	}

	reader, err := page.PDF(buildPrintOptions(opts))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	return fn(reader)
}

// buildParamsScript serializes params into a script that publishes them on
// the page-global scope.
func buildParamsScript(params Params) (string, error) {
	if params == nil {
		params = Params{}
	}
	data, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	return "window.renderParams = " + string(data) + ";", nil
}

// buildPrintOptions constructs proto.PagePrintToPDF from render options.
// Unknown sizes fall back to US Letter; landscape swaps width and height.
func buildPrintOptions(opts *RenderOptions) *proto.PagePrintToPDF {
	if opts == nil {
		opts = DefaultRenderOptions()
	}

	size, ok := paperSizes[strings.ToLower(opts.Size)]
	if !ok {
		size = paperSizes[PageSizeLetter]
	}
	width, height := size[0], size[1]
	if strings.ToLower(opts.Orientation) == OrientationLandscape {
		width, height = height, width
	}

	margin := opts.Margin
	if margin == 0 {
		margin = DefaultMargin
	}

	pdfOpts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(margin),
		MarginBottom:    floatPtr(margin),
		MarginLeft:      floatPtr(margin),
		MarginRight:     floatPtr(margin),
		PrintBackground: opts.PrintBackground,
	}

	if opts.HeaderTemplate != "" || opts.FooterTemplate != "" {
		pdfOpts.DisplayHeaderFooter = true
		pdfOpts.HeaderTemplate = opts.HeaderTemplate
		if pdfOpts.HeaderTemplate == "" {
			pdfOpts.HeaderTemplate = "<span></span>" // Empty header
		}
		pdfOpts.FooterTemplate = opts.FooterTemplate
		if pdfOpts.FooterTemplate == "" {
			pdfOpts.FooterTemplate = "<span></span>" // Empty footer
		}
	}

	return pdfOpts
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
