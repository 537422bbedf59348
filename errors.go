package htmlpdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrFileRead        = errors.New("failed to read content file")
	ErrRender          = errors.New("PDF rendering failed")
	ErrMultiPageRender = errors.New("multi-page rendering failed")
	ErrMerge           = errors.New("PDF merge failed")

	// Rendering engine errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrParamsInject   = errors.New("failed to inject render parameters")
	ErrContentLoad    = errors.New("failed to load content")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// Markdown intake errors.
	ErrMarkdownConvert = errors.New("markdown conversion failed")

	// Render options validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Page spec validation errors.
	ErrMissingPageSource = errors.New("page spec must set Content or TemplatePath")
	ErrNoPages           = errors.New("page list cannot be empty")

	// Merge validation errors.
	ErrNoDocuments = errors.New("no documents to merge")

	// Temp file errors.
	ErrTempFile = errors.New("failed to create temp PDF file")
)
