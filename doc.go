// Package htmlpdf converts HTML documents to PDF using headless Chrome and
// composes rendered PDFs into combined documents.
//
// # Quick Start
//
// Create a generator, set content, render, and close when done:
//
//	gen := htmlpdf.New()
//	defer gen.Close()
//
//	gen.FromContent("<h1>Hello</h1>")
//	pdf, err := gen.GeneratePDF(ctx, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", pdf, 0644)
//
// Content can also come from a file (FromFile) or from Markdown
// (FromMarkdown, converted via Goldmark). Each intake call replaces the
// current content; rendering always uses the most recent pair of content
// and render options.
//
// # Render Parameters
//
// GeneratePDF accepts arbitrary parameters that are published to document
// scripts as window.renderParams before the content loads:
//
//	pdf, err := gen.GeneratePDF(ctx, htmlpdf.Params{"title": "Report"})
//
// When params are omitted, {pageNumber: 1} is injected.
//
// # Streaming
//
// GeneratePDFStream renders into a temp file and returns a read stream,
// avoiding a full in-memory copy for large documents. Closing the stream
// deletes the backing file (best effort):
//
//	stream, err := gen.GeneratePDFStream(ctx, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer stream.Close()
//	io.Copy(w, stream)
//
// # Multi-Page Documents
//
// GenerateMultiPagePDF renders an ordered list of page specs and merges the
// results, injecting a 1-based pageNumber param into each render:
//
//	pdf, err := gen.GenerateMultiPagePDF(ctx, []htmlpdf.PageSpec{
//	    {Content: "<h1>Page one</h1>"},
//	    {TemplatePath: "invoice.html", Params: htmlpdf.Params{"total": 42}},
//	})
//
// Pre-rendered documents merge directly with MergePDFs.
//
// # Concurrency
//
// A Generator is not safe for concurrent use; the content and options it
// holds are shared mutable state. Use one generator per in-flight request,
// or a GeneratorPool for parallel workloads:
//
//	pool := htmlpdf.NewGeneratorPool(4)
//	defer pool.Close()
//
//	gen := pool.Acquire()
//	defer pool.Release(gen)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// Use ROD_BROWSER_BIN to specify a custom Chrome binary; the sandbox is
// disabled automatically when CI=true or ROD_BROWSER_BIN is set.
package htmlpdf
