package htmlpdf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// docMerger abstracts PDF composition to enable testing with fake buffers.
type docMerger interface {
	Merge(buffers [][]byte) ([]byte, error)
}

// Compile-time interface check
var _ docMerger = pdfcpuMerger{}

// pdfcpuMerger composes documents with pdfcpu. The first buffer is the base
// document; each subsequent buffer contributes its pages in list order, so
// the result is base pages, then buffer[1]'s pages, then buffer[2]'s, and
// so on. Page content is never altered.
type pdfcpuMerger struct{}

// Merge appends the pages of each buffer onto the first one.
// Every input must be a structurally valid, complete PDF document;
// malformed input surfaces as ErrMerge from pdfcpu, not from extra
// validation here.
func (pdfcpuMerger) Merge(buffers [][]byte) ([]byte, error) {
	if len(buffers) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrMerge, ErrNoDocuments)
	}

	readers := make([]io.ReadSeeker, len(buffers))
	for i, buf := range buffers {
		readers[i] = bytes.NewReader(buf)
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMerge, err)
	}
	return out.Bytes(), nil
}

// MergePDFs combines already-rendered PDF documents into one, appending
// pages in list order onto the first document. It does not require a
// Generator; pre-rendered buffers from any source can be composed directly.
func MergePDFs(buffers [][]byte) ([]byte, error) {
	return pdfcpuMerger{}.Merge(buffers)
}
