package htmlpdf

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"
)

// defaultTempDirName is created under the OS temp dir on first use and
// shared across all Generator instances.
const defaultTempDirName = "go-html2pdf"

func defaultTempDir() string {
	return filepath.Join(os.TempDir(), defaultTempDirName)
}

// newTempPDFPath returns a unique path for a rendered PDF inside dir,
// creating dir if absent. Timestamp plus random suffix keeps concurrent
// renders from colliding without locking on file creation.
func newTempPDFPath(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTempFile, err)
	}
	name := fmt.Sprintf("render-%d-%08x.pdf", time.Now().UnixNano(), rand.Uint32())
	return filepath.Join(dir, name), nil
}

// Compile-time interface check
var _ io.ReadCloser = (*PDFStream)(nil)

// PDFStream reads a rendered PDF from its backing temp file. The file is
// fully written before the stream is handed out, so reads never race the
// renderer.
//
// Close removes the file. Deletion is advisory: failures are ignored, so
// orphaned files left by a crash need an external reaper.
type PDFStream struct {
	f    *os.File
	path string
}

// openPDFStream opens a read stream over a rendered temp file.
func openPDFStream(path string) (*PDFStream, error) {
	f, err := os.Open(path) // #nosec G304 -- path generated by newTempPDFPath
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTempFile, err)
	}
	return &PDFStream{f: f, path: path}, nil
}

// Read implements io.Reader.
func (s *PDFStream) Read(p []byte) (int, error) {
	return s.f.Read(p)
}

// Close closes the stream and removes the backing file.
func (s *PDFStream) Close() error {
	err := s.f.Close()
	_ = os.Remove(s.path)
	return err
}

// Path returns the location of the backing temp file.
func (s *PDFStream) Path() string {
	return s.path
}
