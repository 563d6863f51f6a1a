// Package pdftext yields per-page plain text from budget PDFs. Only the
// embedded text layer is read; scanned (image-only) pages come back empty.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/shepard5/Reapprop-Automation/internal/gcs"
)

// Page holds the plain text of one PDF page. Number is 1-based.
type Page struct {
	Number int
	Text   string
}

// PageSource is anything that can produce an ordered sequence of page texts.
type PageSource interface {
	Pages(ctx context.Context) ([]Page, error)
}

// FileSource reads pages from a PDF file on disk.
type FileSource struct {
	path string
}

// NewFileSource creates a source for the PDF at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Pages extracts plain text for every page in document order.
func (s *FileSource) Pages(ctx context.Context) ([]Page, error) {
	f, r, err := pdf.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %q: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	return readPages(ctx, r)
}

// BytesSource reads pages from an in-memory PDF document. No temp file is
// created, so remote documents leave nothing behind on disk.
type BytesSource struct {
	data []byte
}

// NewBytesSource creates a source over raw PDF bytes.
func NewBytesSource(data []byte) *BytesSource {
	return &BytesSource{data: data}
}

// Pages extracts plain text for every page in document order.
func (s *BytesSource) Pages(ctx context.Context) ([]Page, error) {
	r, err := pdf.NewReader(bytes.NewReader(s.data), int64(len(s.data)))
	if err != nil {
		return nil, fmt.Errorf("read pdf bytes: %w", err)
	}

	return readPages(ctx, r)
}

// readPages walks every page of an open document. Pages whose text layer
// cannot be decoded are kept with empty text so numbering stays aligned with
// the physical document.
func readPages(ctx context.Context, r *pdf.Reader) ([]Page, error) {
	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	pages := make([]Page, 0, numPages)

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, Page{Number: i})
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		text, pageErr := p.GetPlainText(fonts)
		if pageErr != nil {
			// Undecodable page: carry an empty page rather than failing the
			// document, downstream treats blank pages as non-sections.
			pages = append(pages, Page{Number: i})
			continue
		}
		pages = append(pages, Page{Number: i, Text: text})
	}

	return pages, nil
}

// Resolve turns a local path or a gs:// URI into a PageSource. Remote objects
// are held in memory rather than spooled to disk.
func Resolve(ctx context.Context, pathOrURI string) (PageSource, error) {
	if !strings.HasPrefix(pathOrURI, "gs://") {
		if _, err := os.Stat(pathOrURI); err != nil {
			return nil, fmt.Errorf("stat pdf %q: %w", pathOrURI, err)
		}
		return NewFileSource(pathOrURI), nil
	}

	data, err := gcs.Fetch(ctx, pathOrURI)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", pathOrURI, err)
	}

	return NewBytesSource(data), nil
}

// SliceSource serves in-memory page texts, one string per page. Used in tests
// and anywhere page text is already available.
type SliceSource []string

// Pages returns the slice contents as numbered pages.
func (s SliceSource) Pages(ctx context.Context) ([]Page, error) {
	pages := make([]Page, len(s))
	for i, text := range s {
		pages[i] = Page{Number: i + 1, Text: text}
	}
	return pages, nil
}
