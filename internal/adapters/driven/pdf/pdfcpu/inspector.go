// Package pdfcpu checks uploads locally before they are sent to the
// analysis service.
package pdfcpu

import (
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/immigraid/internal/core/ports/driven"
)

// Ensure Inspector implements the interface.
var _ driven.PDFInspector = (*Inspector)(nil)

// Inspector reads PDFs with pdfcpu in relaxed validation mode, which
// accepts the slightly malformed files scanners and form fillers produce.
type Inspector struct {
	conf *model.Configuration
}

// NewInspector creates an inspector.
func NewInspector() *Inspector {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	return &Inspector{conf: cfg}
}

// PageCount returns the number of pages, or an error if content is not a PDF.
func (i *Inspector) PageCount(content io.ReadSeeker) (int, error) {
	if _, err := content.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("rewind: %w", err)
	}
	n, err := api.PageCount(content, i.conf)
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	return n, nil
}
