package rendering

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 portrait in inches, with 10 mm margins.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
	marginInches   = 10.0 / 25.4
)

// DefaultPDFTimeout bounds one headless print.
const DefaultPDFTimeout = 30 * time.Second

// PDFPrinter converts an HTML document to PDF bytes.
type PDFPrinter interface {
	PrintPDF(ctx context.Context, document []byte) ([]byte, error)
}

// ChromePDF prints through a headless Chrome or Chromium, which must be installed.
type ChromePDF struct {
	// ExecPath overrides the browser binary lookup.
	ExecPath string
	Timeout  time.Duration
}

// NewChromePDF returns a printer using the browser at execPath, or the first one
// found on the system when execPath is empty.
func NewChromePDF(execPath string, timeout time.Duration) *ChromePDF {
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	return &ChromePDF{ExecPath: execPath, Timeout: timeout}
}

// PrintPDF loads document into a blank page and prints it on A4 with backgrounds.
func (c *ChromePDF) PrintPDF(ctx context.Context, document []byte) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(document)).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithMarginTop(marginInches).
				WithMarginBottom(marginInches).
				WithMarginLeft(marginInches).
				WithMarginRight(marginInches).
				WithPrintBackground(true).
				WithLandscape(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "headless print failed", Cause: err}
	}
	return pdf, nil
}

// PDF renders s to HTML and prints it with p.
func PDF(ctx context.Context, p PDFPrinter, s Summary) ([]byte, error) {
	doc, err := HTML(s)
	if err != nil {
		return nil, err
	}
	return p.PrintPDF(ctx, doc)
}
