package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/config"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultPaperWidth  = 8.27 // A4
	defaultPaperHeight = 11.69
	defaultMargin      = 0.4
)

// Ensure ChromedpRenderer implements PDFRenderer
var _ PDFRenderer = (*ChromedpRenderer)(nil)

// ChromedpRenderer renders HTML to PDF using the Chrome DevTools Protocol.
// Each Render opens a fresh tab on a shared browser allocator.
type ChromedpRenderer struct {
	timeout     time.Duration
	paperWidth  float64
	paperHeight float64
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// ChromedpOption configures a ChromedpRenderer
type ChromedpOption func(*chromedpOptions)

type chromedpOptions struct {
	logger    *zap.Logger
	remoteURL string
	noSandbox bool
}

// WithRendererLogger sets the logger used for render and browser logs
func WithRendererLogger(logger *zap.Logger) ChromedpOption {
	return func(o *chromedpOptions) { o.logger = logger }
}

// WithRemoteBrowser connects to a running Chrome at a DevTools websocket URL
// instead of launching one
func WithRemoteBrowser(url string) ChromedpOption {
	return func(o *chromedpOptions) { o.remoteURL = url }
}

// WithNoSandbox disables the Chrome sandbox, which containers running as root need
func WithNoSandbox() ChromedpOption {
	return func(o *chromedpOptions) { o.noSandbox = true }
}

// NewChromedpRenderer prepares a browser allocator from cfg. Chrome itself is
// launched lazily on the first Render.
func NewChromedpRenderer(cfg config.PrintingConfig, opts ...ChromedpOption) *ChromedpRenderer {
	o := &chromedpOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	r := &ChromedpRenderer{
		timeout:     cfg.Timeout,
		paperWidth:  cfg.PaperWidthIn,
		paperHeight: cfg.PaperHeightIn,
		logger:      o.logger,
	}
	if r.timeout <= 0 {
		r.timeout = defaultTimeout
	}
	if r.paperWidth <= 0 {
		r.paperWidth = defaultPaperWidth
	}
	if r.paperHeight <= 0 {
		r.paperHeight = defaultPaperHeight
	}

	if o.remoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), o.remoteURL)
		return r
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.ChromePath))
	}
	if o.noSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), allocOpts...)
	return r
}

// Render converts HTML content to PDF
func (r *ChromedpRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	if req == nil || strings.TrimSpace(req.HTML) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}

	start := time.Now()
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = r.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tabCtx, tabCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer tabCancel()
	// stop the tab when the caller's deadline passes
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	doc := wrapDocument(req)
	params := r.printParams(req)

	var pdfData []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, doc).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := params.Do(ctx)
			pdfData = data
			return err
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewRenderError(ErrCodeRenderTimeout, fmt.Sprintf("PDF rendering timed out after %v", timeout), err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	}
	if len(pdfData) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	result := &RenderResult{
		PDFData:        pdfData,
		PageCount:      estimatePageCount(pdfData),
		RenderDuration: time.Since(start),
	}
	r.logger.Info("PDF rendered",
		zap.String("title", req.Title),
		zap.Int("bytes", len(pdfData)),
		zap.Int("pages", result.PageCount),
		zap.Duration("duration", result.RenderDuration),
	)
	return result, nil
}

func (r *ChromedpRenderer) printParams(req *RenderRequest) *page.PrintToPDFParams {
	width, height, margin := req.PaperWidth, req.PaperHeight, req.Margin
	if width <= 0 {
		width = r.paperWidth
	}
	if height <= 0 {
		height = r.paperHeight
	}
	if margin <= 0 {
		margin = defaultMargin
	}
	return page.PrintToPDF().
		WithPrintBackground(true).
		WithPaperWidth(width).
		WithPaperHeight(height).
		WithMarginTop(margin).
		WithMarginRight(margin).
		WithMarginBottom(margin).
		WithMarginLeft(margin).
		WithLandscape(req.Landscape)
}

// Close shuts down the browser allocator
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

// wrapDocument wraps an HTML fragment in a full document unless it already is one
func wrapDocument(req *RenderRequest) string {
	lower := strings.ToLower(req.HTML)
	if strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html") {
		return req.HTML
	}

	var buf bytes.Buffer
	buf.WriteString(`<!DOCTYPE html><html><head><meta charset="UTF-8">`)
	if req.Title != "" {
		buf.WriteString("<title>" + html.EscapeString(req.Title) + "</title>")
	}
	buf.WriteString("</head><body>")
	buf.WriteString(req.HTML)
	buf.WriteString("</body></html>")
	return buf.String()
}

// estimatePageCount counts page objects; every PDF has at least one page
func estimatePageCount(pdfData []byte) int {
	count := bytes.Count(pdfData, []byte("/Type /Page")) - bytes.Count(pdfData, []byte("/Type /Pages"))
	return max(count, 1)
}
