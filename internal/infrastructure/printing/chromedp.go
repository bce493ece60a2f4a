package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/sereci/sirepre/internal/domain/printing"
	"go.uber.org/zap"
)

const (
	defaultChromeTimeout = 30 * time.Second
	defaultMaxTabs       = 2
	pointsPerInch        = 72.0
	// Chrome needs room below the content for the footer template.
	minFooterMarginInches = 0.4
)

// chromeBinaries are looked up on PATH when no ExecPath is configured.
var chromeBinaries = []string{"chromium", "chromium-browser", "google-chrome", "google-chrome-stable", "headless-shell"}

// ChromedpConfig configures the headless Chrome used for HTML reports.
type ChromedpConfig struct {
	// Timeout bounds one render unless the request sets its own
	Timeout time.Duration
	// RemoteURL attaches to a running browser (ws://host:9222) instead of
	// launching one
	RemoteURL string
	// ExecPath is the browser binary; empty searches PATH
	ExecPath string
	// NoSandbox is needed when running as root in containers
	NoSandbox bool
	// MaxTabs caps concurrent renders sharing the browser
	MaxTabs int
	Logger  *zap.Logger
}

// ChromedpRenderer prints HTML to PDF through one shared browser process.
// Each render opens its own tab.
type ChromedpRenderer struct {
	config      ChromedpConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
	tabs        chan struct{}
	// unavailable is set when no browser binary could be found
	unavailable error
}

// NewChromedpRenderer prepares the browser allocator. A missing browser is
// not an error: the renderer reports Available() == false and every render
// fails with ErrCodeBrowserUnavailable.
func NewChromedpRenderer(config *ChromedpConfig) (*ChromedpRenderer, error) {
	cfg := ChromedpConfig{}
	if config != nil {
		cfg = *config
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultChromeTimeout
	}
	if cfg.MaxTabs <= 0 {
		cfg.MaxTabs = defaultMaxTabs
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	r := &ChromedpRenderer{
		config: cfg,
		logger: cfg.Logger,
		tabs:   make(chan struct{}, cfg.MaxTabs),
	}

	if cfg.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		return r, nil
	}

	path, err := findChrome(cfg.ExecPath)
	if err != nil {
		r.unavailable = err
		r.logger.Warn("chrome not found, HTML reports disabled", zap.Error(err))
		return r, nil
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), r.allocatorOptions(path)...)
	return r, nil
}

func (r *ChromedpRenderer) allocatorOptions(execPath string) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.ExecPath(execPath),
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if r.config.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	return opts
}

// Render prints req.HTML and returns the PDF.
func (r *ChromedpRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	switch {
	case req == nil || strings.TrimSpace(req.HTML) == "":
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	case !req.PaperSize.IsValid():
		return nil, NewRenderError(ErrCodeInvalidPaperSize, "invalid paper size: "+string(req.PaperSize), nil)
	case r.unavailable != nil:
		return nil, NewRenderError(ErrCodeBrowserUnavailable, "headless Chrome is not available", r.unavailable)
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = r.config.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case r.tabs <- struct{}{}:
		defer func() { <-r.tabs }()
	case <-ctx.Done():
		return nil, NewRenderError(ErrCodeRenderTimeout, "waiting for a free browser tab", ctx.Err())
	}

	start := time.Now()
	tabCtx, closeTab := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer closeTab()
	// chromedp contexts derive from the allocator, so the deadline has to
	// be forwarded by hand.
	stop := context.AfterFunc(ctx, closeTab)
	defer stop()

	doc := documentHTML(req)
	params := pdfParams(req)
	var data []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, doc).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			data, _, err = params.Do(ctx)
			return err
		}),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("PDF rendering stopped after %v", time.Since(start).Round(time.Millisecond)), ctx.Err())
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chrome could not print the page", err)
	}
	if len(data) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	result := &RenderResult{PDFData: data, PageCount: countPages(data), RenderDuration: time.Since(start)}
	r.logger.Info("HTML report printed",
		zap.String("title", req.Title),
		zap.Int("bytes", len(data)),
		zap.Int("pages", result.PageCount),
		zap.Duration("duration", result.RenderDuration))
	return result, nil
}

// pdfParams translates a request into Chrome print settings, which are in
// inches.
func pdfParams(req *RenderRequest) *page.PrintToPDFParams {
	size := req.PaperSize.Points()
	p := page.PrintToPDF().
		WithPrintBackground(true).
		WithPreferCSSPageSize(false).
		WithPaperWidth(size.Width / pointsPerInch).
		WithPaperHeight(size.Height / pointsPerInch).
		WithLandscape(req.Orientation == printing.OrientationLandscape).
		WithMarginTop(req.Margins.Top / pointsPerInch).
		WithMarginRight(req.Margins.Right / pointsPerInch).
		WithMarginBottom(req.Margins.Bottom / pointsPerInch).
		WithMarginLeft(req.Margins.Left / pointsPerInch)

	if req.FooterHTML != "" {
		p = p.WithDisplayHeaderFooter(true).
			WithHeaderTemplate("<span></span>").
			WithFooterTemplate(req.FooterHTML)
		if p.MarginBottom < minFooterMarginInches {
			p.MarginBottom = minFooterMarginInches
		}
	}
	return p
}

// documentHTML wraps a fragment into a UTF-8 page. Complete documents pass
// through untouched.
func documentHTML(req *RenderRequest) string {
	lower := strings.ToLower(req.HTML)
	if strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html") {
		return req.HTML
	}
	title := ""
	if req.Title != "" {
		title = "<title>" + html.EscapeString(req.Title) + "</title>"
	}
	return `<!DOCTYPE html><html><head><meta charset="UTF-8">` + title + "</head><body>" + req.HTML + "</body></html>"
}

// Available reports whether a browser could be located.
func (r *ChromedpRenderer) Available() bool {
	return r.unavailable == nil
}

// Close shuts the browser down.
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

func findChrome(configured string) (string, error) {
	if configured != "" {
		return exec.LookPath(configured)
	}
	for _, name := range chromeBinaries {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", errors.New("none of " + strings.Join(chromeBinaries, ", ") + " found in PATH")
}

// countPages counts /Type /Page objects, never reporting less than one.
func countPages(pdf []byte) int {
	n := bytes.Count(pdf, []byte("/Type /Page")) - bytes.Count(pdf, []byte("/Type /Pages"))
	return max(n, 1)
}

var _ HTMLRenderer = (*ChromedpRenderer)(nil)
