package service

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/fadilmartias/resume-generator/internal/config"
)

// DocumentRenderer turns a fully substituted HTML string into PDF bytes.
type DocumentRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromeRenderService renders HTML to PDF through headless Chrome.
type ChromeRenderService struct {
	ExecPath string
	Timeout  time.Duration
}

func NewChromeRenderService() *ChromeRenderService {
	return &ChromeRenderService{
		ExecPath: config.LoadChromeConfig().ExecPath,
		Timeout:  60 * time.Second,
	}
}

func (s *ChromeRenderService) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if s.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(s.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	chromeCtx, cancelChrome := chromedp.NewContext(allocCtx)
	defer cancelChrome()

	runCtx, cancelRun := context.WithTimeout(chromeCtx, s.Timeout)
	defer cancelRun()

	// Chrome wants a navigable URL, so the document goes through a temp file.
	tmpDir, err := os.MkdirTemp("", "resume-render-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm -> 8.27in x 11.69in
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
