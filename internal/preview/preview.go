// Package preview screenshots rendered HTML outputs with headless Chrome.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"

	"gasviz/internal/config"
	apperrors "gasviz/internal/errors"
	"gasviz/internal/exporter"
)

// pngSignature is the eight-byte header of every PNG stream
var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// settleDelay gives tiles and chart animations time to finish before capture
const settleDelay = 2 * time.Second

// Capturer takes full-page PNG screenshots of local HTML files
type Capturer struct {
	cfg    config.PreviewConfig
	writer *exporter.FileWriter
	logger *slog.Logger
}

// NewCapturer creates a capturer. A nil logger uses slog.Default.
func NewCapturer(cfg config.PreviewConfig, logger *slog.Logger) *Capturer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Capturer{cfg: cfg, writer: exporter.NewFileWriter(logger), logger: logger}
}

// Enabled reports whether previews are configured on
func (c *Capturer) Enabled() bool {
	return c.cfg.Enabled
}

// CaptureAll screenshots every page that exists. Failures are logged and
// never returned.
func (c *Capturer) CaptureAll(ctx context.Context, htmlPaths ...string) {
	if !c.Enabled() {
		c.logger.DebugContext(ctx, "Preview capture disabled")
		return
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.WindowSize(1600, 1200),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	for _, htmlPath := range htmlPaths {
		if !config.FileExists(htmlPath) {
			c.logger.WarnContext(ctx, "Skipping preview, page was not written",
				slog.String("file_path", htmlPath))
			continue
		}

		target := config.PreviewPath(htmlPath)
		start := time.Now()
		if err := c.capture(browserCtx, htmlPath, target); err != nil {
			c.logger.ErrorContext(ctx, "Failed to capture preview",
				slog.String("file_path", htmlPath),
				slog.String("error", err.Error()))
			continue
		}
		c.logger.InfoContext(ctx, "Captured preview",
			slog.String("file_path", target),
			slog.Duration("elapsed", time.Since(start)))
	}
}

func (c *Capturer) capture(browserCtx context.Context, htmlPath, target string) error {
	pageURL, err := FileURL(htmlPath)
	if err != nil {
		return err
	}

	tabCtx, cancelTab := chromedp.NewContext(browserCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, c.cfg.Timeout)
	defer cancelTimeout()

	var shot []byte
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(settleDelay),
		chromedp.FullScreenshot(&shot, config.PreviewQuality),
	); err != nil {
		return fmt.Errorf("chrome run failed: %w", err)
	}
	if err := checkPNG(shot); err != nil {
		return err
	}

	return c.writer.Replace(browserCtx, target, func(w io.Writer) error {
		_, err := w.Write(shot)
		return err
	})
}

// checkPNG rejects screenshots that are not PNG encoded
func checkPNG(shot []byte) error {
	if !bytes.HasPrefix(shot, pngSignature) {
		return apperrors.NewRenderError("screenshot is not a png", nil).WithContext("bytes", len(shot))
	}
	return nil
}

// FileURL turns a local path into an absolute file:// URL
func FileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	if os.PathSeparator == '\\' {
		// C:/dir/page.html needs the extra leading slash
		u.Path = "/" + u.Path
	}
	return u.String(), nil
}
