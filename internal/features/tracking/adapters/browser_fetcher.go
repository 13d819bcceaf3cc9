package adapter

import (
	"context"
	"fmt"
	"time"

	"ledger-sync/internal/core/logger"
	"ledger-sync/internal/core/proxy"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// browserFetchTimeout bounds a full page load including JS rendering.
const browserFetchTimeout = 60 * time.Second

// BrowserFetcher retrieves tracking payloads through a headless
// browser, for couriers whose tracking pages render their status via
// JavaScript and serve nothing useful to a plain HTTP client.
type BrowserFetcher struct {
	proxy  proxy.Settings
	logger *zap.Logger
}

// NewBrowserFetcher creates a BrowserFetcher with the given proxy
// settings (zero value disables the proxy).
func NewBrowserFetcher(p proxy.Settings) *BrowserFetcher {
	return &BrowserFetcher{
		proxy:  p,
		logger: logger.Get(),
	}
}

// Fetch loads the URL in a headless browser, waits for the page to
// settle and returns the rendered HTML.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, browserFetchTimeout)
	defer cancel()

	f.logger.Debug("Launching browser for tracking page",
		zap.String("url", url),
		zap.Bool("proxy_enabled", f.proxy.HasProxy()),
	)

	l := launcher.New().
		Context(ctx).
		Headless(true).
		NoSandbox(true)

	if f.proxy.HasProxy() {
		if f.proxy.Username != "" {
			// Chromium does not accept proxy credentials on the command
			// line, so authenticated proxies go through a local forwarder.
			forwarder, err := proxy.NewForwardingProxy(f.proxy.FullURL())
			if err != nil {
				return "", fmt.Errorf("failed to prepare proxy forwarder: %w", err)
			}
			localAddr, err := forwarder.Start(ctx)
			if err != nil {
				return "", fmt.Errorf("failed to start proxy forwarder: %w", err)
			}
			defer forwarder.Stop()
			l = l.Proxy(localAddr)
		} else {
			l = l.Proxy(f.proxy.HostPort())
		}
	}

	controlURL, err := l.Launch()
	if err != nil {
		return "", fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", fmt.Errorf("failed to open tracking page: %w", err)
	}

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("tracking page failed to load: %w", err)
	}
	// Give client-side status widgets a moment to render.
	page.WaitRequestIdle(2*time.Second, nil, nil, nil)()

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to read rendered page: %w", err)
	}

	return html, nil
}
