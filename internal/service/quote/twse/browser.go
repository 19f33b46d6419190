package twse

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/KNICEX/stock-notify/internal/service/quote"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL  = "https://mis.twse.com.tw/stock/fibest.jsp"
	DefaultSelector = "#fibestrow > td"
	DefaultTimeout  = 30 * time.Second
)

var _ quote.Service = (*BrowserService)(nil)

// BrowserService 通过无头浏览器打开证交所五档报价页面抓取成交价.
// 页面价格由脚本渲染, 不能直接请求 HTML.
type BrowserService struct {
	baseURL   string
	selector  string
	timeout   time.Duration
	allocOpts []chromedp.ExecAllocatorOption
	logger    *zap.SugaredLogger
}

type Option func(s *BrowserService)

func WithBaseURL(baseURL string) Option {
	return func(s *BrowserService) {
		s.baseURL = baseURL
	}
}

func WithSelector(selector string) Option {
	return func(s *BrowserService) {
		s.selector = selector
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(s *BrowserService) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithAllocatorOptions appends chrome launch options, e.g. chromedp.NoSandbox.
func WithAllocatorOptions(opts ...chromedp.ExecAllocatorOption) Option {
	return func(s *BrowserService) {
		s.allocOpts = append(s.allocOpts, opts...)
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *BrowserService) {
		s.logger = logger
	}
}

func NewBrowserService(opts ...Option) *BrowserService {
	svc := &BrowserService{
		baseURL:   DefaultBaseURL,
		selector:  DefaultSelector,
		timeout:   DefaultTimeout,
		allocOpts: append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...),
		logger:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *BrowserService) Price(ctx context.Context, symbol string) (string, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return "", quote.ErrInvalidAsset
	}

	target, err := s.quoteURL(symbol)
	if err != nil {
		return "", &quote.FetchError{Symbol: symbol, Err: err}
	}

	var text string
	err = s.withBrowser(ctx, func(ctx context.Context) error {
		return chromedp.Run(ctx,
			chromedp.Navigate(target),
			chromedp.TextContent(s.selector, &text, chromedp.ByQuery),
		)
	})
	if err != nil {
		return "", &quote.FetchError{Symbol: symbol, Err: err}
	}
	return strings.TrimSpace(text), nil
}

func (s *BrowserService) quoteURL(symbol string) (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", errors.Wrapf(err, "invalid quote url %q", s.baseURL)
	}
	q := u.Query()
	q.Set("stock", symbol)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// withBrowser launches a headless browser for the duration of fn only.
// The browser process is closed on every return path.
func (s *BrowserService) withBrowser(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, s.allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()
	defer func() {
		if err := chromedp.Cancel(browserCtx); err != nil {
			s.logger.Debugw("close browser", "error", err)
		}
	}()

	return fn(browserCtx)
}
