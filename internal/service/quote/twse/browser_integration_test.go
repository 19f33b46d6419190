package twse

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/KNICEX/stock-notify/internal/service/quote"
	"github.com/chromedp/chromedp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

const fibestPage = `<html><body>
<table>
  <tr><th>成交價</th><th>漲跌</th></tr>
  <tr id="fibestrow"><td>%s</td><td>+5.00</td></tr>
</table>
</body></html>`

// BrowserSuite 需要本机安装 chrome/chromium, 否则跳过
type BrowserSuite struct {
	suite.Suite
	server *httptest.Server

	mu     sync.Mutex
	stocks []string
}

func findChrome() (string, bool) {
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, true
		}
	}
	return "", false
}

func TestBrowserSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser integration test in short mode")
	}
	if _, ok := findChrome(); !ok {
		t.Skip("chrome not installed")
	}
	suite.Run(t, new(BrowserSuite))
}

func (s *BrowserSuite) SetupSuite() {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stock := r.URL.Query().Get("stock")
		s.mu.Lock()
		s.stocks = append(s.stocks, stock)
		s.mu.Unlock()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch stock {
		case "9999":
			_, _ = fmt.Fprint(w, "<html><body>查無資料</body></html>")
		default:
			_, _ = fmt.Fprintf(w, fibestPage, "650.00")
		}
	}))
}

func (s *BrowserSuite) TearDownSuite() {
	s.server.Close()
}

func (s *BrowserSuite) newService(baseURL string, timeout time.Duration) *BrowserService {
	path, _ := findChrome()
	return NewBrowserService(
		WithBaseURL(baseURL),
		WithTimeout(timeout),
		WithAllocatorOptions(chromedp.ExecPath(path), chromedp.NoSandbox),
	)
}

func (s *BrowserSuite) TestPrice() {
	svc := s.newService(s.server.URL+"/stock/fibest.jsp", 30*time.Second)

	price, err := svc.Price(context.Background(), "2330")
	s.Require().NoError(err)
	s.Equal("650.00", price)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Contains(s.stocks, "2330")
}

func (s *BrowserSuite) TestPrice_NavigationFailure() {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	s.Require().NoError(err)
	addr := ln.Addr().String()
	s.Require().NoError(ln.Close())

	svc := s.newService("http://"+addr+"/stock/fibest.jsp", 15*time.Second)
	_, err = svc.Price(context.Background(), "2330")

	var fe *quote.FetchError
	s.Require().True(errors.As(err, &fe), "got %v", err)
	s.Equal("2330", fe.Symbol)
}

func (s *BrowserSuite) TestPrice_MissingElementTimesOut() {
	svc := s.newService(s.server.URL+"/stock/fibest.jsp", 3*time.Second)

	_, err := svc.Price(context.Background(), "9999")

	var fe *quote.FetchError
	s.Require().True(errors.As(err, &fe), "got %v", err)
	s.Equal("9999", fe.Symbol)
}
