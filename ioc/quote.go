package ioc

import (
	"github.com/KNICEX/stock-notify/internal/config"
	"github.com/KNICEX/stock-notify/internal/service/quote"
	"github.com/KNICEX/stock-notify/internal/service/quote/twse"
	"go.uber.org/zap"
)

func InitQuoteService(s config.Settings, logger *zap.SugaredLogger) quote.Service {
	return twse.NewBrowserService(
		twse.WithBaseURL(s.QuoteURL),
		twse.WithSelector(s.PriceSelector),
		twse.WithTimeout(s.FetchTimeout),
		twse.WithLogger(logger),
	)
}
