package quote

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidAsset    = errors.New("no valid asset")
	ErrUnparsablePrice = errors.New("unparsable price")
)

// Service 查询标的当前价格, 返回页面上显示的原始文本
type Service interface {
	Price(ctx context.Context, symbol string) (string, error)
}

// FetchError 获取某个标的价格失败
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch price of %q: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// AsFetchError wraps err into a *FetchError for symbol unless it already is one.
func AsFetchError(symbol string, err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{Symbol: symbol, Err: err}
}
