package config

import (
	"fmt"
	"os"

	"github.com/KNICEX/stock-notify/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// LoadAssets reads the asset file at path. The file is a JSON object mapping
// a symbol to its [min, max] band, e.g. {"2330": [500, 600]}.
//
// Assets are returned in the order they appear in the file. A symbol listed
// twice keeps its first position and takes the last band.
func LoadAssets(path string) ([]entity.Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	return ParseAssets(path, data)
}

// ParseAssets parses asset file content; path is only used in errors.
func ParseAssets(path string, data []byte) ([]entity.Asset, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: path, Reason: "invalid json"}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &ParseError{Path: path, Reason: "top level value must be an object"}
	}

	var (
		assets   []entity.Asset
		index    = make(map[string]int)
		parseErr error
	)
	root.ForEach(func(key, value gjson.Result) bool {
		asset, err := parseBand(key.String(), value)
		if err != nil {
			parseErr = &ParseError{Path: path, Reason: err.Error()}
			return false
		}
		if i, ok := index[asset.Symbol]; ok {
			assets[i] = asset
			return true
		}
		index[asset.Symbol] = len(assets)
		assets = append(assets, asset)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return assets, nil
}

func parseBand(symbol string, value gjson.Result) (entity.Asset, error) {
	if !value.IsArray() {
		return entity.Asset{}, fmt.Errorf("asset %q: band must be a [min, max] array", symbol)
	}
	bounds := value.Array()
	if len(bounds) != 2 {
		return entity.Asset{}, fmt.Errorf("asset %q: band must have 2 elements, got %d", symbol, len(bounds))
	}

	nums := make([]decimal.Decimal, 0, 2)
	for _, b := range bounds {
		if b.Type != gjson.Number {
			return entity.Asset{}, fmt.Errorf("asset %q: bound %s is not a number", symbol, b.Raw)
		}
		d, err := decimal.NewFromString(b.Raw)
		if err != nil {
			return entity.Asset{}, fmt.Errorf("asset %q: bound %s: %v", symbol, b.Raw, err)
		}
		nums = append(nums, d)
	}
	return entity.Asset{Symbol: symbol, Min: nums[0], Max: nums[1]}, nil
}
