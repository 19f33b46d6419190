package config

import (
	"io/fs"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Settings 运行时配置, 全部来自环境变量 (或 .env 文件)
type Settings struct {
	// 邮件相关配置缺失时不做校验, 发送时由 mailgun 报错
	MailgunDomain  string `mapstructure:"mailgun_domain"`
	MailgunKey     string `mapstructure:"mailgun_key"`
	MailgunAPIBase string `mapstructure:"mailgun_api_base" validate:"omitempty,url"`
	Investor       string `mapstructure:"investor"`

	QuoteURL      string        `mapstructure:"quote_url" default:"https://mis.twse.com.tw/stock/fibest.jsp" validate:"required,url"`
	PriceSelector string        `mapstructure:"price_selector" default:"#fibestrow > td" validate:"required"`
	ScanDelay     time.Duration `mapstructure:"scan_delay" default:"5s" validate:"gte=0"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout" default:"30s" validate:"gt=0"`
	LogLevel      string        `mapstructure:"log_level" default:"info" validate:"oneof=debug info warn error"`
}

var settingsEnv = map[string]string{
	"mailgun_domain":   "MAILGUN_DOMAIN",
	"mailgun_key":      "MAILGUN_KEY",
	"mailgun_api_base": "MAILGUN_API_BASE",
	"investor":         "INVESTOR",
	"quote_url":        "QUOTE_URL",
	"price_selector":   "PRICE_SELECTOR",
	"scan_delay":       "SCAN_DELAY",
	"fetch_timeout":    "FETCH_TIMEOUT",
	"log_level":        "LOG_LEVEL",
}

// LoadSettings loads the given dotenv files into the process environment,
// then reads Settings from it. Variables already set in the environment are
// not overridden; missing dotenv files are ignored.
func LoadSettings(envFiles ...string) (Settings, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, errors.Wrapf(err, "load %s", f)
		}
	}

	var s Settings
	if err := defaults.Set(&s); err != nil {
		return Settings{}, errors.Wrap(err, "set default settings")
	}

	v := viper.New()
	for key, env := range settingsEnv {
		if err := v.BindEnv(key, env); err != nil {
			return Settings{}, errors.Wrapf(err, "bind env %s", env)
		}
	}
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, errors.Wrap(err, "decode settings")
	}

	if err := validator.New().Struct(s); err != nil {
		return Settings{}, errors.Wrap(err, "invalid settings")
	}
	return s, nil
}
