package ioc

import "github.com/KNICEX/stock-notify/internal/config"

// InitSettings 读取环境变量, 当前目录下的 .env 会先被加载
func InitSettings() (config.Settings, error) {
	return config.LoadSettings(".env")
}
