package config

import (
	"os"
	"sync"
)

type ChromeConfig struct {
	ExecPath string
}

var (
	chromeConfig *ChromeConfig
	chromeOnce   sync.Once
)

func LoadChromeConfig() *ChromeConfig {
	chromeOnce.Do(func() {
		chromeConfig = &ChromeConfig{
			ExecPath: os.Getenv("CHROME_PATH"),
		}
	})
	return chromeConfig
}
