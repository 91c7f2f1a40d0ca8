// 包 config 负责加载与校验应用配置（settings.yaml），
// 对外提供结构体 Config 及默认值/合法性校验。配置文件可缺省。
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 仅保留当前需要的字段，避免过度设计。
type Config struct {
	OutputDir     string      `yaml:"OUTPUT_DIR"`
	WindowHours   int         `yaml:"WINDOW_HOURS"`
	RetentionDays int         `yaml:"RETENTION_DAYS"`
	RSSOPML       string      `yaml:"RSS_OPML"`
	ExtraRSS      []RSSFeed   `yaml:"EXTRA_RSS"`
	Concurrency   Concurrency `yaml:"CONCURRENCY"`
	Proxy         Proxy       `yaml:"PROXY"`
	LogLevel      string      `yaml:"LOG_LEVEL"`
	LogFormat     string      `yaml:"LOG_FORMAT"` // text|json|pretty
	LogColor      string      `yaml:"LOG_COLOR"`  // auto|always|never
}

// RSSFeed 为 settings.yaml 中追加的 RSS 数据源。
type RSSFeed struct {
	SiteID   string `yaml:"site_id"`
	SiteName string `yaml:"site_name"`
	Source   string `yaml:"source"`
	URL      string `yaml:"url"`
}

type Concurrency struct {
	Fetch int `yaml:"fetch"`
	Retry int `yaml:"retry"`
}

type Proxy struct {
	HTTP  string `yaml:"http"`
	HTTPS string `yaml:"https"`
}

// Load 从文件读取 YAML 并反序列化为 Config；文件不存在时返回默认配置。
func Load(path string) (*Config, error) {
	var c Config
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			if verr := c.Validate(); verr != nil {
				return nil, verr
			}
			return &c, nil
		}
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("unmarshal config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// Validate 负责合法性检查与默认值设置，避免在业务层分散判空逻辑。
func (c *Config) Validate() error {
	if c.WindowHours < 0 {
		return errors.New("WINDOW_HOURS must be >= 0")
	}
	if c.WindowHours == 0 {
		c.WindowHours = 24
	}
	if c.RetentionDays < 0 {
		return errors.New("RETENTION_DAYS must be >= 0")
	}
	if c.RetentionDays == 0 {
		c.RetentionDays = 7
	}
	if c.OutputDir == "" {
		c.OutputDir = "data"
	}
	for i, f := range c.ExtraRSS {
		if f.URL == "" {
			return fmt.Errorf("EXTRA_RSS[%d]: url required", i)
		}
	}
	if c.Concurrency.Fetch <= 0 {
		c.Concurrency.Fetch = 10
	}
	if c.Concurrency.Retry <= 0 {
		c.Concurrency.Retry = 2
	}
	if c.LogFormat == "" {
		c.LogFormat = "pretty"
	}
	if c.LogColor == "" {
		c.LogColor = "auto"
	}
	return nil
}
