// 命令行入口：
// - 解析 flags 与 settings.yaml
// - 初始化日志与 HTTP 客户端
// - 执行一轮聚合更新；单源失败不影响退出码，仅落盘失败返回非零
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go-stock-radar/internal/aggregate"
	"go-stock-radar/internal/config"
	"go-stock-radar/internal/fetch"
	"go-stock-radar/internal/logx"
	"go-stock-radar/internal/sources"
)

func main() {
	var (
		configPath  = flag.String("config", "settings.yaml", "path to settings.yaml")
		outputDir   = flag.String("output-dir", "", "output directory (overrides settings)")
		windowHours = flag.Int("window-hours", 0, "recency window in hours (overrides settings)")
		rssOPML     = flag.String("rss-opml", "", "path to OPML subscription list (overrides settings)")
	)
	flag.Parse()

	// 1) 加载配置，命令行覆盖文件取值
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *windowHours > 0 {
		cfg.WindowHours = *windowHours
	}
	if *rssOPML != "" {
		cfg.RSSOPML = *rssOPML
	}

	// 2) 初始化日志：级别/格式/颜色
	logx.Init(cfg.LogLevel, cfg.LogFormat, cfg.LogColor)

	// 3) 初始化 HTTP 客户端（含代理与 5xx 重试）
	cl, err := fetch.New(fetch.Options{
		ProxyHTTP:  cfg.Proxy.HTTP,
		ProxyHTTPS: cfg.Proxy.HTTPS,
		Timeout:    25 * time.Second,
		Retry:      cfg.Concurrency.Retry,
	})
	if err != nil {
		log.Fatalf("http client: %v", err)
	}

	// 4) 组装数据源并运行一轮更新
	run := aggregate.New(cfg, cl, sources.FromConfig(cfg))
	if err := run.Run(context.Background()); err != nil {
		logx.Errorf("运行失败：%v", err)
		os.Exit(1)
	}
}
