package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"go-stock-radar/internal/fetch"
	"go-stock-radar/internal/model"
	"go-stock-radar/internal/newsid"
)

// RSSConfig 描述一个 RSS 数据源。
type RSSConfig struct {
	SiteID   string
	SiteName string
	Source   string
	URL      string
}

// rssSource 通过 gofeed 解析 RSS/Atom 订阅。
type rssSource struct {
	cfg RSSConfig
}

// NewRSS 创建 RSS 数据源。
func NewRSS(cfg RSSConfig) Source { return &rssSource{cfg: cfg} }

func (s *rssSource) SiteID() string   { return s.cfg.SiteID }
func (s *rssSource) SiteName() string { return s.cfg.SiteName }

func (s *rssSource) Fetch(ctx context.Context, cl *fetch.Client, cutoff time.Time) ([]model.RawItem, model.SourceStatus) {
	st := newStatus(s.cfg.SiteID, s.cfg.SiteName)
	reqCtx, cancel := context.WithTimeout(ctx, 25*time.Second)
	defer cancel()
	// gofeed 不直接接收自定义 http.Client，先用共享客户端抓取再解析
	resp, err := cl.Get(reqCtx, s.cfg.URL)
	if err != nil {
		return failStatus(st, fmt.Errorf("GET feed %s: %w", s.cfg.URL, err))
	}
	defer resp.Body.Close()
	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return failStatus(st, fmt.Errorf("parse feed %s: %w", s.cfg.URL, err))
	}

	var items []model.RawItem
	for _, entry := range feed.Items {
		title := strings.TrimSpace(entry.Title)
		link := strings.TrimSpace(entry.Link)
		if title == "" || link == "" {
			continue
		}
		published := pickTime(entry.PublishedParsed, entry.UpdatedParsed)
		if beforeCutoff(published, cutoff) {
			continue
		}
		// 条目自带分类时覆盖默认来源标签
		source := s.cfg.Source
		if len(entry.Categories) > 0 && strings.TrimSpace(entry.Categories[0]) != "" {
			source = strings.TrimSpace(entry.Categories[0])
		}
		items = append(items, model.RawItem{
			SiteID:      s.cfg.SiteID,
			SiteName:    s.cfg.SiteName,
			Source:      source,
			Title:       title,
			URL:         newsid.NormalizeURL(link),
			PublishedAt: published,
			Meta:        map[string]string{},
		})
	}
	return okStatus(st, items)
}

func pickTime(a, b *time.Time) *time.Time {
	for _, t := range []*time.Time{a, b} {
		if t != nil {
			u := t.UTC()
			return &u
		}
	}
	return nil
}
