package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"go-stock-radar/internal/fetch"
	"go-stock-radar/internal/model"
	"go-stock-radar/internal/newsid"
)

const (
	eastmoneySiteID   = "eastmoney"
	eastmoneySiteName = "东方财富"

	flashPageURL     = "https://kuaixun.eastmoney.com/"
	flashMaxItems    = 50
	eastmoneyAPIURL  = "https://newsapi.eastmoney.com/kuaixun/v1/getlist_115_ajaxResult_1_15_.html"
	eastmoneyTimeout = 20 * time.Second
)

// eastmoneyFlash 抓取东方财富快讯页（HTML）。
type eastmoneyFlash struct{}

func (s *eastmoneyFlash) SiteID() string   { return eastmoneySiteID }
func (s *eastmoneyFlash) SiteName() string { return eastmoneySiteName }

func (s *eastmoneyFlash) Fetch(ctx context.Context, cl *fetch.Client, cutoff time.Time) ([]model.RawItem, model.SourceStatus) {
	st := newStatus(eastmoneySiteID, eastmoneySiteName)
	reqCtx, cancel := context.WithTimeout(ctx, eastmoneyTimeout)
	defer cancel()
	resp, err := cl.Get(reqCtx, flashPageURL)
	if err != nil {
		return failStatus(st, fmt.Errorf("GET %s: %w", flashPageURL, err))
	}
	defer resp.Body.Close()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return failStatus(st, fmt.Errorf("parse html: %w", err))
	}

	var items []model.RawItem
	doc.Find(".news-item, .kuaixun-item, li[data-time]").EachWithBreak(func(i int, li *goquery.Selection) bool {
		if i >= flashMaxItems {
			return false
		}
		a := li.Find("a").First()
		if a.Length() == 0 {
			return true
		}
		title := strings.TrimSpace(a.Text())
		link, _ := a.Attr("href")
		if title == "" || link == "" {
			return true
		}
		if !strings.HasPrefix(link, "http") {
			link = "https://kuaixun.eastmoney.com" + link
		}
		published := parseLooseTime(li.AttrOr("data-time", ""))
		if beforeCutoff(published, cutoff) {
			return true
		}
		items = append(items, model.RawItem{
			SiteID:      eastmoneySiteID,
			SiteName:    eastmoneySiteName,
			Source:      "快讯",
			Title:       title,
			URL:         newsid.NormalizeURL(link),
			PublishedAt: published,
			Meta:        map[string]string{},
		})
		return true
	})
	return okStatus(st, items)
}

// eastmoneyAPI 调用东方财富快讯接口（JSON）。
type eastmoneyAPI struct{}

func (s *eastmoneyAPI) SiteID() string   { return eastmoneySiteID }
func (s *eastmoneyAPI) SiteName() string { return eastmoneySiteName }

type eastmoneyList struct {
	LiveList []struct {
		Title    string `json:"title"`
		Digest   string `json:"digest"`
		URL      string `json:"url"`
		UniqueID string `json:"UniqueID"`
		ShowTime string `json:"showtime"`
		Tag      string `json:"tag"`
		Column   string `json:"column"`
	} `json:"LiveList"`
}

func (s *eastmoneyAPI) Fetch(ctx context.Context, cl *fetch.Client, cutoff time.Time) ([]model.RawItem, model.SourceStatus) {
	st := newStatus(eastmoneySiteID, eastmoneySiteName)
	reqCtx, cancel := context.WithTimeout(ctx, eastmoneyTimeout)
	defer cancel()
	resp, err := cl.Get(reqCtx, eastmoneyAPIURL)
	if err != nil {
		return failStatus(st, fmt.Errorf("GET %s: %w", eastmoneyAPIURL, err))
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failStatus(st, fmt.Errorf("read body: %w", err))
	}
	var data eastmoneyList
	if err := json.Unmarshal(body, &data); err != nil {
		return failStatus(st, fmt.Errorf("decode kuaixun list: %w", err))
	}

	var items []model.RawItem
	for _, entry := range data.LiveList {
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			title = strings.TrimSpace(entry.Digest)
		}
		if title == "" {
			continue
		}
		link := entry.URL
		if link == "" {
			if entry.UniqueID != "" {
				link = fmt.Sprintf("https://stock.eastmoney.com/a/c%s.html", entry.UniqueID)
			} else {
				link = "https://www.eastmoney.com"
			}
		}
		published := parseLooseTime(entry.ShowTime)
		if beforeCutoff(published, cutoff) {
			continue
		}
		source := entry.Tag
		if source == "" {
			source = entry.Column
		}
		if source == "" {
			source = "快讯"
		}
		items = append(items, model.RawItem{
			SiteID:      eastmoneySiteID,
			SiteName:    eastmoneySiteName,
			Source:      source,
			Title:       title,
			URL:         newsid.NormalizeURL(link),
			PublishedAt: published,
			Meta:        map[string]string{},
		})
	}
	return okStatus(st, items)
}
