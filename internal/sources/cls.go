package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"go-stock-radar/internal/fetch"
	"go-stock-radar/internal/model"
	"go-stock-radar/internal/newsid"
)

const clsFlowURL = "https://www.cls.cn/v1/bullet/flow/list?app=CLS&os=web&sv=7.7.5"

// clsTelegraph 抓取财联社电报流（JSON 接口）。
// 电报没有独立标题，以正文摘要充当标题。
type clsTelegraph struct{}

func (s *clsTelegraph) SiteID() string   { return "cls" }
func (s *clsTelegraph) SiteName() string { return "财联社" }

type clsFlow struct {
	Data struct {
		RollData []struct {
			ID      int64  `json:"id"`
			Brief   string `json:"brief"`
			Content string `json:"content"`
			CTime   int64  `json:"ctime"`
		} `json:"roll_data"`
	} `json:"data"`
}

func (s *clsTelegraph) Fetch(ctx context.Context, cl *fetch.Client, cutoff time.Time) ([]model.RawItem, model.SourceStatus) {
	st := newStatus(s.SiteID(), s.SiteName())
	reqCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	headers := map[string]string{
		"Referer": "https://www.cls.cn/telegraph",
		"Origin":  "https://www.cls.cn",
	}
	resp, err := cl.GetWithHeaders(reqCtx, clsFlowURL, headers)
	if err != nil {
		return failStatus(st, fmt.Errorf("GET cls flow: %w", err))
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failStatus(st, fmt.Errorf("read body: %w", err))
	}
	var flow clsFlow
	if err := json.Unmarshal(body, &flow); err != nil {
		return failStatus(st, fmt.Errorf("decode flow list: %w", err))
	}

	var items []model.RawItem
	for _, entry := range flow.Data.RollData {
		content := entry.Brief
		if content == "" {
			content = entry.Content
		}
		content = strings.TrimSpace(stripHTML(content))
		if content == "" {
			continue
		}
		link := "https://www.cls.cn/telegraph"
		if entry.ID > 0 {
			link = "https://www.cls.cn/detail/" + strconv.FormatInt(entry.ID, 10)
		}
		var published *time.Time
		if entry.CTime > 0 {
			t := time.Unix(entry.CTime, 0).UTC()
			published = &t
		}
		if beforeCutoff(published, cutoff) {
			continue
		}
		items = append(items, model.RawItem{
			SiteID:      s.SiteID(),
			SiteName:    s.SiteName(),
			Source:      "电报",
			Title:       content,
			URL:         newsid.NormalizeURL(link),
			PublishedAt: published,
			Meta:        map[string]string{},
		})
	}
	return okStatus(st, items)
}

// stripHTML 去掉摘要中夹带的标签，失败时原样返回。
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
