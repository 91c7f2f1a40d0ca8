// 包 sources 定义数据源抓取器及静态注册表：
// - Source：统一的抓取能力，任何失败都折叠为状态记录，绝不外抛
// - 内置源：两个东方财富抓取器、财联社电报与固定 RSS 列表
// - 用户源：OPML 订阅与 settings.yaml 追加的 RSS
package sources

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"time"

	"github.com/araddon/dateparse"

	"go-stock-radar/internal/config"
	"go-stock-radar/internal/fetch"
	"go-stock-radar/internal/logx"
	"go-stock-radar/internal/model"
	"go-stock-radar/internal/opml"
)

// Source 为单个数据源的抓取器。Fetch 返回条目与一条状态记录；
// 内部任何错误都转换为 ok=false 的状态，不得越过边界。
// 发布时间可解析且早于 cutoff 的条目在源内即被丢弃，
// 时间不可解析的条目照常返回，交由窗口过滤兜底。
type Source interface {
	SiteID() string
	SiteName() string
	Fetch(ctx context.Context, cl *fetch.Client, cutoff time.Time) ([]model.RawItem, model.SourceStatus)
}

// 内置 RSS 数据源
var builtinRSS = []RSSConfig{
	{SiteID: "wallstreetcn", SiteName: "华尔街见闻", Source: "华尔街见闻", URL: "https://wallstreetcn.com/rss"},
	{SiteID: "36kr", SiteName: "36氪", Source: "36氪", URL: "https://36kr.com/feed"},
	{SiteID: "huxiu", SiteName: "虎嗅网", Source: "虎嗅网", URL: "https://www.huxiu.com/rss/0.xml"},
	{SiteID: "sina_finance", SiteName: "新浪财经", Source: "财经滚动", URL: "https://rss.sina.com.cn/news/fin_roll/01.xml"},
	{SiteID: "stcn", SiteName: "证券时报", Source: "证券时报", URL: "https://www.stcn.com/rss/index.xml"},
	{SiteID: "cs", SiteName: "中国证券报", Source: "中国证券报", URL: "https://www.cs.com.cn/rss/rss.xml"},
	{SiteID: "tmtpost", SiteName: "钛媒体", Source: "钛媒体", URL: "https://www.tmtpost.com/rss"},
	{SiteID: "jiemian", SiteName: "界面新闻", Source: "界面新闻", URL: "https://www.jiemian.com/rss/index.xml"},
}

// Builtin 返回全部内置数据源：自定义抓取器在前，RSS 列表在后。
func Builtin() []Source {
	out := []Source{
		&eastmoneyFlash{},
		&eastmoneyAPI{},
		&clsTelegraph{},
	}
	for _, cfg := range builtinRSS {
		out = append(out, NewRSS(cfg))
	}
	return out
}

// FromConfig 组装本轮全部数据源：内置源 + settings 追加 RSS + OPML 订阅。
func FromConfig(cfg *config.Config) []Source {
	srcs := Builtin()
	for _, f := range cfg.ExtraRSS {
		if f.SiteID == "" {
			srcs = append(srcs, UserFeed(f.SiteName, f.URL))
			continue
		}
		srcs = append(srcs, NewRSS(RSSConfig{
			SiteID:   f.SiteID,
			SiteName: f.SiteName,
			Source:   f.Source,
			URL:      f.URL,
		}))
	}
	if cfg.RSSOPML != "" {
		feeds := opml.Load(cfg.RSSOPML)
		logx.Infof("OPML：加载 %d 个 RSS 订阅", len(feeds))
		for _, f := range feeds {
			srcs = append(srcs, UserFeed(f.Title, f.URL))
		}
	}
	return srcs
}

// UserFeed 将用户提供的订阅（OPML 或 settings）转换为 RSS 数据源，
// site_id 由订阅地址派生，保证跨轮稳定。
func UserFeed(title, url string) Source {
	sum := md5.Sum([]byte(url))
	return NewRSS(RSSConfig{
		SiteID:   "rss_" + hex.EncodeToString(sum[:])[:8],
		SiteName: title,
		Source:   title,
		URL:      url,
	})
}

// 大陆源的无时区时间按东八区解释
var cst = time.FixedZone("CST", 8*60*60)

// parseLooseTime 宽松解析时间字符串：无时区的按 CST，统一转 UTC。
// 解析失败返回 nil，条目仍然保留（时间视为不可解析）。
func parseLooseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := dateparse.ParseIn(s, cst)
	if err != nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// beforeCutoff 判断发布时间可解析且严格早于 cutoff。
func beforeCutoff(published *time.Time, cutoff time.Time) bool {
	return published != nil && published.Before(cutoff)
}

func newStatus(siteID, siteName string) model.SourceStatus {
	return model.SourceStatus{SiteID: siteID, SiteName: siteName}
}

func failStatus(st model.SourceStatus, err error) ([]model.RawItem, model.SourceStatus) {
	st.OK = false
	st.ItemCount = 0
	st.Error = err.Error()
	return nil, st
}

func okStatus(st model.SourceStatus, items []model.RawItem) ([]model.RawItem, model.SourceStatus) {
	st.OK = true
	st.ItemCount = len(items)
	return items, st
}
