// 包 model 定义数据模型（原始条目/归档记录/站点状态/热词/快照载荷）。
package model

import "time"

// RawItem 为抓取器产出的原始条目，赋予身份后转换为 Record，本身不持久化。
type RawItem struct {
	SiteID      string
	SiteName    string
	Source      string
	Title       string
	URL         string
	PublishedAt *time.Time // UTC；无法解析时为 nil
	Meta        map[string]string
}

// Record 为归档与窗口输出的持久化单元。
// UID 由归一化 URL 与标题前 80 字符决定，创建后不变；
// LastSeenAt 是归档中唯一会被更新的字段。
type Record struct {
	UID         string            `json:"uid"`
	SiteID      string            `json:"site_id"`
	SiteName    string            `json:"site_name"`
	Source      string            `json:"source"`
	Title       string            `json:"title"`
	URL         string            `json:"url"`
	PublishedAt *time.Time        `json:"published_at"`
	FirstSeenAt time.Time         `json:"first_seen_at"`
	LastSeenAt  time.Time         `json:"last_seen_at"`
	Meta        map[string]string `json:"meta"`
}

// EffectiveTime 返回有效时间：优先发布时间，其次首次出现时间。
// ok=false 表示两者皆不可解析（排序时视为最旧，窗口过滤时视为命中）。
func (r Record) EffectiveTime() (time.Time, bool) {
	if r.PublishedAt != nil && !r.PublishedAt.IsZero() {
		return *r.PublishedAt, true
	}
	if !r.FirstSeenAt.IsZero() {
		return r.FirstSeenAt, true
	}
	return time.Time{}, false
}

// SourceStatus 为单个数据源单轮抓取的结果，失败也必须产出。
type SourceStatus struct {
	SiteID    string `json:"site_id"`
	SiteName  string `json:"site_name"`
	OK        bool   `json:"ok"`
	ItemCount int    `json:"item_count"`
	Error     string `json:"error,omitempty"`
}

// HotTopic 为窗口内单个关键词的热度，每轮重新计算，不跨轮持久化。
type HotTopic struct {
	Keyword      string   `json:"keyword"`
	Category     string   `json:"category"`
	Count        int      `json:"count"`
	SampleTitles []string `json:"sample_titles"`
}

// SiteStat 为窗口内按站点的条目统计。
type SiteStat struct {
	SiteID   string `json:"site_id"`
	SiteName string `json:"site_name"`
	Count    int    `json:"count"`
}

// WindowPayload 对应 latest-24h.json。
// TotalItemsAllMode/ItemsAll/ItemsAllRaw 是兼容别名：
// 分别等于去重窗口计数、去重窗口与未去重窗口本身。
type WindowPayload struct {
	GeneratedAt       time.Time  `json:"generated_at"`
	WindowHours       int        `json:"window_hours"`
	TotalItems        int        `json:"total_items"`
	TotalItemsRaw     int        `json:"total_items_raw"`
	TotalItemsAllMode int        `json:"total_items_all_mode"`
	ArchiveTotal      int        `json:"archive_total"`
	SiteCount         int        `json:"site_count"`
	SourceCount       int        `json:"source_count"`
	SiteStats         []SiteStat `json:"site_stats"`
	Items             []Record   `json:"items"`
	ItemsAll          []Record   `json:"items_all"`
	ItemsAllRaw       []Record   `json:"items_all_raw"`
}

// ArchivePayload 对应 archive.json，Items 按 last_seen_at 倒序。
type ArchivePayload struct {
	GeneratedAt time.Time `json:"generated_at"`
	TotalItems  int       `json:"total_items"`
	Items       []Record  `json:"items"`
}

// StatusPayload 对应 source-status.json。
type StatusPayload struct {
	GeneratedAt     time.Time      `json:"generated_at"`
	Sites           []SourceStatus `json:"sites"`
	SuccessfulSites int            `json:"successful_sites"`
	FailedSites     []string       `json:"failed_sites"`
	FetchedRawItems int            `json:"fetched_raw_items"`
}

// HotTopicsPayload 对应 hot-topics.json（至多 30 个热词）。
type HotTopicsPayload struct {
	GeneratedAt        time.Time  `json:"generated_at"`
	WindowHours        int        `json:"window_hours"`
	TotalItemsAnalyzed int        `json:"total_items_analyzed"`
	HotTopics          []HotTopic `json:"hot_topics"`
}
