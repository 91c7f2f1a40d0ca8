// 包 hot 基于固定关键词表对窗口内记录做字面匹配计票，产出热度榜。
package hot

import (
	"sort"
	"strings"
	"time"

	"go-stock-radar/internal/model"
)

const (
	maxTopics  = 30
	maxSamples = 3
)

// Compute 扫描窗口内（去重前）的记录，统计每个关键词的命中数并抽样标题。
// 计票文本为 标题+空格+来源标签；同一条记录可命中多个关键词。
// 排名按命中数倒序，并列时保持词表声明顺序；最多输出 30 个。
func Compute(records []model.Record, windowHours int, now time.Time) model.HotTopicsPayload {
	counts := make(map[string]int)
	samples := make(map[string][]string)
	for _, rec := range records {
		text := rec.Title + " " + rec.Source
		for _, kw := range keywords {
			if !strings.Contains(text, kw.Keyword) {
				continue
			}
			counts[kw.Keyword]++
			if len(samples[kw.Keyword]) < maxSamples {
				samples[kw.Keyword] = append(samples[kw.Keyword], rec.Title)
			}
		}
	}

	topics := make([]model.HotTopic, 0, len(counts))
	for _, kw := range keywords {
		cnt := counts[kw.Keyword]
		if cnt == 0 {
			continue
		}
		topics = append(topics, model.HotTopic{
			Keyword:      kw.Keyword,
			Category:     kw.Category,
			Count:        cnt,
			SampleTitles: samples[kw.Keyword],
		})
	}
	// 稳定排序保证并列词保持词表顺序
	sort.SliceStable(topics, func(i, j int) bool { return topics[i].Count > topics[j].Count })
	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	return model.HotTopicsPayload{
		GeneratedAt:        now,
		WindowHours:        windowHours,
		TotalItemsAnalyzed: len(records),
		HotTopics:          topics,
	}
}
