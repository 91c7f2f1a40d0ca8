// 包 window 负责时间窗口筛选与排序后的二次去重。
// 去重比 uid 更强：不同 URL 但标题近似的记录也会收敛。
package window

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"go-stock-radar/internal/model"
	"go-stock-radar/internal/newsid"
)

// Select 保留有效时间不早于 cutoff 的记录，时间不可解析的视为命中窗口。
// 结果按有效时间倒序，不可解析的排在最后。输入切片不被修改。
func Select(records []model.Record, cutoff time.Time) []model.Record {
	kept := make([]model.Record, 0, len(records))
	for _, rec := range records {
		t, ok := rec.EffectiveTime()
		if !ok || !t.Before(cutoff) {
			kept = append(kept, rec)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		ti, oki := kept[i].EffectiveTime()
		tj, okj := kept[j].EffectiveTime()
		if oki != okj {
			return oki // 可解析的排在不可解析的前面
		}
		return ti.After(tj)
	})
	return kept
}

// Dedupe 对已按时间倒序的记录做单趟去重：
// 归一化 URL 或模糊标题键出现过即丢弃，保留首个（即最新）代表。
// 空标题键不参与标题去重。输出长度 ≤ 输入长度。
func Dedupe(ordered []model.Record) []model.Record {
	seenURLs := make(map[string]struct{}, len(ordered))
	seenTitles := make(map[string]struct{}, len(ordered))
	out := make([]model.Record, 0, len(ordered))
	for _, rec := range ordered {
		urlKey := newsid.NormalizeURL(rec.URL)
		titleKey := fuzzyTitleKey(rec.Title)
		if _, dup := seenURLs[urlKey]; dup {
			continue
		}
		if titleKey != "" {
			if _, dup := seenTitles[titleKey]; dup {
				continue
			}
			seenTitles[titleKey] = struct{}{}
		}
		seenURLs[urlKey] = struct{}{}
		out = append(out, rec)
	}
	return out
}

// fuzzyTitleKey 去掉非字母数字字符并转小写，截取前 40 个字符。
func fuzzyTitleKey(title string) string {
	var b strings.Builder
	n := 0
	for _, r := range strings.ToLower(title) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			continue
		}
		b.WriteRune(r)
		n++
		if n >= 40 {
			break
		}
	}
	return b.String()
}
