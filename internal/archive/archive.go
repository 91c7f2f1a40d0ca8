// 包 archive 维护跨轮次累积的记录归档：
// 加载上一轮快照 → 合并本轮新记录 → 按 last_seen 时效剪枝。
// 归档是显式传递的值，整个生命周期由编排方持有。
package archive

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"go-stock-radar/internal/logx"
	"go-stock-radar/internal/model"
)

// Load 从上一轮的 archive.json 重建 uid→Record 映射。
// 文件缺失或损坏时退化为空归档并记警告，不中断本轮运行。
func Load(path string) map[string]model.Record {
	arch := make(map[string]model.Record)
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logx.Warnf("归档读取失败：%v", err)
		}
		return arch
	}
	var payload model.ArchivePayload
	if err := json.Unmarshal(b, &payload); err != nil {
		logx.Warnf("归档解析失败，使用空归档：%v", err)
		return arch
	}
	for _, rec := range payload.Items {
		if rec.UID == "" {
			continue
		}
		arch[rec.UID] = rec
	}
	return arch
}

// Merge 将本轮记录并入归档：
// 已存在的 uid 仅把 last_seen 推进到 now（标题/URL/first_seen 不变）；
// 新 uid 直接插入。与合并顺序无关。
func Merge(arch map[string]model.Record, fresh []model.Record, now time.Time) {
	for _, rec := range fresh {
		if old, ok := arch[rec.UID]; ok {
			old.LastSeenAt = now
			arch[rec.UID] = old
			continue
		}
		arch[rec.UID] = rec
	}
}

// Prune 删除 last_seen 早于 now-retentionDays 的条目；恰在边界上的保留。
// last_seen 缺失（零值）的条目按 now 处理，即本轮保留。
func Prune(arch map[string]model.Record, now time.Time, retentionDays int) {
	if retentionDays <= 0 {
		return
	}
	cutoff := now.AddDate(0, 0, -retentionDays)
	for uid, rec := range arch {
		seen := rec.LastSeenAt
		if seen.IsZero() {
			seen = now
		}
		if seen.Before(cutoff) {
			delete(arch, uid)
		}
	}
}

// Sorted 返回按 last_seen 倒序的归档记录切片，用于快照输出。
func Sorted(arch map[string]model.Record) []model.Record {
	out := make([]model.Record, 0, len(arch))
	for _, rec := range arch {
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastSeenAt.After(out[j].LastSeenAt)
	})
	return out
}
