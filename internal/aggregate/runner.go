// 包 aggregate 负责主流程编排：
// - 并发抓取注入的数据源列表并隔离单源失败
// - 归档合并/剪枝、窗口去重、热度榜与四个快照的落盘
package aggregate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go-stock-radar/internal/archive"
	"go-stock-radar/internal/config"
	"go-stock-radar/internal/export"
	"go-stock-radar/internal/fetch"
	"go-stock-radar/internal/hot"
	"go-stock-radar/internal/logx"
	"go-stock-radar/internal/model"
	"go-stock-radar/internal/newsid"
	"go-stock-radar/internal/sources"
	"go-stock-radar/internal/window"
)

// Runner 聚合执行器，持有配置、HTTP 客户端与本轮数据源列表。
// 所有跨轮状态都在归档快照里，Runner 本身无长生命周期状态。
type Runner struct {
	cfg   *config.Config
	fetch *fetch.Client
	srcs  []sources.Source
}

// New 创建 Runner。数据源列表在启动时静态组装（sources.FromConfig）。
func New(cfg *config.Config, cl *fetch.Client, srcs []sources.Source) *Runner {
	return &Runner{cfg: cfg, fetch: cl, srcs: srcs}
}

// Run 执行一轮更新：抓取→归档→窗口→热度→落盘。
// 单个数据源的失败只体现为状态记录；仅输出目录/写文件失败返回错误。
func (r *Runner) Run(ctx context.Context) error {
	now := time.Now().UTC()
	cutoff := now.Add(-time.Duration(r.cfg.WindowHours) * time.Hour)

	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", r.cfg.OutputDir, err)
	}
	arch := archive.Load(filepath.Join(r.cfg.OutputDir, export.ArchiveFile))
	logx.Infof("归档加载：%d 条", len(arch))

	logx.Infof("数据源：%d 个，窗口=%dh", len(r.srcs), r.cfg.WindowHours)

	// 有界并发抓取；panic 在 worker 边界折叠为失败状态
	buf := newFetchBuffer()
	sem := make(chan struct{}, maxInt(1, r.cfg.Concurrency.Fetch))
	var wg sync.WaitGroup
	for _, src := range r.srcs {
		src := src
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			items, st := safeFetch(ctx, src, r.fetch, cutoff)
			buf.Add(items, st)
			if st.OK {
				logx.Infof("%s: OK（%d 条）", st.SiteID, st.ItemCount)
			} else {
				logx.Warnf("%s: FAIL（%s）", st.SiteID, truncate(st.Error, 60))
			}
		}()
	}
	wg.Wait()

	rawItems, statuses := buf.Snapshot()
	logx.Infof("原始条目：%d 条", len(rawItems))

	// 原始条目 → 记录，并入归档后按时效剪枝
	records := make([]model.Record, 0, len(rawItems))
	for _, it := range rawItems {
		records = append(records, toRecord(it, now))
	}
	archive.Merge(arch, records, now)
	archive.Prune(arch, now, r.cfg.RetentionDays)

	latest := window.Select(records, cutoff)
	deduped := window.Dedupe(latest)
	hotPayload := hot.Compute(latest, r.cfg.WindowHours, now)

	winPayload := r.windowPayload(now, latest, deduped, len(arch))
	archPayload := model.ArchivePayload{
		GeneratedAt: now,
		TotalItems:  len(arch),
		Items:       archive.Sorted(arch),
	}
	stPayload := statusPayload(now, statuses, len(rawItems))

	if err := export.Write(r.cfg.OutputDir, winPayload, archPayload, stPayload, hotPayload); err != nil {
		return err
	}
	logx.Infof("✓ %s：%d 条（去重后）", export.WindowFile, len(deduped))
	logx.Infof("✓ %s：%d 条", export.ArchiveFile, len(arch))
	logx.Infof("✓ %s：%d 个热词", export.HotTopicsFile, len(hotPayload.HotTopics))
	return nil
}

// safeFetch 在编排边界兜底：抓取器内部的 panic 转换为失败状态，
// 不得影响兄弟数据源。
func safeFetch(ctx context.Context, src sources.Source, cl *fetch.Client, cutoff time.Time) (items []model.RawItem, st model.SourceStatus) {
	defer func() {
		if p := recover(); p != nil {
			items = nil
			st = model.SourceStatus{
				SiteID:   src.SiteID(),
				SiteName: src.SiteName(),
				OK:       false,
				Error:    fmt.Sprintf("panic: %v", p),
			}
		}
	}()
	return src.Fetch(ctx, cl, cutoff)
}

// toRecord 赋予原始条目稳定身份并打上首次/最近出现时间。
func toRecord(it model.RawItem, now time.Time) model.Record {
	meta := it.Meta
	if meta == nil {
		meta = map[string]string{}
	}
	return model.Record{
		UID:         newsid.Identity(it.URL, it.Title),
		SiteID:      it.SiteID,
		SiteName:    it.SiteName,
		Source:      it.Source,
		Title:       it.Title,
		URL:         newsid.NormalizeURL(it.URL),
		PublishedAt: it.PublishedAt,
		FirstSeenAt: now,
		LastSeenAt:  now,
		Meta:        meta,
	}
}

// windowPayload 组装 latest-24h.json：站点统计按条数倒序，
// 兼容别名字段与去重窗口保持一致。
func (r *Runner) windowPayload(now time.Time, latest, deduped []model.Record, archiveTotal int) model.WindowPayload {
	statIndex := make(map[string]int)
	stats := make([]model.SiteStat, 0)
	srcSet := make(map[string]struct{})
	for _, rec := range deduped {
		if i, ok := statIndex[rec.SiteID]; ok {
			stats[i].Count++
		} else {
			statIndex[rec.SiteID] = len(stats)
			stats = append(stats, model.SiteStat{SiteID: rec.SiteID, SiteName: rec.SiteName, Count: 1})
		}
		srcSet[rec.SiteID+"::"+rec.Source] = struct{}{}
	}
	// 稳定排序：并列站点保持首次出现顺序
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	return model.WindowPayload{
		GeneratedAt:       now,
		WindowHours:       r.cfg.WindowHours,
		TotalItems:        len(deduped),
		TotalItemsRaw:     len(latest),
		TotalItemsAllMode: len(deduped),
		ArchiveTotal:      archiveTotal,
		SiteCount:         len(stats),
		SourceCount:       len(srcSet),
		SiteStats:         stats,
		Items:             deduped,
		ItemsAll:          deduped,
		ItemsAllRaw:       latest,
	}
}

func statusPayload(now time.Time, statuses []model.SourceStatus, rawCount int) model.StatusPayload {
	ok := 0
	failed := []string{}
	for _, st := range statuses {
		if st.OK {
			ok++
		} else {
			failed = append(failed, st.SiteID)
		}
	}
	return model.StatusPayload{
		GeneratedAt:     now,
		Sites:           statuses,
		SuccessfulSites: ok,
		FailedSites:     failed,
		FetchedRawItems: rawCount,
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
