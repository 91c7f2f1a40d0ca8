package aggregate

import (
	"sync"

	"go-stock-radar/internal/model"
)

// fetchBuffer 汇集各抓取器的并发结果，互斥锁保护写入。
// 追加顺序由网络完成顺序决定，后续窗口排序会消除这种不确定性。
type fetchBuffer struct {
	mu       sync.Mutex
	items    []model.RawItem
	statuses []model.SourceStatus
}

func newFetchBuffer() *fetchBuffer {
	return &fetchBuffer{}
}

// Add 记录一个数据源的抓取结果；失败的源也必须贡献一条状态。
func (b *fetchBuffer) Add(items []model.RawItem, st model.SourceStatus) {
	b.mu.Lock()
	b.items = append(b.items, items...)
	b.statuses = append(b.statuses, st)
	b.mu.Unlock()
}

// Snapshot 返回累计的条目与状态副本。
func (b *fetchBuffer) Snapshot() ([]model.RawItem, []model.SourceStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	items := make([]model.RawItem, len(b.items))
	copy(items, b.items)
	statuses := make([]model.SourceStatus, len(b.statuses))
	copy(statuses, b.statuses)
	return items, statuses
}
