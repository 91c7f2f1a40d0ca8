package window

import (
	"testing"
	"time"

	"go-stock-radar/internal/model"
)

func ts(t time.Time) *time.Time { return &t }

func recAt(uid, url, title string, published *time.Time) model.Record {
	return model.Record{UID: uid, Title: title, URL: url, PublishedAt: published}
}

func TestSelect_WindowAndOrder(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-24 * time.Hour)
	records := []model.Record{
		recAt("old", "https://x.com/old", "旧闻", ts(now.Add(-30*time.Hour))),
		recAt("mid", "https://x.com/mid", "次新", ts(now.Add(-2*time.Hour))),
		recAt("new", "https://x.com/new", "最新", ts(now.Add(-time.Hour))),
		recAt("unknown", "https://x.com/u", "无时间", nil), // 时间不可解析，始终命中窗口
	}
	got := Select(records, cutoff)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].UID != "new" || got[1].UID != "mid" {
		t.Fatalf("order = %s %s", got[0].UID, got[1].UID)
	}
	if got[2].UID != "unknown" {
		t.Fatalf("unresolvable timestamp must sort last, got %s", got[2].UID)
	}
}

func TestSelect_FirstSeenFallback(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-24 * time.Hour)
	r := recAt("fs", "https://x.com/fs", "只有首次出现时间", nil)
	r.FirstSeenAt = now.Add(-48 * time.Hour)
	got := Select([]model.Record{r}, cutoff)
	if len(got) != 0 {
		t.Fatalf("first_seen outside window should be excluded, got %d", len(got))
	}
}

func TestDedupe_SharedNormalizedURL(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	records := []model.Record{
		recAt("a", "https://x.com/a?utm_source=wx", "标题甲", ts(now)),
		recAt("b", "https://x.com/a", "标题乙完全不同", ts(now.Add(-time.Hour))),
	}
	got := Dedupe(records)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].UID != "a" {
		t.Fatalf("should keep the first (most recent), got %s", got[0].UID)
	}
}

func TestDedupe_FuzzyTitle(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	records := []model.Record{
		recAt("a", "https://x.com/1", "央行宣布降准0.5个百分点", ts(now)),
		recAt("b", "https://y.com/2", "央行宣布降准 0.5 个百分点！", ts(now.Add(-time.Hour))),
		recAt("c", "https://z.com/3", "完全无关的新闻", ts(now.Add(-2*time.Hour))),
	}
	got := Dedupe(records)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].UID != "a" || got[1].UID != "c" {
		t.Fatalf("order = %s %s", got[0].UID, got[1].UID)
	}
}

func TestDedupe_EmptyTitleKeyNeverCollapses(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	records := []model.Record{
		recAt("a", "https://x.com/1", "！！！", ts(now)),
		recAt("b", "https://x.com/2", "……", ts(now)),
	}
	got := Dedupe(records)
	if len(got) != 2 {
		t.Fatalf("punctuation-only titles must not collapse, len = %d", len(got))
	}
}

func TestFuzzyTitleKey(t *testing.T) {
	if k := fuzzyTitleKey("A股-大涨！Top 10"); k != "a股大涨top10" {
		t.Fatalf("key = %q", k)
	}
	long := ""
	for i := 0; i < 50; i++ {
		long += "字"
	}
	if k := fuzzyTitleKey(long); len([]rune(k)) != 40 {
		t.Fatalf("key runes = %d, want 40", len([]rune(k)))
	}
}
