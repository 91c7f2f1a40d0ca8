package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-stock-radar/internal/model"
)

func TestWrite_AllArtifacts(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	win := model.WindowPayload{GeneratedAt: now, WindowHours: 24, SiteStats: []model.SiteStat{}, Items: []model.Record{}, ItemsAll: []model.Record{}, ItemsAllRaw: []model.Record{}}
	arch := model.ArchivePayload{GeneratedAt: now, Items: []model.Record{{
		UID: "u", Title: "芯片 & 半导体", URL: "https://x.com/a?id=1&t=2",
		FirstSeenAt: now, LastSeenAt: now, Meta: map[string]string{},
	}}}
	st := model.StatusPayload{GeneratedAt: now, Sites: []model.SourceStatus{}, FailedSites: []string{}}
	hot := model.HotTopicsPayload{GeneratedAt: now, HotTopics: []model.HotTopic{}}

	if err := Write(dir, win, arch, st, hot); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, name := range []string{WindowFile, ArchiveFile, StatusFile, HotTopicsFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
	// URL 与中文保持可读：不做 HTML 转义
	b, _ := os.ReadFile(filepath.Join(dir, ArchiveFile))
	body := string(b)
	if strings.Contains(body, `&`) {
		t.Fatalf("unexpected html escaping: %s", body)
	}
	if !strings.Contains(body, "芯片 & 半导体") {
		t.Fatalf("title mangled: %s", body)
	}
}

func TestWrite_BadDirFails(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "missing-subdir"), model.WindowPayload{}, model.ArchivePayload{}, model.StatusPayload{}, model.HotTopicsPayload{})
	if err == nil {
		t.Fatal("expected error writing into missing dir")
	}
}
