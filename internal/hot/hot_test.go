package hot

import (
	"testing"
	"time"

	"go-stock-radar/internal/model"
)

func titled(title, source string) model.Record {
	return model.Record{Title: title, Source: source}
}

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestCompute_CountsAndSamples(t *testing.T) {
	records := []model.Record{
		titled("芯片大涨", "快讯"),
		titled("芯片出口创新高", "快讯"),
		titled("白酒回调", "快讯"),
	}
	out := Compute(records, 24, testNow)
	if out.TotalItemsAnalyzed != 3 {
		t.Fatalf("analyzed = %d", out.TotalItemsAnalyzed)
	}
	byKw := map[string]model.HotTopic{}
	for _, tp := range out.HotTopics {
		byKw[tp.Keyword] = tp
	}
	chip, ok := byKw["芯片"]
	if !ok || chip.Count != 2 {
		t.Fatalf("芯片 = %+v", chip)
	}
	if chip.Category != "板块" {
		t.Fatalf("category = %q", chip.Category)
	}
	if len(chip.SampleTitles) != 2 || chip.SampleTitles[0] != "芯片大涨" {
		t.Fatalf("samples = %v", chip.SampleTitles)
	}
	if _, ok := byKw["白酒"]; !ok {
		t.Fatal("白酒 missing")
	}
	if _, ok := byKw["新能源"]; ok {
		t.Fatal("zero-count keyword must be dropped")
	}
}

func TestCompute_OneRecordHitsMultipleKeywords(t *testing.T) {
	records := []model.Record{titled("半导体与芯片产业迎政策利好", "快讯")}
	out := Compute(records, 24, testNow)
	counts := map[string]int{}
	for _, tp := range out.HotTopics {
		counts[tp.Keyword] = tp.Count
	}
	if counts["半导体"] != 1 || counts["芯片"] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestCompute_SourceLabelCounts(t *testing.T) {
	// 计票文本包含来源标签，标题未命中也可由来源命中
	records := []model.Record{titled("今日要闻汇总", "港股")}
	out := Compute(records, 24, testNow)
	if len(out.HotTopics) != 1 || out.HotTopics[0].Keyword != "港股" {
		t.Fatalf("topics = %+v", out.HotTopics)
	}
}

func TestCompute_StableTieOrder(t *testing.T) {
	// CPI 与 PMI 各命中 3 次，词表中 CPI 在前，输出须保持该顺序
	var records []model.Record
	for i := 0; i < 3; i++ {
		records = append(records, titled("PMI数据发布", "宏观"))
		records = append(records, titled("CPI数据发布", "宏观"))
	}
	out := Compute(records, 24, testNow)
	var iCPI, iPMI = -1, -1
	for i, tp := range out.HotTopics {
		switch tp.Keyword {
		case "CPI":
			iCPI = i
		case "PMI":
			iPMI = i
		}
	}
	if iCPI < 0 || iPMI < 0 {
		t.Fatalf("missing topics: %+v", out.HotTopics)
	}
	if iCPI > iPMI {
		t.Fatalf("tie order broken: CPI at %d, PMI at %d", iCPI, iPMI)
	}
}

func TestCompute_SampleCapAndTruncation(t *testing.T) {
	var records []model.Record
	for i := 0; i < 10; i++ {
		records = append(records, titled("芯片新闻", "快讯"))
	}
	out := Compute(records, 24, testNow)
	for _, tp := range out.HotTopics {
		if len(tp.SampleTitles) > 3 {
			t.Fatalf("samples over cap: %d", len(tp.SampleTitles))
		}
	}
	if len(out.HotTopics) > 30 {
		t.Fatalf("topics over cap: %d", len(out.HotTopics))
	}
}
