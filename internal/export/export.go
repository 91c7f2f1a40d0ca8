// 包 export 负责把四个快照写入输出目录。
// 下游按轮次消费全部四个文件，任何一个写失败都视为致命错误上抛。
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go-stock-radar/internal/model"
)

// 快照文件名
const (
	WindowFile    = "latest-24h.json"
	ArchiveFile   = "archive.json"
	StatusFile    = "source-status.json"
	HotTopicsFile = "hot-topics.json"
)

// Write 将四个快照写入 dir（带缩进格式，不转义 HTML 以保持中文与链接可读）。
func Write(dir string, win model.WindowPayload, arch model.ArchivePayload, st model.StatusPayload, hot model.HotTopicsPayload) error {
	if err := writeJSON(filepath.Join(dir, WindowFile), win); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, ArchiveFile), arch); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, StatusFile), st); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, HotTopicsFile), hot)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json to %s: %w", path, err)
	}
	return nil
}
