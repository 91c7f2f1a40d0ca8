// 包 logx 是对标准库 slog 的薄封装：
// - 支持级别/格式/颜色配置（settings.yaml 控制）
// - pretty 格式输出中文等级标签，便于人读
// - 通过 Debugf/Infof/Warnf/Errorf 暴露，底层实现可替换
package logx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// Init 按 level/format/colorMode 初始化全局日志器。
// format 取值 json/text/pretty，pretty 为默认。
func Init(level, format, colorMode string) {
	lv := parseLevel(level)
	opts := &slog.HandlerOptions{Level: lv}
	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		h = slog.NewJSONHandler(os.Stdout, opts)
	case "text":
		h = slog.NewTextHandler(os.Stdout, opts)
	default:
		h = newPrettyHandler(os.Stdout, lv, colorMode)
	}
	slog.SetDefault(slog.New(h))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none", "silent", "off":
		return slog.Level(100)
	default:
		return slog.LevelInfo
	}
}

// 便捷函数：格式化并按级别输出
func Debugf(format string, v ...any) { slog.Debug(fmt.Sprintf(format, v...)) }
func Infof(format string, v ...any)  { slog.Info(fmt.Sprintf(format, v...)) }
func Warnf(format string, v ...any)  { slog.Warn(fmt.Sprintf(format, v...)) }
func Errorf(format string, v ...any) { slog.Error(fmt.Sprintf(format, v...)) }

// prettyHandler 输出“时间 [等级] 消息 k=v”，等级标签为中文。
type prettyHandler struct {
	w     io.Writer
	level slog.Level
	color bool
	mu    *sync.Mutex
	attrs []slog.Attr
}

func newPrettyHandler(w io.Writer, lv slog.Level, colorMode string) slog.Handler {
	return &prettyHandler{w: w, level: lv, color: shouldColor(w, colorMode), mu: &sync.Mutex{}}
}

func (h *prettyHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level && h.level < 100
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	var buf bytes.Buffer
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	buf.WriteString(ts.Format("2006-01-02 15:04:05"))
	buf.WriteByte(' ')
	label := levelLabel(r.Level)
	if h.color {
		label = colorize(label, r.Level)
	}
	buf.WriteString(label)
	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	attrs := append([]slog.Attr{}, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	for _, a := range attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Key)
		buf.WriteByte('=')
		buf.WriteString(a.Value.String())
	}
	buf.WriteByte('\n')
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cp := *h
	cp.attrs = append(cp.attrs, attrs...)
	return &cp
}

func (h *prettyHandler) WithGroup(string) slog.Handler { return h }

func levelLabel(l slog.Level) string {
	switch l {
	case slog.LevelDebug:
		return "[调试]"
	case slog.LevelInfo:
		return "[信息]"
	case slog.LevelWarn:
		return "[警告]"
	case slog.LevelError:
		return "[错误]"
	default:
		return fmt.Sprintf("[L%d]", l)
	}
}

// shouldColor 遵循 NO_COLOR，auto 模式下仅在字符设备上着色。
func shouldColor(w io.Writer, mode string) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "never":
		return false
	default:
		if f, ok := w.(*os.File); ok {
			if fi, err := f.Stat(); err == nil {
				return (fi.Mode() & os.ModeCharDevice) != 0
			}
		}
		return false
	}
}

func colorize(s string, l slog.Level) string {
	code := "0"
	switch l {
	case slog.LevelDebug:
		code = "90"
	case slog.LevelInfo:
		code = "36"
	case slog.LevelWarn:
		code = "33"
	case slog.LevelError:
		code = "31"
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}
