// 包 newsid 负责跨源身份：URL 归一化与稳定短哈希。
// 同一条新闻经不同来源（含跟踪参数差异）应收敛到同一 UID。
package newsid

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"strings"
)

// trackingParams 为固定丢弃的查询参数名（utm_ 前缀另行处理）。
var trackingParams = map[string]struct{}{
	"ref":    {},
	"spm":    {},
	"fbclid": {},
}

// NormalizeURL 归一化链接：
// - scheme/host 转小写，去掉 fragment
// - 丢弃跟踪参数（utm_* 及固定清单），其余参数保持原有相对顺序重编码
// - 去掉末尾斜杠
// 解析失败或无 scheme 时原样返回去除首尾空白的输入，绝不报错中断抓取。
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" {
		return trimmed
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	if u.RawQuery != "" {
		kept := make([]string, 0, 4)
		for _, pair := range strings.Split(u.RawQuery, "&") {
			if pair == "" {
				continue
			}
			key := pair
			if i := strings.IndexByte(pair, '='); i >= 0 {
				key = pair[:i]
			}
			dk, derr := url.QueryUnescape(key)
			if derr != nil {
				dk = key
			}
			lk := strings.ToLower(dk)
			if strings.HasPrefix(lk, "utm_") {
				continue
			}
			if _, drop := trackingParams[lk]; drop {
				continue
			}
			kept = append(kept, pair)
		}
		u.RawQuery = strings.Join(kept, "&")
	}
	// 末尾斜杠全部去除，保证归一化结果幂等
	return strings.TrimRight(u.String(), "/")
}

// Identity 基于归一化 URL 与标题前 80 个字符计算 16 位十六进制 UID。
// 对同一 (url, title) 恒定，与来源和运行次序无关。
func Identity(rawURL, title string) string {
	t := []rune(title)
	if len(t) > 80 {
		t = t[:80]
	}
	key := NormalizeURL(rawURL) + "|" + string(t)
	sum := sha1.Sum([]byte(key))
	return hex.EncodeToString(sum[:])[:16]
}
