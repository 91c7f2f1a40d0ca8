// 包 fetch 封装 HTTP 客户端（代理/超时/重试），供各数据源抓取器共享。
// 仅对网络错误与 5xx 状态做有限次重试，4xx 立即失败。
package fetch

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"
)

// browserUA 为默认浏览器 UA，减少反爬误判；可用环境变量 RADAR_UA 覆盖。
const browserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// Client 为带重试的 HTTP 客户端，可被多个抓取器并发使用。
type Client struct {
	http  *http.Client
	retry int
}

// Options 为客户端构造参数。
type Options struct {
	ProxyHTTP  string
	ProxyHTTPS string
	Timeout    time.Duration
	Retry      int
}

// New 创建客户端，支持 http/https 代理与基础超时配置。
func New(opts Options) (*Client, error) {
	transport := &http.Transport{
		Proxy: func(req *http.Request) (*url.URL, error) {
			if req.URL.Scheme == "https" && opts.ProxyHTTPS != "" {
				return url.Parse(opts.ProxyHTTPS)
			}
			if req.URL.Scheme == "http" && opts.ProxyHTTP != "" {
				return url.Parse(opts.ProxyHTTP)
			}
			return http.ProxyFromEnvironment(req)
		},
		DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	cl := &http.Client{Transport: transport}
	if opts.Timeout <= 0 {
		opts.Timeout = 25 * time.Second
	}
	cl.Timeout = opts.Timeout
	return &Client{http: cl, retry: opts.Retry}, nil
}

// Get 发起 GET 请求，2xx 即返回。
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	return c.GetWithHeaders(ctx, url, nil)
}

// GetWithHeaders 同 Get，并附加额外请求头（部分接口需要 Referer/Origin）。
// 网络错误与 5xx 按线性退避重试 retry 次。
func (c *Client) GetWithHeaders(ctx context.Context, url string, extra map[string]string) (*http.Response, error) {
	var lastErr error
	attempts := c.retry + 1
	for i := 0; i < attempts; i++ {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if reqErr != nil {
			return nil, fmt.Errorf("new request: %w", reqErr)
		}
		ua := os.Getenv("RADAR_UA")
		if ua == "" {
			ua = browserUA
		}
		req.Header.Set("User-Agent", ua)
		req.Header.Set("Accept", "application/json, text/html, */*")
		req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
		for k, v := range extra {
			req.Header.Set(k, v)
		}
		resp, err := c.http.Do(req)
		if err == nil {
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return resp, nil
			}
			lastErr = fmt.Errorf("http status: %s", resp.Status)
			if resp.Body != nil {
				resp.Body.Close()
			}
			// 仅服务端错误值得重试
			if resp.StatusCode < 500 {
				return nil, lastErr
			}
		} else {
			lastErr = err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(i+1) * 500 * time.Millisecond):
		}
	}
	return nil, lastErr
}
