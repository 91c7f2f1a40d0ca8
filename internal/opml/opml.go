// 包 opml 提供订阅清单（OPML outline）的一次性解析。
// 解析失败只记警告并返回空列表，绝不中断主流程。
package opml

import (
	"encoding/xml"
	"os"

	"go-stock-radar/internal/logx"
)

// Feed 为 OPML 中的单个订阅。
type Feed struct {
	URL   string
	Title string
}

type outline struct {
	XMLURL   string    `xml:"xmlUrl,attr"`
	Title    string    `xml:"title,attr"`
	Text     string    `xml:"text,attr"`
	Children []outline `xml:"outline"`
}

type document struct {
	Body struct {
		Outlines []outline `xml:"outline"`
	} `xml:"body"`
}

// Load 解析 OPML 文件，返回 {url, title} 列表。
func Load(path string) []Feed {
	b, err := os.ReadFile(path)
	if err != nil {
		logx.Warnf("OPML 读取失败：%v", err)
		return nil
	}
	var doc document
	if err := xml.Unmarshal(b, &doc); err != nil {
		logx.Warnf("OPML 解析失败：%v", err)
		return nil
	}
	var feeds []Feed
	var walk func([]outline)
	walk = func(list []outline) {
		for _, o := range list {
			if o.XMLURL != "" {
				title := o.Title
				if title == "" {
					title = o.Text
				}
				if title == "" {
					title = o.XMLURL
				}
				feeds = append(feeds, Feed{URL: o.XMLURL, Title: title})
			}
			walk(o.Children)
		}
	}
	walk(doc.Body.Outlines)
	return feeds
}
