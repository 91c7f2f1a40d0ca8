package hot

// Keyword 为热度追踪词条，关键词与其所属分类。
type Keyword struct {
	Keyword  string
	Category string
}

// 热度追踪关键词表。声明顺序即并列排名时的先后顺序。
var keywords = []Keyword{
	// 行业板块
	{"新能源", "板块"},
	{"半导体", "板块"},
	{"芯片", "板块"},
	{"人工智能", "板块"},
	{"光伏", "板块"},
	{"储能", "板块"},
	{"机器人", "板块"},
	{"医药", "板块"},
	{"医疗", "板块"},
	{"消费", "板块"},
	{"白酒", "板块"},
	{"军工", "板块"},
	{"国防", "板块"},
	{"金融", "板块"},
	{"银行", "板块"},
	{"保险", "板块"},
	{"券商", "板块"},
	{"地产", "板块"},
	{"房地产", "板块"},
	{"汽车", "板块"},
	{"新能源车", "板块"},
	{"煤炭", "板块"},
	{"钢铁", "板块"},
	{"有色", "板块"},
	{"化工", "板块"},
	{"石油", "板块"},
	{"天然气", "板块"},
	{"5G", "板块"},
	{"云计算", "板块"},
	{"大数据", "板块"},
	{"量子", "板块"},
	{"低空经济", "板块"},
	// 市场动态
	{"涨停", "市场"},
	{"跌停", "市场"},
	{"连板", "市场"},
	{"北向资金", "市场"},
	{"外资", "市场"},
	{"融资融券", "市场"},
	{"IPO", "市场"},
	{"退市", "市场"},
	{"减持", "市场"},
	{"增持", "市场"},
	{"回购", "市场"},
	{"分红", "市场"},
	// 港股
	{"港股", "港股"},
	{"恒指", "港股"},
	{"恒生科技", "港股"},
	{"南向资金", "港股"},
	// 宏观政策
	{"降准", "宏观"},
	{"降息", "宏观"},
	{"LPR", "宏观"},
	{"CPI", "宏观"},
	{"PMI", "宏观"},
	{"GDP", "宏观"},
	{"通胀", "宏观"},
	{"美联储", "宏观"},
	{"央行", "宏观"},
	{"证监会", "宏观"},
	{"国务院", "宏观"},
}

// Keywords 返回词表副本，供调用方展示或测试。
func Keywords() []Keyword {
	out := make([]Keyword, len(keywords))
	copy(out, keywords)
	return out
}
