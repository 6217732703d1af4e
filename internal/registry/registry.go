package registry

// Market is the exchange an instrument trades on.
type Market string

const (
	MarketUS Market = "US"
	MarketCN Market = "CN"
	MarketHK Market = "HK"
	MarketTW Market = "TW"
)

// Sector is the coarse dashboard grouping.
type Sector string

const (
	SectorHardware    Sector = "hardware"
	SectorApplication Sector = "application"
)

// Instrument describes one tracked stock. SinaCode is the batch quote
// provider's identifier and is empty for markets it does not cover; those
// instruments must resolve through the daily-bar provider via Ticker.
type Instrument struct {
	ID        string
	SinaCode  string
	Ticker    string
	Name      string
	Market    Market
	Sector    Sector
	SubSector string
	Query     string
}

// The watch-list is fixed at build time and read-only at runtime.
var instruments = []Instrument{
	// US
	{ID: "NVDA", SinaCode: "gb_nvda", Ticker: "NVDA", Name: "英伟达", Market: MarketUS, Sector: SectorHardware, SubSector: "GPU 芯片", Query: "NVIDIA stock news"},
	{ID: "AMD", SinaCode: "gb_amd", Ticker: "AMD", Name: "超微半导体", Market: MarketUS, Sector: SectorHardware, SubSector: "GPU 芯片", Query: "AMD stock news"},
	{ID: "AVGO", SinaCode: "gb_avgo", Ticker: "AVGO", Name: "博通", Market: MarketUS, Sector: SectorHardware, SubSector: "网络/ASIC", Query: "Broadcom stock news"},
	{ID: "MU", SinaCode: "gb_mu", Ticker: "MU", Name: "镁光科技", Market: MarketUS, Sector: SectorHardware, SubSector: "HBM 存储", Query: "Micron Technology stock news"},
	{ID: "TSM_US", SinaCode: "gb_tsm", Ticker: "TSM", Name: "台积电(ADR)", Market: MarketUS, Sector: SectorHardware, SubSector: "晶圆代工", Query: "TSMC stock news"},
	{ID: "SMCI", SinaCode: "gb_smci", Ticker: "SMCI", Name: "超微电脑", Market: MarketUS, Sector: SectorHardware, SubSector: "AI 服务器", Query: "Super Micro Computer stock news"},
	{ID: "MRVL", SinaCode: "gb_mrvl", Ticker: "MRVL", Name: "Marvell", Market: MarketUS, Sector: SectorHardware, SubSector: "光/电芯片", Query: "Marvell Technology news"},
	{ID: "TSLA", SinaCode: "gb_tsla", Ticker: "TSLA", Name: "特斯拉", Market: MarketUS, Sector: SectorHardware, SubSector: "机器人/Dojo", Query: "Tesla stock news"},
	{ID: "MSFT", SinaCode: "gb_msft", Ticker: "MSFT", Name: "微软", Market: MarketUS, Sector: SectorApplication, SubSector: "云/模型", Query: "Microsoft AI news"},
	{ID: "GOOGL", SinaCode: "gb_googl", Ticker: "GOOGL", Name: "谷歌", Market: MarketUS, Sector: SectorApplication, SubSector: "搜索/模型", Query: "Google Alphabet AI news"},
	{ID: "META", SinaCode: "gb_meta", Ticker: "META", Name: "Meta", Market: MarketUS, Sector: SectorApplication, SubSector: "社交/模型", Query: "Meta Platforms AI news"},
	{ID: "APP", SinaCode: "gb_app", Ticker: "APP", Name: "AppLovin", Market: MarketUS, Sector: SectorApplication, SubSector: "AI 营销", Query: "AppLovin stock news"},
	{ID: "PLTR", SinaCode: "gb_pltr", Ticker: "PLTR", Name: "Palantir", Market: MarketUS, Sector: SectorApplication, SubSector: "数据分析", Query: "Palantir Technologies news"},

	// CN A-share
	{ID: "601138", SinaCode: "sh601138", Ticker: "601138.SS", Name: "工业富联", Market: MarketCN, Sector: SectorHardware, SubSector: "AI 服务器", Query: "工业富联 新闻"},
	{ID: "300308", SinaCode: "sz300308", Ticker: "300308.SZ", Name: "中际旭创", Market: MarketCN, Sector: SectorHardware, SubSector: "光模块", Query: "中际旭创 新闻"},
	{ID: "688041", SinaCode: "sh688041", Ticker: "688041.SS", Name: "海光信息", Market: MarketCN, Sector: SectorHardware, SubSector: "AI 芯片", Query: "海光信息 新闻"},
	{ID: "688256", SinaCode: "sh688256", Ticker: "688256.SS", Name: "寒武纪", Market: MarketCN, Sector: SectorHardware, SubSector: "AI 芯片", Query: "寒武纪 新闻"},
	{ID: "300394", SinaCode: "sz300394", Ticker: "300394.SZ", Name: "天孚通信", Market: MarketCN, Sector: SectorHardware, SubSector: "光器件", Query: "天孚通信 新闻"},
	{ID: "002463", SinaCode: "sz002463", Ticker: "002463.SZ", Name: "沪电股份", Market: MarketCN, Sector: SectorHardware, SubSector: "PCB", Query: "沪电股份 新闻"},
	{ID: "002230", SinaCode: "sz002230", Ticker: "002230.SZ", Name: "科大讯飞", Market: MarketCN, Sector: SectorApplication, SubSector: "语音/模型", Query: "科大讯飞 新闻"},
	{ID: "688111", SinaCode: "sh688111", Ticker: "688111.SS", Name: "金山办公", Market: MarketCN, Sector: SectorApplication, SubSector: "办公 AI", Query: "金山办公 新闻"},

	// HK
	{ID: "0981", SinaCode: "rt_hk00981", Ticker: "0981.HK", Name: "中芯国际", Market: MarketHK, Sector: SectorHardware, SubSector: "晶圆代工", Query: "中芯国际 港股 新闻"},
	{ID: "0700", SinaCode: "rt_hk00700", Ticker: "0700.HK", Name: "腾讯控股", Market: MarketHK, Sector: SectorApplication, SubSector: "社交/游戏", Query: "腾讯控股 新闻"},
	{ID: "09988", SinaCode: "rt_hk09988", Ticker: "9988.HK", Name: "阿里巴巴", Market: MarketHK, Sector: SectorApplication, SubSector: "云/电商", Query: "阿里巴巴 港股 新闻"},
	{ID: "09888", SinaCode: "rt_hk09888", Ticker: "9888.HK", Name: "百度集团", Market: MarketHK, Sector: SectorApplication, SubSector: "搜索/驾驶", Query: "百度集团 港股 新闻"},
	{ID: "02513", SinaCode: "rt_hk02513", Ticker: "02513.HK", Name: "智谱 AI", Market: MarketHK, Sector: SectorApplication, SubSector: "大模型", Query: "智谱AI 新闻"},
	{ID: "00020", SinaCode: "rt_hk00020", Ticker: "0020.HK", Name: "商汤", Market: MarketHK, Sector: SectorApplication, SubSector: "视觉 AI", Query: "商汤科技 新闻"},

	// TW (not covered by the batch provider)
	{ID: "2330", Ticker: "2330.TW", Name: "台积电", Market: MarketTW, Sector: SectorHardware, SubSector: "晶圆代工", Query: "台积电 财报 新闻"},
	{ID: "2317", Ticker: "2317.TW", Name: "鸿海", Market: MarketTW, Sector: SectorHardware, SubSector: "代工/服务器", Query: "鸿海精密 新闻"},
	{ID: "2454", Ticker: "2454.TW", Name: "联发科", Market: MarketTW, Sector: SectorHardware, SubSector: "IC 设计", Query: "联发科 新闻"},
	{ID: "2382", Ticker: "2382.TW", Name: "广达", Market: MarketTW, Sector: SectorHardware, SubSector: "AI 服务器", Query: "广达电脑 新闻"},
}

// List returns the watch-list in its fixed order.
func List() []Instrument {
	out := make([]Instrument, len(instruments))
	copy(out, instruments)
	return out
}

// Count returns the watch-list size.
func Count() int { return len(instruments) }

// PartitionBySource splits the watch-list into instruments the batch quote
// provider covers and those that must go through the daily-bar provider.
func PartitionBySource() (primary, fallback []Instrument) {
	for _, inst := range instruments {
		if inst.SinaCode != "" {
			primary = append(primary, inst)
		} else {
			fallback = append(fallback, inst)
		}
	}
	return primary, fallback
}
