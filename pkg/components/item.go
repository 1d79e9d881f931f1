package components

// Item 轮播中的一部影片
// 由外部数据源提供，核心只读取
type Item struct {
	// Key 唯一键（影片标题）
	Key string `yaml:"title"`
	// ImageRef 海报地址
	ImageRef string `yaml:"poster"`

	// 以下字段仅用于展示
	Rating   float64 `yaml:"rating,omitempty"`
	Synopsis string  `yaml:"synopsis,omitempty"`
	Trailer  string  `yaml:"trailer,omitempty"`
}
