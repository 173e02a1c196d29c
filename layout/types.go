package layout

// 该文件定义布局结果与字帖配置，供布局计算、渲染与调试 JSON 共用。
// 所有坐标与长度均以毫米（mm）为单位，原点在页面左下角，y 向上增长。

// Result 保存布局后的页面与字体资源信息。
type Result struct {
	Pages  []Page                  `json:"pages"`
	Fonts  map[string]FontResource `json:"fonts"`
	Meta   DocumentMeta            `json:"meta"`
	Blocks int                     `json:"blocks"` // 实际排入的例句块总数
}

// FontResource 描述一个字体资源，Src 可以是文件路径或 embed:<name> 形式的内置字体。
type FontResource struct {
	Name       string `json:"name"`
	Src        string `json:"src"`
	Style      string `json:"style"`
	Label      string `json:"label"`      // 人类可读的说明，用于诊断输出
	IsFallback bool   `json:"isFallback"` // 是否为兜底字体
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Page 记录页面尺寸、边距与可以直接渲染的元素。
type Page struct {
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Margin Margin    `json:"margin"`
	Lines  []Line    `json:"lines,omitempty"`
	Texts  []TextBox `json:"texts,omitempty"`
}

// Margin 以毫米为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Line 表示一条线段。Dash 为空时画实线，否则按给定的 mm 间隔画虚线。
type Line struct {
	X1    float64   `json:"x1"`
	Y1    float64   `json:"y1"`
	X2    float64   `json:"x2"`
	Y2    float64   `json:"y2"`
	Color Color     `json:"color"`
	Width float64   `json:"width"` // 线宽（mm），<=0 时由渲染器给默认值
	Dash  []float64 `json:"dash,omitempty"`
}

// TextBox 表示一个已经确定基线位置的文本。
// Y 即文本基线的 y 坐标；临摹引导文字的基线与书写线重合正是依赖这一约定。
type TextBox struct {
	Content  string  `json:"content"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`    // 对齐参考宽度；居中对齐时以 X..X+Width 为范围
	Font     string  `json:"font"`     // Result.Fonts 中的键
	FontSize float64 `json:"fontSize"` // mm
	Color    Color   `json:"color"`
	Align    string  `json:"align,omitempty"` // left（默认）/center
}

// Geometry 描述页面几何：尺寸与四边距。
// 前置条件：边距留出的可用宽高必须为正，布局引擎不再重复校验。
type Geometry struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// UsableWidth 返回去掉左右边距后的可写宽度。
func (g Geometry) UsableWidth() float64 { return g.Width - g.Margin.Left - g.Margin.Right }

// UsableHeight 返回去掉上下边距后的可写高度。
func (g Geometry) UsableHeight() float64 { return g.Height - g.Margin.Top - g.Margin.Bottom }

// BlockSpec 描述一个例句练习块的配置。
// 所有长度单位均为 mm，且要求大于 0；违反前置条件只会产生异常的版面，不会崩溃。
type BlockSpec struct {
	Lines        int     `json:"lines"`        // 每个例句的书写线数量
	LineSpacing  float64 `json:"lineSpacing"`  // 相邻书写线之间的间距
	BlockSpacing float64 `json:"blockSpacing"` // 相邻例句块之间的间距
	HeaderDrop   float64 `json:"headerDrop"`   // 进入例句标题前下移的距离
	HeaderGap    float64 `json:"headerGap"`    // 例句标题到第一条书写线的距离
	Guide        bool    `json:"guide"`        // 是否在第一条书写线上绘制临摹引导
	XHeightRule  bool    `json:"xHeightRule"`  // 是否在书写线上方绘制 x 字高虚线
	ModelSize    float64 `json:"modelSize"`    // 例句字号（mm）
	GuideSize    float64 `json:"guideSize"`    // 引导文字字号（mm）
}

// Height 返回一个练习块在光标上消耗的总高度，也是排版时的装入判定值。
// 最后一条书写线之后只追加 BlockSpacing-LineSpacing，
// 这样相邻块之间的视觉间距才严格等于 BlockSpacing 而不是间距加一行。
func (b BlockSpec) Height() float64 {
	return b.HeaderDrop + b.HeaderGap + float64(b.Lines)*b.LineSpacing + (b.BlockSpacing - b.LineSpacing)
}

// Doc 是布局引擎的输入：标题、页数、几何、块配置与文档元信息。
type Doc struct {
	Title     string                  `json:"title"`
	PageCount int                     `json:"pageCount"`
	Geometry  Geometry                `json:"geometry"`
	Block     BlockSpec               `json:"block"`
	Fonts     map[string]FontResource `json:"fonts"`
	Meta      DocumentMeta            `json:"meta"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Subject string `json:"subject"`
	Creator string `json:"creator"`
}
