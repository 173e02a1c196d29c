package layout

import (
	"fmt"
)

// ISO A4 纵向页面尺寸（mm）。
const (
	A4Width  = 210.0
	A4Height = 297.0
)

const (
	titleAllowance = 15.0 // 首页标题占用的垂直空间
	footerBaseline = 10.0 // 页脚基线距页面底边的固定距离，与光标位置无关
	labelIndent    = 15.0 // "Model:" 标签到例句的水平偏移

	tickHalf  = 2.0          // 起笔刻度线向上下各延伸的长度
	ruleWidth = 0.8 * PtToMm // 书写线线宽
	tickWidth = 1.5 * PtToMm // 起笔刻度线更粗，提示"从这里开始"
	xRuleGap  = 1.0          // x 字高虚线的 dash 间隔

	titleSize  = 16 * PtToMm
	labelSize  = 9 * PtToMm
	footerSize = 9 * PtToMm
)

// 字体角色名，同时也是 Result.Fonts 的键。
const (
	FontModel = "model" // 例句与临摹引导使用的手写体
	FontLabel = "label" // 标签与标题使用的粗体
	FontText  = "text"  // 页脚使用的正文字体
)

// footerFormat 是页脚文案（加泰罗尼亚语），页码从 1 开始。
const footerFormat = "Pàgina %d de %d"

var (
	colorInk   = Color{R: 0, G: 0, B: 0}
	colorLabel = Color{R: 77, G: 77, B: 77}
	colorMuted = Color{R: 128, G: 128, B: 128} // 起笔刻度与页脚共用的中灰
	colorGuide = Color{R: 178, G: 178, B: 178}
)

// SentenceSource 提供下一条例句。sentences.Pool 是其常规实现，
// 测试中可以注入确定性的桩实现。
type SentenceSource interface {
	Next() string
}

// Build 按配置把例句练习块排入各页，返回可直接渲染的布局结果。
//
// 每页算法：光标重置到 height-topMargin；首页先排标题；随后只要剩余空间
// 还装得下一个完整练习块就排一个块；页脚固定在距底边 footerBaseline 处。
// 装入判定发生在排块之前，不会出现排了一半的块；一个块都装不下时该页
// 只有标题/页脚，属于正常情况而非错误。
func Build(doc *Doc, pool SentenceSource) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档配置为空")
	}
	if pool == nil {
		return nil, fmt.Errorf("layout: 缺少例句来源")
	}
	if doc.PageCount <= 0 {
		return nil, fmt.Errorf("页数必须大于 0，实际 %d", doc.PageCount)
	}

	geo := doc.Geometry
	block := doc.Block
	need := block.Height()
	collector := newPageCollector(geo)
	blocks := 0

	for page := 0; page < doc.PageCount; page++ {
		acc := collector.curr()
		if page > 0 {
			acc = collector.newPage()
		}

		// 光标：每页唯一的可变标量，自上而下单调递减。
		cursor := geo.Height - geo.Margin.Top

		if page == 0 && doc.Title != "" {
			acc.appendText(title(doc.Title, cursor, geo))
			cursor -= titleAllowance
		}

		for cursor-geo.Margin.Bottom >= need {
			sentence := pool.Next()

			cursor -= block.HeaderDrop
			acc.appendTexts(modelHeader(sentence, cursor, geo, block))

			cursor -= block.HeaderGap
			for i := 0; i < block.Lines; i++ {
				if block.XHeightRule {
					// 虚线在书写线之上，先排它才能保持 y 坐标递减。
					acc.appendLine(xHeightRule(cursor, geo, block))
				}
				acc.appendLines(ruledLine(cursor, geo))
				if i == 0 && block.Guide {
					acc.appendText(tracingGuide(sentence, cursor, geo, block))
				}
				cursor -= block.LineSpacing
			}
			cursor -= block.BlockSpacing - block.LineSpacing
			blocks++
		}

		acc.appendText(footer(page+1, doc.PageCount, geo))
	}

	return &Result{
		Pages:  collector.pages(),
		Fonts:  doc.Fonts,
		Meta:   doc.Meta,
		Blocks: blocks,
	}, nil
}

// --- 练习块的绘制原语，均为无状态函数：给定几何与 y 坐标，产出页面元素 ---

// ruledLine 产出一条书写线：横贯可写宽度的实线，外加左边距处的起笔刻度。
func ruledLine(y float64, geo Geometry) []Line {
	left := geo.Margin.Left
	right := geo.Width - geo.Margin.Right
	return []Line{
		{X1: left, Y1: y, X2: right, Y2: y, Color: colorInk, Width: ruleWidth},
		{X1: left, Y1: y - tickHalf, X2: left, Y2: y + tickHalf, Color: colorMuted, Width: tickWidth},
	}
}

// xHeightRule 产出书写线上方的 x 字高辅助虚线，高度取例句字号的一半。
func xHeightRule(y float64, geo Geometry, block BlockSpec) Line {
	h := y + block.ModelSize*0.5
	return Line{
		X1:    geo.Margin.Left,
		Y1:    h,
		X2:    geo.Width - geo.Margin.Right,
		Y2:    h,
		Color: colorGuide,
		Width: ruleWidth * 0.5,
		Dash:  []float64{xRuleGap, xRuleGap},
	}
}

// modelHeader 产出例句标题："Model:" 标签加上手写体例句，水平偏移固定。
func modelHeader(sentence string, y float64, geo Geometry, block BlockSpec) []TextBox {
	return []TextBox{
		{
			Content:  "Model:",
			X:        geo.Margin.Left,
			Y:        y,
			Font:     FontLabel,
			FontSize: labelSize,
			Color:    colorLabel,
		},
		{
			Content:  sentence,
			X:        geo.Margin.Left + labelIndent,
			Y:        y,
			Font:     FontModel,
			FontSize: block.ModelSize,
			Color:    colorInk,
		},
	}
}

// tracingGuide 产出浅灰色的临摹文字。基线直接落在书写线的 y 上而不是
// 悬在线上方：引导是用来描摹的，不是用来阅读的。
func tracingGuide(sentence string, y float64, geo Geometry, block BlockSpec) TextBox {
	return TextBox{
		Content:  sentence,
		X:        geo.Margin.Left,
		Y:        y,
		Font:     FontModel,
		FontSize: block.GuideSize,
		Color:    colorGuide,
	}
}

// title 产出整页居中的粗体标题。
func title(text string, y float64, geo Geometry) TextBox {
	return TextBox{
		Content:  text,
		X:        0,
		Y:        y,
		Width:    geo.Width,
		Font:     FontLabel,
		FontSize: titleSize,
		Color:    colorInk,
		Align:    "center",
	}
}

// footer 产出居中的页码，距底边的位置固定。
func footer(page, total int, geo Geometry) TextBox {
	return TextBox{
		Content:  fmt.Sprintf(footerFormat, page, total),
		X:        0,
		Y:        footerBaseline,
		Width:    geo.Width,
		Font:     FontText,
		FontSize: footerSize,
		Color:    colorMuted,
		Align:    "center",
	}
}

// --- 页面收集器 ---

type pageAccumulator struct {
	lines []Line
	texts []TextBox
}

func (p *pageAccumulator) appendLine(l Line)        { p.lines = append(p.lines, l) }
func (p *pageAccumulator) appendLines(ls []Line)    { p.lines = append(p.lines, ls...) }
func (p *pageAccumulator) appendText(t TextBox)     { p.texts = append(p.texts, t) }
func (p *pageAccumulator) appendTexts(ts []TextBox) { p.texts = append(p.texts, ts...) }

type pageCollector struct {
	geo     Geometry
	accs    []*pageAccumulator
	current int
}

func newPageCollector(geo Geometry) *pageCollector {
	pc := &pageCollector{geo: geo}
	pc.newPage()
	return pc
}

func (pc *pageCollector) newPage() *pageAccumulator {
	acc := &pageAccumulator{}
	pc.accs = append(pc.accs, acc)
	pc.current = len(pc.accs) - 1
	return acc
}

func (pc *pageCollector) curr() *pageAccumulator {
	if len(pc.accs) == 0 {
		return pc.newPage()
	}
	return pc.accs[pc.current]
}

func (pc *pageCollector) pages() []Page {
	out := make([]Page, len(pc.accs))
	for i, acc := range pc.accs {
		out[i] = Page{
			Width:  pc.geo.Width,
			Height: pc.geo.Height,
			Margin: pc.geo.Margin,
			Lines:  acc.lines,
			Texts:  acc.texts,
		}
	}
	return out
}
