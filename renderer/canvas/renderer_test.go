package canvasrenderer

import (
	"bytes"
	"testing"

	"github.com/tdewolff/canvas"

	"github.com/jordiprats/caligrafia/fonts"
	"github.com/jordiprats/caligrafia/layout"
)

func testResult(pages int) *layout.Result {
	margin := layout.Margin{Top: 20, Right: 20, Bottom: 20, Left: 20}
	out := &layout.Result{
		Fonts: map[string]layout.FontResource{
			layout.FontModel: {Name: layout.FontModel, Src: "embed:" + fonts.BuiltinItalic},
			layout.FontLabel: {Name: layout.FontLabel, Src: "embed:" + fonts.BuiltinBold, Style: "bold"},
			layout.FontText:  {Name: layout.FontText, Src: "embed:" + fonts.BuiltinRegular},
		},
		Meta: layout.DocumentMeta{Title: "prova", Creator: "caligrafia"},
	}
	for i := 0; i < pages; i++ {
		out.Pages = append(out.Pages, layout.Page{
			Width:  layout.A4Width,
			Height: layout.A4Height,
			Margin: margin,
			Lines: []layout.Line{
				{X1: 20, Y1: 250, X2: 190, Y2: 250, Color: layout.Color{}, Width: 0.3},
				{X1: 20, Y1: 248, X2: 20, Y2: 252, Color: layout.Color{R: 128, G: 128, B: 128}, Width: 0.5},
				{X1: 20, Y1: 240, X2: 190, Y2: 240, Color: layout.Color{R: 178, G: 178, B: 178}, Width: 0.2, Dash: []float64{1, 1}},
			},
			Texts: []layout.TextBox{
				{Content: "Model: frase de prova", X: 20, Y: 260, Font: layout.FontModel, FontSize: 13 * layout.PtToMm, Color: layout.Color{}},
				{Content: "Pàgina 1 de 1", X: 0, Y: 10, Width: layout.A4Width, Font: layout.FontText, FontSize: 9 * layout.PtToMm, Color: layout.Color{R: 128, G: 128, B: 128}, Align: "center"},
			},
		})
	}
	return out
}

// TestRenderProducesPDF 断言：最小布局结果渲染出以 %PDF 开头的非空字节流。
func TestRenderProducesPDF(t *testing.T) {
	data, err := NewRenderer().Render(testResult(1))
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("输出不是 PDF，前缀: %q", data[:min(8, len(data))])
	}
}

// TestRenderMultiPage 断言：多页结果比单页结果输出更多内容。
func TestRenderMultiPage(t *testing.T) {
	r := NewRenderer()
	one, err := r.Render(testResult(1))
	if err != nil {
		t.Fatalf("单页渲染失败: %v", err)
	}
	three, err := NewRenderer().Render(testResult(3))
	if err != nil {
		t.Fatalf("多页渲染失败: %v", err)
	}
	if len(three) <= len(one) {
		t.Fatalf("多页输出未变大: %d <= %d", len(three), len(one))
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	r := NewRenderer()
	if _, err := r.Render(nil); err == nil {
		t.Fatalf("空结果应报错")
	}
	if _, err := r.Render(&layout.Result{}); err == nil {
		t.Fatalf("无页面应报错")
	}
}

// TestRenderUnknownRoleFallsBack 断言：未登记的字体角色退回正文字体而非报错。
func TestRenderUnknownRoleFallsBack(t *testing.T) {
	res := testResult(1)
	res.Pages[0].Texts = append(res.Pages[0].Texts, layout.TextBox{
		Content: "rol desconegut", X: 20, Y: 100, Font: "decorat", FontSize: 9 * layout.PtToMm,
	})
	if _, err := NewRenderer().Render(res); err != nil {
		t.Fatalf("未知角色不应中断渲染: %v", err)
	}
}

// TestRenderMissingFontFileFallsBack 断言：字体文件缺失时退回内置斜体继续渲染。
func TestRenderMissingFontFileFallsBack(t *testing.T) {
	res := testResult(1)
	font := res.Fonts[layout.FontModel]
	font.Src = "/no/such/font.ttf"
	res.Fonts[layout.FontModel] = font
	if _, err := NewRenderer().Render(res); err != nil {
		t.Fatalf("字体缺失不应中断渲染: %v", err)
	}
}

func TestParseFontStyle(t *testing.T) {
	cases := map[string]canvas.FontStyle{
		"":            canvas.FontRegular,
		"bold":        canvas.FontBold,
		"italic":      canvas.FontItalic,
		"Bold Italic": canvas.FontBold | canvas.FontItalic,
		"oblique":     canvas.FontItalic,
	}
	for in, want := range cases {
		if got := parseFontStyle(in); got != want {
			t.Errorf("parseFontStyle(%q) = %v，期望 %v", in, got, want)
		}
	}
}
