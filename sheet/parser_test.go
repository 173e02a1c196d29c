package sheet

import (
	"math"
	"strings"
	"testing"
)

const sampleSheet = `
// perfil d'exemple
sheet "Pràctica de lletra lligada" {
  pages 3
  lines 4
  spacing 10mm
  block-gap 1.8cm
  guide on
  xheight off
  cursive yes
  font "/tmp/DancingScript-Regular.ttf"
  sentences {
    "La pau comença amb un somriure."
    "El coneixement és poder."
  }
}
`

func resolve(t *testing.T, input string) *Definition {
	t.Helper()
	f, err := ParseString(input)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	def, err := f.Resolve()
	if err != nil {
		t.Fatalf("求值失败: %v", err)
	}
	return def
}

// TestParseSample 覆盖完整示例：所有设置项、单位换算与例句块。
func TestParseSample(t *testing.T) {
	def := resolve(t, sampleSheet)

	if def.Title != "Pràctica de lletra lligada" {
		t.Fatalf("标题不符: %q", def.Title)
	}
	if def.Pages == nil || *def.Pages != 3 {
		t.Fatalf("pages 不符: %v", def.Pages)
	}
	if def.Lines == nil || *def.Lines != 4 {
		t.Fatalf("lines 不符: %v", def.Lines)
	}
	if def.Spacing == nil || *def.Spacing != 10 {
		t.Fatalf("spacing 不符: %v", def.Spacing)
	}
	// 1.8cm = 18mm
	if def.BlockGap == nil || math.Abs(*def.BlockGap-18) > 1e-9 {
		t.Fatalf("block-gap 不符: %v", def.BlockGap)
	}
	if def.Guide == nil || !*def.Guide {
		t.Fatalf("guide 不符: %v", def.Guide)
	}
	if def.XHeight == nil || *def.XHeight {
		t.Fatalf("xheight 不符: %v", def.XHeight)
	}
	if def.Cursive == nil || !*def.Cursive {
		t.Fatalf("cursive 不符: %v", def.Cursive)
	}
	if def.FontPath != "/tmp/DancingScript-Regular.ttf" {
		t.Fatalf("font 不符: %q", def.FontPath)
	}
	if len(def.Sentences) != 2 || def.Sentences[0] != "La pau comença amb un somriure." {
		t.Fatalf("sentences 不符: %v", def.Sentences)
	}
}

// TestParseMinimal 断言：空主体合法，所有可选项保持未设置。
func TestParseMinimal(t *testing.T) {
	def := resolve(t, `sheet "T" {}`)
	if def.Title != "T" {
		t.Fatalf("标题不符: %q", def.Title)
	}
	if def.Pages != nil || def.Lines != nil || def.Spacing != nil ||
		def.Guide != nil || def.Cursive != nil || def.FontPath != "" || len(def.Sentences) != 0 {
		t.Fatalf("可选项不应被设置: %+v", def)
	}
}

// TestParseSemicolons 断言：分号与换行都可作语句分隔。
func TestParseSemicolons(t *testing.T) {
	def := resolve(t, `sheet "T" { pages 2; lines 5; guide off }`)
	if *def.Pages != 2 || *def.Lines != 5 || *def.Guide {
		t.Fatalf("分号分隔解析错误: %+v", def)
	}
}

// TestSpacingUnits 断言：spacing 接受 mm/cm/in/pt 与裸数字（默认 mm）。
func TestSpacingUnits(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12mm", 12},
		{"1.2cm", 12},
		{"1in", 25.4},
		{"12", 12},
	}
	for _, c := range cases {
		def := resolve(t, `sheet "T" { spacing `+c.in+` }`)
		if math.Abs(*def.Spacing-c.want) > 1e-9 {
			t.Errorf("spacing %s: 期望 %g，实际 %g", c.in, c.want, *def.Spacing)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"未知设置项", `sheet "T" { widht 3 }`, "未知的设置项"},
		{"pages 带单位", `sheet "T" { pages 3mm }`, "整数"},
		{"spacing 非数字", `sheet "T" { spacing on }`, "长度"},
		{"guide 非布尔", `sheet "T" { guide 1 }`, "on/off"},
		{"font 非字符串", `sheet "T" { font abc }`, "字符串"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f, err := ParseString(c.input)
			if err != nil {
				// 语法层直接拒绝也算通过，但这里的用例都应能进入求值阶段。
				t.Fatalf("解析失败: %v", err)
			}
			_, err = f.Resolve()
			if err == nil {
				t.Fatalf("期望报错")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("错误信息不含 %q: %v", c.want, err)
			}
		})
	}
}

// TestParseSyntaxError 断言：缺少右花括号是语法错误。
func TestParseSyntaxError(t *testing.T) {
	if _, err := ParseString(`sheet "T" { pages 3`); err == nil {
		t.Fatalf("残缺输入应报语法错误")
	}
}
