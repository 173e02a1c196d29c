package fonts

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/tdewolff/canvas"
)

// cursiveFiles 是手写体字体的文件名，按教学适用度排序：
// Playwrite 系列是面向儿童书写教学设计的字体，优先；随后是常见的
// Google Fonts 手写体；最后是系统自带的斜体。
var cursiveFiles = []string{
	"PlaywriteES-VariableFont_wght.ttf",
	"PlaywriteES-Regular.ttf",
	"PlaywriteUSModern-VariableFont_wght.ttf",
	"PlaywriteUSTrad-VariableFont_wght.ttf",
	"GreatVibes-Regular.ttf",
	"Allura-Regular.ttf",
	"Pacifico-Regular.ttf",
	"DancingScript-Regular.ttf",
	"DancingScript-VariableFont_wght.ttf",
	"LeagueScript-Regular.ttf",
}

// systemItalics 是各平台兜底用的系统斜体路径，排在所有手写体之后。
var systemItalics = []string{
	"/usr/share/fonts/truetype/ubuntu/Ubuntu-Italic.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSerif-Italic.ttf",
}

// fontDirs 返回按优先级排列的字体目录。变量形式便于测试替换目录列表。
var fontDirs = defaultFontDirs

// systemFind 查询系统字体索引，测试中可替换。
var systemFind = findfont.Find

func defaultFontDirs() []string {
	dirs := []string{"/Library/Fonts"}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"))
	}
	dirs = append(dirs, "/usr/share/fonts/truetype", "/usr/local/share/fonts")
	return dirs
}

// Candidate 描述一个候选字体路径及其是否存在，供诊断输出使用。
type Candidate struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// Candidates 返回完整的有序候选列表：extra 里的用户自定路径最优先，
// 然后是各字体目录（含 static/ 子目录）下的手写体文件，最后是系统斜体。
func Candidates(extra []string) []Candidate {
	paths := append([]string(nil), extra...)
	for _, name := range cursiveFiles {
		for _, dir := range fontDirs() {
			paths = append(paths, filepath.Join(dir, name))
			paths = append(paths, filepath.Join(dir, "static", name))
		}
	}
	paths = append(paths, systemItalics...)

	out := make([]Candidate, 0, len(paths))
	for _, p := range paths {
		_, err := os.Stat(p)
		out = append(out, Candidate{Path: p, Exists: err == nil})
	}
	return out
}

// Resolved 描述字体探测的最终结果。
type Resolved struct {
	Src        string // 文件路径或 embed:<name>
	Label      string // 人类可读的名称，用于生成后的提示输出
	IsFallback bool
}

// Resolve 自上而下扫描候选路径，第一个既存在又能成功注册的字体胜出。
// 注册失败不致命，跳到下一个候选；候选耗尽后再问一次系统字体索引，
// 仍然没有就退回内置斜体。该函数从不报错。
func Resolve(extra []string) Resolved {
	for _, c := range Candidates(extra) {
		if !c.Exists {
			continue
		}
		if r, ok := tryLoad(c.Path); ok {
			return r
		}
	}
	// findfont 按文件名在系统字体索引里再找一遍，覆盖非常规安装位置。
	for _, name := range cursiveFiles {
		path, err := systemFind(name)
		if err != nil || path == "" {
			continue
		}
		if r, ok := tryLoad(path); ok {
			return r
		}
	}
	return Fallback()
}

// Fallback 返回保证可用的内置斜体。
func Fallback() Resolved {
	return Resolved{
		Src:        "embed:" + BuiltinItalic,
		Label:      "Latin Modern Roman Italic (integrada)",
		IsFallback: true,
	}
}

// SystemMatches 用 findfont 逐个查询手写体文件名，返回命中的路径，
// 仅供诊断模式展示。
func SystemMatches() map[string]string {
	out := map[string]string{}
	for _, name := range cursiveFiles {
		if path, err := systemFind(name); err == nil && path != "" {
			out[name] = path
		}
	}
	return out
}

func tryLoad(path string) (Resolved, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Resolved{}, false
	}
	if !registers(data) {
		return Resolved{}, false
	}
	label := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Resolved{Src: path, Label: label}, true
}

// registers 验证字体数据确实能注册成一个字族，失败按"换下一个"处理。
func registers(data []byte) bool {
	family := canvas.NewFontFamily("probe")
	return family.LoadFont(data, 0, canvas.FontRegular) == nil
}
