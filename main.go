package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jordiprats/caligrafia/config"
	"github.com/jordiprats/caligrafia/fonts"
	"github.com/jordiprats/caligrafia/layout"
	"github.com/jordiprats/caligrafia/renderer"
	canvasrenderer "github.com/jordiprats/caligrafia/renderer/canvas"
	"github.com/jordiprats/caligrafia/sentences"
	"github.com/jordiprats/caligrafia/sheet"
)

// 内置默认值，与命令行/配置文件/字帖定义三层覆盖配合使用。
const (
	defaultOutput   = "calligrafia_practica.pdf"
	defaultTitle    = "Pràctica de Cal·ligrafia"
	defaultPages    = 5
	defaultLines    = 3
	defaultSpacing  = 12.0 // mm
	defaultBlockGap = 20.0 // mm

	pageMargin = 20.0 // mm，四边相同
	headerDrop = 8.0  // mm，块顶到例句标题的距离
	headerGap  = 10.0 // mm，例句标题到第一条书写线的距离

	modelSizePt = 13.0
	guideSizePt = 13.0
)

var (
	flagOutput    string
	flagTitle     string
	flagPages     int
	flagLines     int
	flagSpacing   float64
	flagBlockGap  float64
	flagNoGuide   bool
	flagXHeight   bool
	flagNoCursive bool
	flagFont      string
	flagSheet     string
	flagSeed      int64
	flagDebug     string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "caligrafia",
		Short:         "生成 A4 书法练习字帖 PDF",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runGenerate,
	}

	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", defaultOutput, "PDF 输出路径")
	rootCmd.Flags().StringVar(&flagTitle, "title", defaultTitle, "首页标题")
	rootCmd.Flags().IntVarP(&flagPages, "pages", "p", defaultPages, "页数")
	rootCmd.Flags().IntVarP(&flagLines, "lines", "l", defaultLines, "每个例句的书写线数量")
	rootCmd.Flags().Float64VarP(&flagSpacing, "spacing", "s", defaultSpacing, "书写线间距（mm）")
	rootCmd.Flags().Float64Var(&flagBlockGap, "block-gap", defaultBlockGap, "例句块之间的间距（mm）")
	rootCmd.Flags().BoolVar(&flagNoGuide, "no-guide", false, "不绘制临摹引导文字")
	rootCmd.Flags().BoolVar(&flagXHeight, "xheight", false, "在书写线上方绘制 x 字高虚线")
	rootCmd.Flags().BoolVar(&flagNoCursive, "no-cursive", false, "不探测手写体，直接使用内置斜体")
	rootCmd.Flags().StringVar(&flagFont, "font", "", "指定手写体字体文件，优先于自动探测")
	rootCmd.Flags().StringVar(&flagSheet, "sheet", "", "字帖定义文件路径（.sheet）")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "例句洗牌的随机种子，0 表示按时间")
	rootCmd.Flags().StringVar(&flagDebug, "debug", "", "布局调试 JSON 输出路径")

	rootCmd.AddCommand(newFontsCmd())
	return rootCmd
}

// runGenerate 串联配置合并、例句池、字体探测、布局与渲染。
func runGenerate(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("读取配置失败: %w", err)
	}

	var def *sheet.Definition
	if flagSheet != "" {
		def, err = sheet.ParseFile(flagSheet)
		if err != nil {
			return err
		}
	}

	// 覆盖顺序：显式命令行参数 > 字帖定义 > 配置文件 > 内置默认值。
	applyString(cmd, "output", &flagOutput, nil, fileCfg.Sheet.Output)
	applyString(cmd, "title", &flagTitle, sheetTitle(def), fileCfg.Sheet.Title)
	applyInt(cmd, "pages", &flagPages, sheetInt(def, func(d *sheet.Definition) *int { return d.Pages }), fileCfg.Sheet.Pages)
	applyInt(cmd, "lines", &flagLines, sheetInt(def, func(d *sheet.Definition) *int { return d.Lines }), fileCfg.Sheet.Lines)
	applyFloat(cmd, "spacing", &flagSpacing, sheetFloat(def, func(d *sheet.Definition) *float64 { return d.Spacing }), fileCfg.Sheet.Spacing)
	applyFloat(cmd, "block-gap", &flagBlockGap, sheetFloat(def, func(d *sheet.Definition) *float64 { return d.BlockGap }), fileCfg.Sheet.BlockGap)

	guide := !flagNoGuide
	if !cmd.Flags().Changed("no-guide") {
		if def != nil && def.Guide != nil {
			guide = *def.Guide
		} else if fileCfg.Sheet.Guide != nil {
			guide = *fileCfg.Sheet.Guide
		}
	}
	xheight := flagXHeight
	if !cmd.Flags().Changed("xheight") {
		if def != nil && def.XHeight != nil {
			xheight = *def.XHeight
		} else if fileCfg.Sheet.XHeight != nil {
			xheight = *fileCfg.Sheet.XHeight
		}
	}
	cursive := !flagNoCursive
	if !cmd.Flags().Changed("no-cursive") {
		if def != nil && def.Cursive != nil {
			cursive = *def.Cursive
		} else if fileCfg.Sheet.Cursive != nil {
			cursive = *fileCfg.Sheet.Cursive
		}
	}

	if err := validate(); err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	list := sentences.Catalan()
	if def != nil && len(def.Sentences) > 0 {
		list = def.Sentences
	}
	pool, err := sentences.NewPool(list, rnd)
	if err != nil {
		return err
	}

	model := resolveModelFont(cursive, def, fileCfg)
	if model.IsFallback && cursive {
		fmt.Fprintln(os.Stderr, "未找到手写体字体，使用内置斜体兜底（用 fonts 子命令查看候选路径）")
	}

	doc := buildDoc(flagTitle, flagPages, flagLines, flagSpacing, flagBlockGap, guide, xheight, model)
	result, err := layout.Build(doc, pool)
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if flagDebug != "" {
		if err := writeDebug(result, flagDebug); err != nil {
			return err
		}
	}

	var r renderer.Renderer = canvasrenderer.NewRenderer()
	pdfBytes, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if dir := filepath.Dir(flagOutput); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(flagOutput, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}

	fmt.Printf("已生成 PDF：%s\n", flagOutput)
	fmt.Printf("  - 页数: %d\n", flagPages)
	fmt.Printf("  - 每个例句的书写线: %d\n", flagLines)
	fmt.Printf("  - 书写线间距: %g mm\n", flagSpacing)
	fmt.Printf("  - 例句块总数: %d\n", result.Blocks)
	fmt.Printf("  - 手写体字体: %s\n", model.Label)
	return nil
}

// resolveModelFont 决定例句使用的字体：显式指定 > 字帖定义 > 配置追加路径 > 自动探测 > 内置斜体。
func resolveModelFont(cursive bool, def *sheet.Definition, fileCfg config.FileConfig) fonts.Resolved {
	if !cursive {
		return fonts.Fallback()
	}
	var extra []string
	if flagFont != "" {
		extra = append(extra, flagFont)
	}
	if def != nil && def.FontPath != "" {
		extra = append(extra, def.FontPath)
	}
	extra = append(extra, fileCfg.Fonts.Paths...)
	return fonts.Resolve(extra)
}

func buildDoc(title string, pages, lines int, spacing, blockGap float64, guide, xheight bool, model fonts.Resolved) *layout.Doc {
	modelStyle := ""
	if model.IsFallback {
		modelStyle = "italic"
	}
	return &layout.Doc{
		Title:     title,
		PageCount: pages,
		Geometry: layout.Geometry{
			Width:  layout.A4Width,
			Height: layout.A4Height,
			Margin: layout.Margin{Top: pageMargin, Right: pageMargin, Bottom: pageMargin, Left: pageMargin},
		},
		Block: layout.BlockSpec{
			Lines:        lines,
			LineSpacing:  spacing,
			BlockSpacing: blockGap,
			HeaderDrop:   headerDrop,
			HeaderGap:    headerGap,
			Guide:        guide,
			XHeightRule:  xheight,
			ModelSize:    modelSizePt * layout.PtToMm,
			GuideSize:    guideSizePt * layout.PtToMm,
		},
		Fonts: map[string]layout.FontResource{
			layout.FontModel: {
				Name:       layout.FontModel,
				Src:        model.Src,
				Style:      modelStyle,
				Label:      model.Label,
				IsFallback: model.IsFallback,
			},
			layout.FontLabel: {
				Name:  layout.FontLabel,
				Src:   "embed:" + fonts.BuiltinBold,
				Style: "bold",
				Label: "Latin Modern Roman Bold",
			},
			layout.FontText: {
				Name:  layout.FontText,
				Src:   "embed:" + fonts.BuiltinRegular,
				Label: "Latin Modern Roman",
			},
		},
		Meta: layout.DocumentMeta{
			Title:   title,
			Creator: "caligrafia",
		},
	}
}

// validate 校验数值参数；布局引擎只声明前置条件，不重复校验。
func validate() error {
	if flagPages <= 0 {
		return fmt.Errorf("--pages 必须大于 0")
	}
	if flagLines <= 0 {
		return fmt.Errorf("--lines 必须大于 0")
	}
	if flagSpacing <= 0 {
		return fmt.Errorf("--spacing 必须大于 0")
	}
	if flagBlockGap <= 0 {
		return fmt.Errorf("--block-gap 必须大于 0")
	}
	return nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if dir := filepath.Dir(debugPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

// newFontsCmd 是诊断模式：列出候选字体路径并退出，不生成文档。
func newFontsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fonts",
		Short: "列出候选字体路径及系统字体命中情况",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
			if err != nil {
				return fmt.Errorf("读取配置失败: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "候选字体路径（按优先级）：")
			for _, c := range fonts.Candidates(fileCfg.Fonts.Paths) {
				mark := " "
				if c.Exists {
					mark = "✓"
				}
				fmt.Fprintf(out, "  [%s] %s\n", mark, c.Path)
			}
			matches := fonts.SystemMatches()
			if len(matches) > 0 {
				fmt.Fprintln(out, "系统字体索引命中：")
				for name, path := range matches {
					fmt.Fprintf(out, "  %s -> %s\n", name, path)
				}
			}
			fb := fonts.Fallback()
			fmt.Fprintf(out, "兜底字体：%s\n", fb.Label)
			return nil
		},
	}
}

// --- 配置覆盖 helpers：命令行未显式给出时，依次尝试字帖定义与配置文件 ---

func applyString(cmd *cobra.Command, name string, target *string, fromSheet, fromFile *string) {
	if cmd.Flags().Changed(name) {
		return
	}
	if fromSheet != nil {
		*target = *fromSheet
		return
	}
	if fromFile != nil {
		*target = *fromFile
	}
}

func applyInt(cmd *cobra.Command, name string, target *int, fromSheet, fromFile *int) {
	if cmd.Flags().Changed(name) {
		return
	}
	if fromSheet != nil {
		*target = *fromSheet
		return
	}
	if fromFile != nil {
		*target = *fromFile
	}
}

func applyFloat(cmd *cobra.Command, name string, target *float64, fromSheet, fromFile *float64) {
	if cmd.Flags().Changed(name) {
		return
	}
	if fromSheet != nil {
		*target = *fromSheet
		return
	}
	if fromFile != nil {
		*target = *fromFile
	}
}

func sheetTitle(def *sheet.Definition) *string {
	if def == nil || def.Title == "" {
		return nil
	}
	return &def.Title
}

func sheetInt(def *sheet.Definition, get func(*sheet.Definition) *int) *int {
	if def == nil {
		return nil
	}
	return get(def)
}

func sheetFloat(def *sheet.Definition, get func(*sheet.Definition) *float64) *float64 {
	if def == nil {
		return nil
	}
	return get(def)
}
