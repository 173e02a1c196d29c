// Package sheet parses practice sheet definition files.
//
// A sheet file bundles the layout knobs and an optional sentence
// collection into one reusable profile:
//
//	sheet "Pràctica de Cal·ligrafia" {
//	  pages 5
//	  lines 3
//	  spacing 12mm
//	  block-gap 20mm
//	  guide on
//	  xheight off
//	  font "/Library/Fonts/DancingScript-Regular.ttf"
//	  sentences {
//	    "La pau comença amb un somriure."
//	    "El coneixement és poder."
//	  }
//	}
//
// Every setting is optional; missing values fall back to CLI flags and
// built-in defaults. Lengths accept mm/cm/in/pt, a bare number means mm.
package sheet

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/jordiprats/caligrafia/layout"
)

var (
	sheetLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)(?:pt|mm|cm|in)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[{};]`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(sheetLexer),
		participle.Elide("Whitespace", "LineComment", "HashComment"),
	)
)

// File is the root AST node for a sheet definition file.
type File struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Title      StringLiteral  `parser:"Newline* 'sheet' @String"`
	Statements []*Statement   `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}' Newline*"`
}

// Statement is either a sentences block or a single key/value setting.
type Statement struct {
	Sentences *SentencesBlock `parser:"  @@"`
	Setting   *Setting        `parser:"| @@"`
}

// SentencesBlock lists the model sentences of this profile.
type SentencesBlock struct {
	Values []StringLiteral `parser:"'sentences' Newline* '{' Newline* ( @String ( ';' | Newline )* )* '}'"`
}

// Setting is a key followed by one scalar value.
type Setting struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value SettingValue   `parser:"@@"`
}

// SettingValue holds a string, number (optionally with a unit) or bare word.
type SettingValue struct {
	Str    *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Ident  *string        `parser:"| @Ident"`
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a sheet definition from an io.Reader.
func Parse(r io.Reader) (*File, error) {
	return fileParser.Parse("", r)
}

// ParseString parses a sheet definition from a string.
func ParseString(input string) (*File, error) {
	return fileParser.ParseString("", input)
}

// ParseFile parses the sheet definition at path and resolves it.
func ParseFile(path string) (*Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开字帖定义 %s: %w", path, err)
	}
	defer f.Close()
	ast, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("解析字帖定义 %s 失败: %w", path, err)
	}
	return ast.Resolve()
}

// Definition is the resolved form of a sheet file. Optional settings are
// pointers so that callers can distinguish "absent" from a zero value.
type Definition struct {
	Title     string
	Pages     *int
	Lines     *int
	Spacing   *float64 // mm
	BlockGap  *float64 // mm
	Guide     *bool
	XHeight   *bool
	Cursive   *bool
	FontPath  string
	Sentences []string
}

// Resolve converts the AST into a Definition, validating keys and values.
func (f *File) Resolve() (*Definition, error) {
	def := &Definition{Title: string(f.Title)}
	for _, st := range f.Statements {
		switch {
		case st.Sentences != nil:
			for _, v := range st.Sentences.Values {
				def.Sentences = append(def.Sentences, string(v))
			}
		case st.Setting != nil:
			if err := def.apply(st.Setting); err != nil {
				return nil, err
			}
		}
	}
	return def, nil
}

func (d *Definition) apply(s *Setting) error {
	switch s.Key {
	case "pages":
		n, err := s.Value.asInt()
		if err != nil {
			return fmt.Errorf("%s: pages: %w", s.Pos, err)
		}
		d.Pages = &n
	case "lines":
		n, err := s.Value.asInt()
		if err != nil {
			return fmt.Errorf("%s: lines: %w", s.Pos, err)
		}
		d.Lines = &n
	case "spacing":
		mm, err := s.Value.asMM()
		if err != nil {
			return fmt.Errorf("%s: spacing: %w", s.Pos, err)
		}
		d.Spacing = &mm
	case "block-gap":
		mm, err := s.Value.asMM()
		if err != nil {
			return fmt.Errorf("%s: block-gap: %w", s.Pos, err)
		}
		d.BlockGap = &mm
	case "guide":
		b, err := s.Value.asBool()
		if err != nil {
			return fmt.Errorf("%s: guide: %w", s.Pos, err)
		}
		d.Guide = &b
	case "xheight":
		b, err := s.Value.asBool()
		if err != nil {
			return fmt.Errorf("%s: xheight: %w", s.Pos, err)
		}
		d.XHeight = &b
	case "cursive":
		b, err := s.Value.asBool()
		if err != nil {
			return fmt.Errorf("%s: cursive: %w", s.Pos, err)
		}
		d.Cursive = &b
	case "font":
		if s.Value.Str == nil {
			return fmt.Errorf("%s: font 需要字符串路径", s.Pos)
		}
		d.FontPath = string(*s.Value.Str)
	default:
		return fmt.Errorf("%s: 未知的设置项 %q", s.Pos, s.Key)
	}
	return nil
}

func (v SettingValue) asInt() (int, error) {
	if v.Number == nil {
		return 0, fmt.Errorf("需要整数")
	}
	n, err := strconv.Atoi(*v.Number)
	if err != nil {
		return 0, fmt.Errorf("需要不带单位的整数，实际 %q", *v.Number)
	}
	return n, nil
}

func (v SettingValue) asMM() (float64, error) {
	if v.Number == nil {
		return 0, fmt.Errorf("需要长度值")
	}
	l := layout.ParseLength(*v.Number)
	if l.Value <= 0 {
		return 0, fmt.Errorf("长度必须大于 0，实际 %q", *v.Number)
	}
	return l.ToMM(), nil
}

func (v SettingValue) asBool() (bool, error) {
	if v.Ident == nil {
		return false, fmt.Errorf("需要 on/off")
	}
	switch *v.Ident {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("需要 on/off，实际 %q", *v.Ident)
}
