// Package fonts 负责字体的探测与兜底：按优先级扫描候选的手写体字体文件，
// 全部失败时退回到保证可用的内置斜体。
package fonts

import (
	"fmt"
	"strings"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10italic"
	"github.com/go-fonts/latin-modern/lmroman10regular"
)

// 内置字体名。布局结果里以 "embed:<name>" 的形式引用。
const (
	BuiltinItalic  = "lmroman10-italic"
	BuiltinBold    = "lmroman10-bold"
	BuiltinRegular = "lmroman10-regular"
)

// Load 返回内置字体的字节数据，name 可写为 "embed:lmroman10-italic" 或
// 直接 "lmroman10-italic"。数据来自编译进二进制的 Latin Modern 字族，
// 因此兜底字体永远加载成功。
func Load(name string) ([]byte, error) {
	name = strings.TrimPrefix(name, "embed:")
	switch name {
	case BuiltinItalic:
		return lmroman10italic.TTF, nil
	case BuiltinBold:
		return lmroman10bold.TTF, nil
	case BuiltinRegular:
		return lmroman10regular.TTF, nil
	}
	return nil, fmt.Errorf("未知的内置字体 %s", name)
}
