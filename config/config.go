// Package config 提供 TOML 配置文件解析与默认路径。
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig 对应配置文件的整体结构。所有字段可选，缺省值由 CLI 决定；
// 指针类型用于区分"未设置"与零值。
type FileConfig struct {
	Sheet SheetConfig `toml:"sheet"`
	Fonts FontsConfig `toml:"fonts"`
}

// SheetConfig 是字帖生成相关的默认值。
type SheetConfig struct {
	Output   *string  `toml:"output"`
	Title    *string  `toml:"title"`
	Pages    *int     `toml:"pages"`
	Lines    *int     `toml:"lines"`
	Spacing  *float64 `toml:"spacing"`   // mm
	BlockGap *float64 `toml:"block-gap"` // mm
	Guide    *bool    `toml:"guide"`
	XHeight  *bool    `toml:"xheight"`
	Cursive  *bool    `toml:"cursive"`
}

// FontsConfig 追加的候选字体路径，排在所有内置候选之前。
type FontsConfig struct {
	Paths []string `toml:"paths"`
}

// LoadConfig 从给定路径读取 TOML 配置。文件不存在不算错误。
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("配置路径为空")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("读取配置信息失败: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("解析配置失败: %w", err)
	}
	return cfg, nil
}

// DefaultConfigPath 返回默认的配置文件路径。
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "caligrafia", "config.toml")
}

// XDGConfigHome 返回 XDG 配置目录，取不到时退回当前目录。
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}
