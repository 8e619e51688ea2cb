// Package command 提供 render 与 scan 命令的公共部分。
package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lwmacct/251207-go-pkg-subst/internal/config"
	"github.com/lwmacct/251207-go-pkg-subst/internal/version"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// EnvPrefix 是配置项对应环境变量的前缀。
var EnvPrefix = strings.ToUpper(version.AppRawName) + "_"

// NewLogger 创建写入 stderr 的文本日志，无法识别的级别回退为 warn。
func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// ReadInput 读取 path 指向的文件，path 为空或 "-" 时读取 stdin。
func ReadInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(content), nil
	}

	content, err := os.ReadFile(path) //nolint:gosec // path from CLI args
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	return string(content), nil
}
