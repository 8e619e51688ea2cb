// Package version 提供版本信息与 version 子命令。
package version

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// AppRawName 应用名称，用于配置文件路径与环境变量前缀。
const AppRawName = "subst"

// 构建时通过 -ldflags "-X" 注入。
var (
	Version = "dev"
	Commit  = "unknown"
)

// GetVersion 返回版本字符串。
func GetVersion() string {
	return fmt.Sprintf("%s (%s)", Version, Commit)
}

// Command 打印版本信息。
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Action: func(_ context.Context, cmd *cli.Command) error {
		_, err := fmt.Fprintf(cmd.Root().Writer, "%s %s\n", AppRawName, GetVersion())
		return err
	},
}
