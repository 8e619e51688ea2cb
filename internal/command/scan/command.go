// Package scan 提供占位符扫描命令，按行输出每个占位符的解析结果。
package scan

import "github.com/urfave/cli/v3"

// Command 扫描命令
var Command = &cli.Command{
	Name:      "scan",
	Usage:     "列出文本中的全部占位符 (JSON Lines)",
	ArgsUsage: "[file]",
	Action:    action,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "syntax-chars",
			Aliases: []string{"c"},
			Usage:   "只输出这些语法字符的占位符 (默认全部)",
		},
	},
}
