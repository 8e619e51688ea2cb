// Package render 提供占位符渲染命令。
package render

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-subst/internal/command"
)

// Command 渲染命令
var Command = newCommand()

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "替换文本中的 ${{ key }} 占位符",
		ArgsUsage: "[file]",
		Action:    action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "render-syntax-chars",
				Aliases: []string{"c"},
				Value:   command.Defaults.Render.SyntaxChars,
				Usage:   "允许的语法字符",
			},
			&cli.StringFlag{
				Name:    "render-policy",
				Aliases: []string{"p"},
				Value:   command.Defaults.Render.Policy,
				Usage:   "失败策略: ignore | abort | constant | template",
			},
			&cli.StringFlag{
				Name:  "render-fallback",
				Value: command.Defaults.Render.Fallback,
				Usage: "constant 的固定值或 template 的模板（{key}、{n}）",
			},
			&cli.StringSliceFlag{
				Name:    "render-vars",
				Aliases: []string{"var"},
				Usage:   "NAME=VALUE 变量 (可重复)",
			},
			&cli.StringSliceFlag{
				Name:    "render-values",
				Aliases: []string{"f"},
				Usage:   "YAML/JSON 值文件 (可重复)",
			},
			&cli.StringSliceFlag{
				Name:  "render-dotenv",
				Usage: ".env 文件 (可重复)",
			},
			&cli.StringSliceFlag{
				Name:  "render-stamps",
				Usage: "KEY VALUE 状态文件 (可重复)",
			},
			&cli.BoolFlag{
				Name:  "render-env",
				Value: command.Defaults.Render.Env,
				Usage: "查询环境变量",
			},
			&cli.StringFlag{
				Name:  "render-env-char",
				Value: command.Defaults.Render.EnvChar,
				Usage: "环境变量专用的语法字符",
			},
			&cli.StringFlag{
				Name:    "render-output",
				Aliases: []string{"o"},
				Value:   command.Defaults.Render.Output,
				Usage:   "输出文件 (默认 stdout)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: command.Defaults.Log.Level,
				Usage: "日志级别",
			},
		},
	}
}
