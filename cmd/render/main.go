// render 是只包含 render 命令的独立入口，便于在构建流水线中直接调用。
package main

import (
	"context"
	"log/slog"
	"os"

	app "github.com/lwmacct/251207-go-pkg-subst/internal/command/render"
)

func main() {
	if err := app.Command.Run(context.Background(), os.Args); err != nil {
		slog.Error("渲染失败", "error", err)
		os.Exit(1)
	}
}
