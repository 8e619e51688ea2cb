package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-subst/internal/command/render"
	"github.com/lwmacct/251207-go-pkg-subst/internal/command/scan"
	"github.com/lwmacct/251207-go-pkg-subst/internal/version"
)

func main() {
	app := &cli.Command{
		Name:    version.AppRawName,
		Usage:   "文本占位符替换工具",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			render.Command,
			scan.Command,
			version.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
