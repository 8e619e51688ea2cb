package scan

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-subst/internal/command"
	"github.com/lwmacct/251207-go-pkg-subst/pkg/subst"
)

// record 是一行输出。
type record struct {
	FullMatch  string `json:"full_match"`
	SyntaxChar string `json:"syntax_char"`
	RawKey     string `json:"raw_key"`
	Default    string `json:"default"`
	Key        string `json:"key"`
	Value      string `json:"value,omitempty"`
}

func action(_ context.Context, cmd *cli.Command) error {
	text, err := command.ReadInput(cmd.Args().First(), os.Stdin)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}

	return run(text, cmd.String("syntax-chars"), cmd.Root().Writer)
}

// run 将 text 中的占位符逐行写入 out；only 非空时只保留其中的语法字符。
func run(text, only string, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	for m := range subst.Scan(text) {
		if only != "" && !strings.ContainsRune(only, m.SyntaxChar) {
			continue
		}

		spec := subst.ExtractDefault(m.RawKey)
		rec := record{
			FullMatch:  m.FullMatch,
			SyntaxChar: string(m.SyntaxChar),
			RawKey:     m.RawKey,
			Default:    spec.Kind.String(),
			Key:        spec.Key,
			Value:      spec.Value,
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("scan: encoding marker: %w", err)
		}
	}

	return nil
}
