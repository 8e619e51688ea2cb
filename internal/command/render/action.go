package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/urfave/cli/v3"
	"github.com/valyala/fasttemplate"

	"github.com/lwmacct/251207-go-pkg-subst/internal/command"
	"github.com/lwmacct/251207-go-pkg-subst/internal/config"
	"github.com/lwmacct/251207-go-pkg-subst/internal/version"
	"github.com/lwmacct/251207-go-pkg-subst/pkg/cfgm"
	"github.com/lwmacct/251207-go-pkg-subst/pkg/kvsource"
	"github.com/lwmacct/251207-go-pkg-subst/pkg/subst"
)

func action(_ context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), version.AppRawName,
		cfgm.WithEnvPrefix(command.EnvPrefix),
	)
	if err != nil {
		return err
	}

	logger := command.NewLogger(cfg.Log.Level)

	text, err := command.ReadInput(cmd.Args().First(), os.Stdin)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	// 先在内存中渲染，成功后才写出，abort 不会覆盖已有的输出文件
	var buf bytes.Buffer
	if err := run(cfg.Render, text, &buf, logger); err != nil {
		return err
	}

	if cfg.Render.Output == "" {
		if _, err := buf.WriteTo(cmd.Root().Writer); err != nil {
			return fmt.Errorf("render: writing output: %w", err)
		}
		return nil
	}

	// os.WriteFile 会返回 Close 的错误
	if err := os.WriteFile(cfg.Render.Output, buf.Bytes(), 0o644); err != nil { //nolint:gosec // rendered files are meant to be readable
		return fmt.Errorf("render: writing output: %w", err)
	}

	return nil
}

// run 按配置渲染 text 并写入 out。
func run(cfg config.RenderConfig, text string, out io.Writer, logger *slog.Logger) error {
	src, err := buildSource(cfg)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	policy, err := buildPolicy(cfg)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	engine := subst.New(
		subst.WithSyntaxChars(syntaxChars(cfg)...),
		subst.WithFailurePolicy(policy),
		subst.WithLogger(logger),
	)

	result, err := engine.Substitute(text, src)
	if err != nil {
		var unresolved *subst.UnresolvedKeyError
		if errors.As(err, &unresolved) {
			logger.Error("Render aborted", "key", unresolved.Key, "marker", unresolved.Marker)
		}
		return fmt.Errorf("render: %w", err)
	}

	if _, err := io.WriteString(out, result); err != nil {
		return fmt.Errorf("render: writing output: %w", err)
	}

	return nil
}

// buildSource 按优先级组合数据来源：vars → values → dotenv → stamps → env。
//
// 设置了 env-char 时，环境变量只响应该字符，其余字符使用其它来源。
func buildSource(cfg config.RenderConfig) (subst.Source, error) {
	var srcs []subst.Source

	vars, err := kvsource.Vars(cfg.Vars)
	if err != nil {
		return nil, err
	}
	srcs = append(srcs, vars)

	for _, path := range cfg.Values {
		values, err := kvsource.File(path)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, values)
	}

	if len(cfg.Dotenv) > 0 {
		dotenv, err := kvsource.Dotenv(cfg.Dotenv...)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, dotenv)
	}

	if len(cfg.Stamps) > 0 {
		stamps, err := kvsource.Stamps(cfg.Stamps...)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, stamps)
	}

	if !cfg.Env {
		return kvsource.Chain(srcs...), nil
	}

	envChar, ok := firstRune(cfg.EnvChar)
	if !ok {
		return kvsource.Chain(append(srcs, kvsource.Env())...), nil
	}

	return kvsource.BySyntax(map[rune]subst.Source{envChar: kvsource.Env()}, kvsource.Chain(srcs...)), nil
}

// buildPolicy 解析失败策略。
//
// template 策略使用 {key} 与 {n} 两个标签，n 为未解析占位符的序号（从 1 开始）。
func buildPolicy(cfg config.RenderConfig) (subst.FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Policy)) {
	case "", "ignore":
		return subst.Ignore(), nil
	case "abort":
		return subst.Abort(), nil
	case "constant":
		return subst.Constant(cfg.Fallback), nil
	case "template":
		tpl, err := fasttemplate.NewTemplate(cfg.Fallback, "{", "}")
		if err != nil {
			return subst.FailurePolicy{}, fmt.Errorf("parsing fallback template: %w", err)
		}
		n := 0
		return subst.Callback(func(key string) string {
			n++
			return tpl.ExecuteStringStd(map[string]any{
				"key": key,
				"n":   strconv.Itoa(n),
			})
		}), nil
	default:
		return subst.FailurePolicy{}, fmt.Errorf("unknown policy %q", cfg.Policy)
	}
}

// syntaxChars 返回允许的语法字符，忽略空白与逗号；env-char 自动加入。
func syntaxChars(cfg config.RenderConfig) []rune {
	var chars []rune
	for _, r := range cfg.SyntaxChars {
		if unicode.IsSpace(r) || r == ',' {
			continue
		}
		chars = append(chars, r)
	}
	if len(chars) == 0 {
		chars = []rune{subst.DefaultSyntaxChar}
	}
	if r, ok := firstRune(cfg.EnvChar); ok && cfg.Env {
		chars = append(chars, r)
	}

	return chars
}

func firstRune(s string) (rune, bool) {
	for _, r := range strings.TrimSpace(s) {
		return r, true
	}

	return 0, false
}
