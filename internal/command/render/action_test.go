package render

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-subst/internal/config"
	"github.com/lwmacct/251207-go-pkg-subst/pkg/subst"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func writeTemp(tb testing.TB, dir, name, content string) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	values := writeTemp(t, dir, "values.yaml", "app:\n  name: demo\n  port: 8080\n")
	stamps := writeTemp(t, dir, "stamps.txt", "BUILD_USER alice\n")
	dotenv := writeTemp(t, dir, "app.env", "REGION=eu\n")

	tests := []struct {
		name string
		cfg  config.RenderConfig
		text string
		want string
	}{
		{
			name: "values file",
			cfg:  config.RenderConfig{Values: []string{values}},
			text: "${{ app.name }}:${{ app.port }}",
			want: "demo:8080",
		},
		{
			name: "vars override values",
			cfg:  config.RenderConfig{Values: []string{values}, Vars: []string{"app.name=override"}},
			text: "${{ app.name }}",
			want: "override",
		},
		{
			name: "stamps and dotenv",
			cfg:  config.RenderConfig{Stamps: []string{stamps}, Dotenv: []string{dotenv}},
			text: "by ${{ BUILD_USER }} in ${{ REGION }}",
			want: "by alice in eu",
		},
		{
			name: "ignore keeps unresolved",
			cfg:  config.RenderConfig{Policy: "ignore"},
			text: "${{ missing }}",
			want: "${{ missing }}",
		},
		{
			name: "constant",
			cfg:  config.RenderConfig{Policy: "constant", Fallback: "N/A"},
			text: "${{ missing }} ${{ other | static }}",
			want: "N/A static",
		},
		{
			name: "template counts unresolved markers",
			cfg:  config.RenderConfig{Policy: "template", Fallback: "<{n}:{key}{unknown}>"},
			text: "${{ a }} ${{ b }}",
			want: "<1:a{unknown}> <2:b{unknown}>",
		},
		{
			name: "syntax chars",
			cfg:  config.RenderConfig{SyntaxChars: "$, @", Vars: []string{"k=v"}},
			text: "${{ k }} @{{ k }} !{{ k }}",
			want: "v v !{{ k }}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, run(tt.cfg, tt.text, &out, discard))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRun_Env(t *testing.T) {
	t.Setenv("RENDER_TEST_USER", "gopher")

	t.Run("chained", func(t *testing.T) {
		var out bytes.Buffer
		cfg := config.RenderConfig{Env: true, Vars: []string{"RENDER_TEST_USER=from-vars"}}
		require.NoError(t, run(cfg, "${{ RENDER_TEST_USER }}", &out, discard))
		assert.Equal(t, "from-vars", out.String())
	})

	t.Run("dedicated char", func(t *testing.T) {
		var out bytes.Buffer
		cfg := config.RenderConfig{Env: true, EnvChar: "%", Vars: []string{"RENDER_TEST_USER=from-vars"}}
		require.NoError(t, run(cfg, "${{ RENDER_TEST_USER }} %{{ RENDER_TEST_USER }}", &out, discard))
		assert.Equal(t, "from-vars gopher", out.String())
	})
}

func TestRun_Abort(t *testing.T) {
	var out bytes.Buffer
	err := run(config.RenderConfig{Policy: "abort"}, "ok ${{ missing }}", &out, discard)
	require.Error(t, err)
	assert.ErrorIs(t, err, subst.ErrUnresolvedKey)
	assert.Contains(t, err.Error(), "missing")
	assert.Empty(t, out.String(), "nothing is written on abort")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.RenderConfig
		errMsg string
	}{
		{"bad var", config.RenderConfig{Vars: []string{"NOEQUALS"}}, "NAME=VALUE"},
		{"missing values file", config.RenderConfig{Values: []string{"/nonexistent/values.yaml"}}, "read values"},
		{"missing dotenv", config.RenderConfig{Dotenv: []string{"/nonexistent/.env"}}, "read dotenv"},
		{"missing stamps", config.RenderConfig{Stamps: []string{"/nonexistent/stamps"}}, "read stamps"},
		{"unknown policy", config.RenderConfig{Policy: "explode"}, "unknown policy"},
		{"bad template", config.RenderConfig{Policy: "template", Fallback: "{key"}, "fallback template"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.cfg, "${{ x }}", io.Discard, discard)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSyntaxChars(t *testing.T) {
	assert.Equal(t, []rune{'$'}, syntaxChars(config.RenderConfig{}))
	assert.Equal(t, []rune{'$', '@'}, syntaxChars(config.RenderConfig{SyntaxChars: "$ @"}))
	assert.Equal(t, []rune{'@', '%'}, syntaxChars(config.RenderConfig{SyntaxChars: "@", Env: true, EnvChar: "%"}))
	assert.Equal(t, []rune{'@'}, syntaxChars(config.RenderConfig{SyntaxChars: "@", EnvChar: "%"}))
}

func TestCommand_AbortKeepsExistingOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "in.txt", "x ${{ missing }}")
	out := writeTemp(t, dir, "out.txt", "PREVIOUS GOOD CONTENT")

	err := newCommand().Run(context.Background(), []string{
		"render", "--render-policy", "abort", "--render-output", out, in,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, subst.ErrUnresolvedKey)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "PREVIOUS GOOD CONTENT", string(content))
}

func TestCommand_WritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	in := writeTemp(t, dir, "in.txt", "hi ${{ name }}")
	out := filepath.Join(dir, "out.txt")

	err := newCommand().Run(context.Background(), []string{
		"render", "--var", "name=gopher", "--render-output", out, in,
	})
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "hi gopher", string(content))
}

func TestCommand_WritesStdout(t *testing.T) {
	in := writeTemp(t, t.TempDir(), "in.txt", "hi ${{ name }}")

	var buf bytes.Buffer
	cmd := newCommand()
	cmd.Writer = &buf

	require.NoError(t, cmd.Run(context.Background(), []string{"render", "--var", "name=gopher", in}))
	assert.Equal(t, "hi gopher", buf.String())
}
