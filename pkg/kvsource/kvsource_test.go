package kvsource_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-subst/pkg/kvsource"
	"github.com/lwmacct/251207-go-pkg-subst/pkg/subst"
)

func writeTemp(tb testing.TB, dir, name, content string) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	require.NoError(tb, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestEnv(t *testing.T) {
	t.Setenv("KVSOURCE_TEST", "a=b")

	env := kvsource.Env()
	v, ok := env.Lookup("KVSOURCE_TEST", '$')
	assert.True(t, ok)
	assert.Equal(t, "a=b", v)
}

func TestDotenv(t *testing.T) {
	dir := t.TempDir()
	first := writeTemp(t, dir, "a.env", "NAME=first\nONLY_A=1\n")
	second := writeTemp(t, dir, "b.env", "# comment\nNAME=\"second\"\n")

	vars, err := kvsource.Dotenv(first, second)
	require.NoError(t, err)
	assert.Equal(t, subst.Map{"NAME": "second", "ONLY_A": "1"}, vars)

	_, err = kvsource.Dotenv(filepath.Join(dir, "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read dotenv")
}

func TestStamps(t *testing.T) {
	dir := t.TempDir()
	s1 := writeTemp(t, dir, "s1.txt", "BUILD_USER alice\nBUILD_HOST ci 01\nNOSPACE\n")
	s2 := writeTemp(t, dir, "s2.txt", "BUILD_USER bob\r\n")

	stamps, err := kvsource.Stamps(s1, s2)
	require.NoError(t, err)
	assert.Equal(t, subst.Map{"BUILD_USER": "bob", "BUILD_HOST": "ci 01"}, stamps)

	_, err = kvsource.Stamps("/nonexistent/stamp.txt")
	require.Error(t, err)
}

func TestVars(t *testing.T) {
	vars, err := kvsource.Vars([]string{"A=1", "B=x=y", "C="})
	require.NoError(t, err)
	assert.Equal(t, subst.Map{"A": "1", "B": "x=y", "C": ""}, vars)

	_, err = kvsource.Vars([]string{"NOEQUALS"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NAME=VALUE")

	_, err = kvsource.Vars([]string{"=value"})
	require.Error(t, err)
}

func TestFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		want    subst.Map
	}{
		{
			name: "yaml",
			file: "values.yaml",
			content: `
app: demo
port: 8080
debug: true
empty:
db:
  hosts: [a, b]
`,
			want: subst.Map{
				"app":        "demo",
				"port":       "8080",
				"debug":      "true",
				"empty":      "",
				"db.hosts.0": "a",
				"db.hosts.1": "b",
			},
		},
		{
			name:    "json",
			file:    "values.json",
			content: `{"app": "demo", "port": 8080, "db": {"hosts": ["a"]}}`,
			want: subst.Map{
				"app":        "demo",
				"port":       "8080",
				"db.hosts.0": "a",
			},
		},
		{
			name:    "json numbers keep their literal form",
			file:    "numbers.json",
			content: `{"build": 12345678, "id": 9007199254740993, "ratio": 0.5}`,
			want: subst.Map{
				"build": "12345678",
				"id":    "9007199254740993",
				"ratio": "0.5",
			},
		},
		{
			name:    "yaml numbers",
			file:    "numbers.yaml",
			content: "build: 12345678\nid: 9007199254740993\n",
			want: subst.Map{
				"build": "12345678",
				"id":    "9007199254740993",
			},
		},
		{
			name:    "empty json file",
			file:    "empty.json",
			content: "",
			want:    subst.Map{},
		},
		{
			name:    "empty file",
			file:    "empty.yaml",
			content: "",
			want:    subst.Map{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := kvsource.File(writeTemp(t, dir, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := kvsource.File(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read values")

	_, err = kvsource.File(writeTemp(t, dir, "list.yaml", "- a\n- b\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root must be object")

	_, err = kvsource.File(writeTemp(t, dir, "bad.json", "{"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse values")
}

func TestFromStruct(t *testing.T) {
	type server struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	}
	type config struct {
		Name    string        `json:"name"`
		Timeout time.Duration `json:"timeout"`
		Server  server        `json:"server"`
		Tags    []string      `json:"tags"`
	}

	got, err := kvsource.FromStruct(config{
		Name:    "demo",
		Timeout: 30 * time.Second,
		Server:  server{Host: "localhost", Port: 8080},
		Tags:    []string{"a", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, subst.Map{
		"name":        "demo",
		"timeout":     "30s",
		"server.host": "localhost",
		"server.port": "8080",
		"tags.0":      "a",
		"tags.1":      "b",
	}, got)
}

func TestChain(t *testing.T) {
	src := kvsource.Chain(subst.Map{"a": "first"}, nil, subst.Map{"a": "second", "b": "second"})

	v, ok := src.Lookup("a", '$')
	assert.True(t, ok)
	assert.Equal(t, "first", v)

	v, ok = src.Lookup("b", '$')
	assert.True(t, ok)
	assert.Equal(t, "second", v)

	_, ok = src.Lookup("c", '$')
	assert.False(t, ok)
}

func TestBySyntax(t *testing.T) {
	src := kvsource.BySyntax(map[rune]subst.Source{
		'@': subst.Map{"user": "env-user"},
	}, subst.Map{"user": "values-user"})

	out, err := subst.Substitute("$=${{ user }} @=@{{ user }} !=!{{ user }}", src, subst.Abort(), '$', '@', '!')
	require.NoError(t, err)
	assert.Equal(t, "$=values-user @=env-user !=values-user", out)

	noFallback := kvsource.BySyntax(map[rune]subst.Source{'@': subst.Map{"k": "v"}}, nil)
	_, ok := noFallback.Lookup("k", '$')
	assert.False(t, ok)
}
