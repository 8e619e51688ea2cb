package kvsource

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/lwmacct/251207-go-pkg-subst/pkg/subst"
)

// Env 返回当前环境变量的快照。
//
// 快照创建后不再感知环境变量变化。
func Env() subst.Map {
	vars := make(subst.Map)
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) == 2 {
			vars[parts[0]] = parts[1]
		}
	}

	return vars
}

// Dotenv 读取一个或多个 .env 文件，同名 key 以后面的文件为准。
func Dotenv(paths ...string) (subst.Map, error) {
	vars := make(subst.Map)
	for _, path := range paths {
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("kvsource: read dotenv %s: %w", path, err)
		}
		for k, v := range values {
			vars[k] = v
		}
	}

	return vars, nil
}

// Stamps 读取状态文件，每行以第一个空格分隔 key 与 value，没有空格的行被忽略。
func Stamps(paths ...string) (subst.Map, error) {
	stamps := make(subst.Map)
	for _, path := range paths {
		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			return nil, fmt.Errorf("kvsource: read stamps %s: %w", path, err)
		}

		for _, line := range strings.Split(string(content), "\n") {
			parts := strings.SplitN(strings.TrimRight(line, "\r"), " ", 2)
			if len(parts) == 2 {
				stamps[parts[0]] = parts[1]
			}
		}
	}

	return stamps, nil
}

// Vars 解析 NAME=VALUE 列表，格式错误时返回 error。
func Vars(pairs []string) (subst.Map, error) {
	vars := make(subst.Map, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("kvsource: variable must be NAME=VALUE, got %q", pair)
		}
		vars[name] = value
	}

	return vars, nil
}
