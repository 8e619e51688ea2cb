package cfgm

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-subst/pkg/kvsource"
	"github.com/lwmacct/251207-go-pkg-subst/pkg/subst"
)

// DefaultPaths 返回默认配置文件的搜索顺序。
//
// 优先级 (从高到低)：
//  1. ./.appname.yaml - 当前目录应用配置
//  2. ~/.appname.yaml - 用户主目录配置
//  3. /etc/appname/config.yaml - 系统级配置
//  4. config.yaml - 当前目录通用配置
func DefaultPaths(appName ...string) []string {
	var paths []string

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		paths = append(paths, "."+name+".yaml")
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+name+".yaml"))
		}
		paths = append(paths, "/etc/"+name+"/config.yaml")
	}

	return append(paths, "config.yaml")
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高)：
//  1. 默认值 - defaultConfig
//  2. 配置文件 - [WithConfigPaths] / [WithAppName]，解析前先展开 ${{ NAME }} 占位符
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]
//
// 配置 key 由 json tag 定义，YAML 与 JSON 共享同一套 key。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	options := &options{}
	for _, opt := range opts {
		opt(options)
	}

	if len(options.configPaths) == 0 {
		options.configPaths = DefaultPaths(options.appName)
	}

	configMap, err := structToMap(defaultConfig)
	if err != nil {
		return nil, fmt.Errorf("cfgm: convert defaults: %w", err)
	}

	fileMap, err := loadFirstFile(options)
	if err != nil {
		return nil, err
	}
	mergeMaps(configMap, fileMap)

	if options.envPrefix != "" {
		bindings := generateEnvBindings(options.envPrefix, collectConfigKeys(reflect.TypeOf(defaultConfig), ""))
		slog.Debug("Generated env bindings", "prefix", options.envPrefix, "count", len(bindings))
		for envKey, configPath := range bindings {
			if val := os.Getenv(envKey); val != "" {
				setByPath(configMap, configPath, val)
				slog.Debug("Loaded env binding", "env", envKey, "path", configPath)
			}
		}
	}

	if options.cmd != nil {
		applyCLIFlags(options.cmd, configMap, reflect.TypeOf(defaultConfig), "")
	}

	var cfg T
	if err := decodeConfigMap(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("cfgm: decode config: %w", err)
	}

	return &cfg, nil
}

// LoadCmd 是 [Load] 的便捷版本，注入 [WithCommand]，appName 非空时额外注入 [WithAppName]。
func LoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) (*T, error) {
	baseOpts := []Option{WithCommand(cmd)}
	if appName != "" {
		baseOpts = append(baseOpts, WithAppName(appName))
	}

	return Load(defaultConfig, append(baseOpts, opts...)...)
}

// MustLoad 调用 [Load] 并在失败时 panic，适合启动阶段。
func MustLoad[T any](defaultConfig T, opts ...Option) *T {
	cfg, err := Load(defaultConfig, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgm: failed to load config: %v", err))
	}

	return cfg
}

// MustLoadCmd 调用 [LoadCmd] 并在失败时 panic。
func MustLoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) *T {
	cfg, err := LoadCmd(cmd, defaultConfig, appName, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgm: failed to load config: %v", err))
	}

	return cfg
}

// loadFirstFile 按顺序查找配置文件，返回第一个可读文件的内容；都不存在时返回空 map。
func loadFirstFile(o *options) (map[string]any, error) {
	for _, path := range o.configPaths {
		if o.baseDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(o.baseDir, path)
		}

		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			continue
		}

		if !o.noExpansion {
			expanded, expandErr := expand(string(content), o)
			if expandErr != nil {
				return nil, fmt.Errorf("cfgm: expand markers in %s: %w", path, expandErr)
			}
			content = []byte(expanded)
		}

		fileMap, err := parseConfigBytes(path, content)
		if err != nil {
			return nil, fmt.Errorf("cfgm: parse config file %s: %w", path, err)
		}

		slog.Debug("Loaded config from file", "path", path, "expansion", !o.noExpansion)

		return fileMap, nil
	}

	slog.Debug("No config file found, using defaults")

	return map[string]any{}, nil
}

func expand(content string, o *options) (string, error) {
	src := o.source
	if src == nil {
		src = kvsource.Env()
	}
	policy := subst.Constant("")
	if o.policy != nil {
		policy = *o.policy
	}

	return subst.New(subst.WithFailurePolicy(policy)).Substitute(content, src)
}

// collectConfigKeys 递归收集叶子 key（如 render.policy）。
func collectConfigKeys(typ reflect.Type, prefix string) []string {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var keys []string
	for i := range typ.NumField() {
		field := typ.Field(i)
		key := configTagName(field)
		if key == "" {
			continue
		}

		fullKey := joinKey(prefix, key)
		if isStructType(field.Type) {
			keys = append(keys, collectConfigKeys(field.Type, fullKey)...)
			continue
		}
		keys = append(keys, fullKey)
	}

	return keys
}

// generateEnvBindings 根据配置 key 生成环境变量映射。
//
// "." 和 "-" 转为 "_" 后大写并加前缀，例如 render.env-char → SUBST_RENDER_ENV_CHAR。
func generateEnvBindings(prefix string, keys []string) map[string]string {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	bindings := make(map[string]string, len(keys))
	for _, key := range keys {
		bindings[prefix+strings.ToUpper(replacer.Replace(key))] = key
	}

	return bindings
}

// applyCLIFlags 将用户显式设置的 CLI flags 写入配置 map。
//
// flag 名称由 key 中的 "." 替换为 "-" 得到，例如 render.policy → --render-policy。
func applyCLIFlags(cmd *cli.Command, config map[string]any, typ reflect.Type, prefix string) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)
		key := configTagName(field)
		if key == "" {
			continue
		}

		fullKey := joinKey(prefix, key)
		if isStructType(field.Type) {
			applyCLIFlags(cmd, config, field.Type, fullKey)
			continue
		}

		flag := strings.ReplaceAll(fullKey, ".", "-")
		if !cmd.IsSet(flag) {
			continue
		}
		if val, ok := flagValue(cmd, flag, field.Type); ok {
			setByPath(config, fullKey, val)
		}
	}
}

// flagValue 按字段类型读取 flag 值，不支持的类型返回 false。
func flagValue(cmd *cli.Command, flag string, typ reflect.Type) (any, bool) {
	if typ == durationType {
		return cmd.Duration(flag), true
	}

	switch typ.Kind() {
	case reflect.String:
		return cmd.String(flag), true
	case reflect.Bool:
		return cmd.Bool(flag), true
	case reflect.Int:
		return cmd.Int(flag), true
	case reflect.Int64:
		return cmd.Int64(flag), true
	case reflect.Float64:
		return cmd.Float64(flag), true
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.String {
			return cmd.StringSlice(flag), true
		}
	default:
	}

	return nil, false
}
