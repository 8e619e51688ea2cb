package cfgm

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-subst/pkg/subst"
)

// options 配置加载选项。
type options struct {
	appName     string // 应用名称，用于生成默认配置路径
	cmd         *cli.Command
	configPaths []string
	baseDir     string
	envPrefix   string

	// 配置文件占位符展开
	noExpansion bool
	source      subst.Source         // nil 表示环境变量快照
	policy      *subst.FailurePolicy // nil 表示替换为空字符串
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令，读取显式设置的 flags 以覆盖配置（最高优先级）。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithAppName 设置应用名称，用于生成默认搜索路径（见 [DefaultPaths]）。
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithConfigPaths 设置配置文件搜索路径，命中首个文件即停止。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithBaseDir 设置相对路径的解析基准，默认为当前工作目录。
func WithBaseDir(path string) Option {
	return func(o *options) {
		o.baseDir = path
	}
}

// WithEnvPrefix 启用环境变量前缀解析。
//
// 示例 (前缀为 "SUBST_")：
//   - SUBST_LOG_LEVEL → log.level
//   - SUBST_RENDER_POLICY → render.policy
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithoutExpansion 禁用配置文件的占位符展开，保留原始 ${{ ... }} 字符串。
func WithoutExpansion() Option {
	return func(o *options) {
		o.noExpansion = true
	}
}

// WithExpansionSource 替换展开时的查询源（默认是环境变量快照）。
func WithExpansionSource(src subst.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithExpansionPolicy 设置展开失败策略。
//
// 默认未解析的占位符替换为空字符串；传入 [subst.Abort] 可把缺失变量视为错误。
func WithExpansionPolicy(p subst.FailurePolicy) Option {
	return func(o *options) {
		o.policy = &p
	}
}
