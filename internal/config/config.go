// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - .subst.yaml / ~/.subst.yaml / /etc/subst/config.yaml / config.yaml
//  3. 环境变量 - SUBST_ 前缀，例如 SUBST_RENDER_POLICY
//  4. CLI flags - 例如 --render-policy
package config

// Config 应用配置。
type Config struct {
	Render RenderConfig `json:"render" desc:"渲染配置"`
	Log    LogConfig    `json:"log" desc:"日志配置"`
}

// RenderConfig 渲染配置。
//
//nolint:tagliatelle
type RenderConfig struct {
	SyntaxChars string   `json:"syntax-chars" desc:"允许的语法字符，例如 \"$@\""`
	Policy      string   `json:"policy" desc:"失败策略: ignore | abort | constant | template"`
	Fallback    string   `json:"fallback" desc:"constant 的固定值；template 的模板，{key} 为未解析的 key，{n} 为序号"`
	Vars        []string `json:"vars" desc:"NAME=VALUE 变量，优先级最高"`
	Values      []string `json:"values" desc:"YAML/JSON 值文件"`
	Dotenv      []string `json:"dotenv" desc:".env 文件"`
	Stamps      []string `json:"stamps" desc:"KEY VALUE 状态文件"`
	Env         bool     `json:"env" desc:"是否查询环境变量（优先级最低）"`
	EnvChar     string   `json:"env-char" desc:"环境变量专用的语法字符，为空时与其它来源共用"`
	Output      string   `json:"output" desc:"输出文件，为空时写入 stdout"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level string `json:"level" desc:"日志级别: debug | info | warn | error"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{
			SyntaxChars: "$",
			Policy:      "ignore",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}
