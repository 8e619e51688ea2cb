// Package cfgm 提供通用的配置加载功能。
//
// 支持 YAML/JSON，按默认值、配置文件、环境变量与 CLI flags 逐层覆盖。
// 配置 key 使用 json tag 统一描述，YAML 与 JSON 共享同一套 key。
//
// # 加载优先级 (从低到高)
//
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - 通过 [WithConfigPaths] 或 [WithAppName] 设置
//  3. 环境变量(前缀) - 通过 [WithEnvPrefix] 自动生成绑定
//  4. CLI flags - 通过 [WithCommand] 选项设置，最高优先级
//
// # 占位符展开
//
// 配置文件在解析前使用 [subst] 展开 ${{ NAME }} 占位符，默认查询环境变量快照：
//
//	# config.yaml
//	log:
//	  level: "${{ LOG_LEVEL | info }}"
//	render:
//	  fallback: "${{ FALLBACK || DEFAULT_FALLBACK }}"
//
// 未解析的占位符替换为空字符串；可通过 [WithExpansionPolicy] 改为报错，
// 通过 [WithExpansionSource] 更换查询源，通过 [WithoutExpansion] 关闭展开。
//
// # CLI Flag 映射
//
// 仅替换 "." 为 "-"：
//   - render.policy → --render-policy
//   - log.level → --log-level
package cfgm
