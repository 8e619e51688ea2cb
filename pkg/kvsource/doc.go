// Package kvsource 提供常用的 [subst.Source] 实现。
//
// 支持的数据来源：
//   - [Env] - 当前进程环境变量快照
//   - [Dotenv] - .env 文件
//   - [Stamps] - 每行 "KEY VALUE" 的状态文件
//   - [File] - YAML/JSON 值文件，嵌套 key 展平为 a.b、a.0
//   - [FromStruct] - 按 json tag 展平的结构体
//   - [Vars] - NAME=VALUE 列表
//
// 组合方式：
//   - [Chain] - 按顺序查询，第一个命中的生效
//   - [BySyntax] - 按语法字符路由到不同来源
//
// 示例：
//
//	src, err := kvsource.File("values.yaml")
//	out, err := subst.Substitute(text, kvsource.Chain(src, kvsource.Env()), subst.Abort())
package kvsource
