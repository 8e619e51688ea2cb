// Package subst 提供带语法字符前缀的占位符替换。
//
// 占位符形如 <字符>{{ key }}，字符必须紧贴 "{{"，且 "{{" 与 "}}" 内侧各有一个空格。
// 只做一次替换，不解析嵌套，也不会对替换结果再次展开。
//
// # 语义说明
//
//  1. 默认只处理 "$" 前缀，其它字符需通过 [WithSyntaxChars] 或 [Substitute] 显式允许
//  2. ${{ key | value }} 为静态默认值，key 查不到时直接使用 value
//  3. ${{ key || other }} 为动态默认值，key 查不到时再用 other 作为 key 查询
//  4. 主 key 命中时始终优先，默认值不会被查询
//  5. 都失败时按 [FailurePolicy] 处理：保留原文、报错、固定值或回调
//
// # 快速开始
//
//	out, err := subst.Substitute("hello ${{ 0 }}", subst.FromSlice([]string{"world"}), subst.Abort())
//	// out: "hello world"
//
// 使用自定义查询源：
//
//	src := subst.Map{"name": "gopher"}
//	out, _ := subst.Substitute("hi ${{ name }}, ${{ missing | n/a }}", src, subst.Ignore())
//	// out: "hi gopher, n/a"
//
// 允许多个语法字符：
//
//	out, _ := subst.Substitute("@{{ user }}", src, subst.Ignore(), '@', '!')
//
// # 两阶段执行
//
// 先扫描全部占位符得到 [ReplacementPlan]，再对原文逐条做字面量替换。
// 相同原文的占位符会被同时替换为同一个值。
package subst
