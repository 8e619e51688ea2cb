package subst

import (
	"fmt"
	"strconv"
	"strings"
)

// Source 根据 key 与语法字符返回替换值。
//
// 引擎把 Source 视为只读查询，同一个 key 可能被查询多次。
type Source interface {
	Lookup(key string, syntax rune) (string, bool)
}

// SourceFunc 让普通函数满足 [Source]。
type SourceFunc func(key string, syntax rune) (string, bool)

// Lookup 调用 f 本身。
func (f SourceFunc) Lookup(key string, syntax rune) (string, bool) {
	return f(key, syntax)
}

// Map 是最简单的 [Source]，忽略语法字符。
type Map map[string]string

// Lookup 实现 [Source]。
func (m Map) Lookup(key string, _ rune) (string, bool) {
	v, ok := m[key]
	return v, ok
}

type sliceSource[T any] []T

// FromSlice 把有序列表包装为 [Source]。
//
// key 解析为非负整数下标（允许一个前导 "+"），返回对应元素的字符串形式（实现 fmt.Stringer 时使用 String）。
// 非数字或越界时视为未找到。
func FromSlice[T any](items []T) Source {
	return sliceSource[T](items)
}

func (s sliceSource[T]) Lookup(key string, _ rune) (string, bool) {
	key, _ = strings.CutPrefix(key, "+")
	idx, err := strconv.ParseUint(key, 10, 0)
	if err != nil || idx >= uint64(len(s)) {
		return "", false
	}

	return fmt.Sprint(s[idx]), true
}
