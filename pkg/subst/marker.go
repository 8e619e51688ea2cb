package subst

import (
	"iter"
	"regexp"
)

// markerPattern 匹配 <非空白字符>{{ 内容 }}，内容非贪婪且不跨行。
//
// \S 只排除 ASCII 空白，前缀字符另外排除 \v、U+0085 与 Unicode 分隔符。
var markerPattern = regexp.MustCompile(`([^\s\v\p{Z}\x{85}])\{\{\x20(.+?)\x20\}\}`)

// Marker 是文本中一次占位符匹配。
type Marker struct {
	// FullMatch 是完整匹配的原文，例如 "${{ key | default }}"，替换时按字面量使用。
	FullMatch string
	// SyntaxChar 是紧贴 "{{" 的前缀字符。
	SyntaxChar rune
	// RawKey 是 "{{ " 与 " }}" 之间的内容，可能带有默认值语法。
	// 多余的内侧空白保留在 RawKey 中，不做裁剪。
	RawKey string
}

// Scan 返回 text 中全部占位符的惰性序列。
//
// 序列可以重复遍历，每次遍历都重新扫描；不会修改 text。
func Scan(text string) iter.Seq[Marker] {
	return func(yield func(Marker) bool) {
		for _, loc := range markerPattern.FindAllStringSubmatchIndex(text, -1) {
			m := Marker{
				FullMatch:  text[loc[0]:loc[1]],
				SyntaxChar: []rune(text[loc[2]:loc[3]])[0],
				RawKey:     text[loc[4]:loc[5]],
			}
			if !yield(m) {
				return
			}
		}
	}
}

// ScanAll 一次性收集 [Scan] 的结果。
func ScanAll(text string) []Marker {
	var markers []Marker
	for m := range Scan(text) {
		markers = append(markers, m)
	}

	return markers
}
