package subst

import "strings"

// Replacement 是一条待执行的字面量替换。
type Replacement struct {
	Target string
	Value  string
}

// ReplacementPlan 按记录顺序保存全部替换。
type ReplacementPlan []Replacement

// Apply 依次把 text 中所有 Target 替换为 Value。
//
// 替换按字面量进行，原文相同的占位符会全部被替换。
func (p ReplacementPlan) Apply(text string) string {
	for _, r := range p {
		text = strings.ReplaceAll(text, r.Target, r.Value)
	}

	return text
}
