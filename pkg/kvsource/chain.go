package kvsource

import "github.com/lwmacct/251207-go-pkg-subst/pkg/subst"

type chain []subst.Source

// Chain 按顺序查询 srcs，返回第一个命中的值；nil 来源会被跳过。
func Chain(srcs ...subst.Source) subst.Source {
	out := make(chain, 0, len(srcs))
	for _, s := range srcs {
		if s != nil {
			out = append(out, s)
		}
	}

	return out
}

func (c chain) Lookup(key string, syntax rune) (string, bool) {
	for _, s := range c {
		if v, ok := s.Lookup(key, syntax); ok {
			return v, true
		}
	}

	return "", false
}

type bySyntax struct {
	routes   map[rune]subst.Source
	fallback subst.Source
}

// BySyntax 按语法字符选择来源；未登记的字符使用 fallback，fallback 为 nil 时视为未找到。
func BySyntax(routes map[rune]subst.Source, fallback subst.Source) subst.Source {
	return bySyntax{routes: routes, fallback: fallback}
}

func (b bySyntax) Lookup(key string, syntax rune) (string, bool) {
	if s, ok := b.routes[syntax]; ok && s != nil {
		return s.Lookup(key, syntax)
	}
	if b.fallback == nil {
		return "", false
	}

	return b.fallback.Lookup(key, syntax)
}
