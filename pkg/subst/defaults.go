package subst

import "regexp"

// defaultPattern 匹配 "key | value" 或 "key || other"，竖线两侧各一个空格。
var defaultPattern = regexp.MustCompile(`(.+?)\x20(\|+)\x20(.+?)$`)

// DefaultKind 表示占位符内嵌默认值的类型。
type DefaultKind int

const (
	// DefaultNone 没有默认值，RawKey 即查询 key。
	DefaultNone DefaultKind = iota
	// DefaultStatic 单竖线，查询失败时使用字面量。
	DefaultStatic
	// DefaultDynamic 两个及以上竖线，查询失败时用默认值作为新 key 再查一次。
	DefaultDynamic
)

// String 返回类型名称，用于日志与 scan 输出。
func (k DefaultKind) String() string {
	switch k {
	case DefaultStatic:
		return "static"
	case DefaultDynamic:
		return "dynamic"
	default:
		return "none"
	}
}

// DefaultSpec 是 [ExtractDefault] 的解析结果。
type DefaultSpec struct {
	Kind DefaultKind
	// Key 是实际查询的 key。
	Key string
	// Value 在 DefaultStatic 下为字面量，在 DefaultDynamic 下为备用 key。
	Value string
}

// ExtractDefault 解析 rawKey 中的默认值语法。
//
// 遍历全部匹配，以最后一次匹配为准；竖线数量决定静态或动态。
// 不符合语法时返回 DefaultNone，Key 为 rawKey 本身。
func ExtractDefault(rawKey string) DefaultSpec {
	spec := DefaultSpec{Kind: DefaultNone, Key: rawKey}
	for _, groups := range defaultPattern.FindAllStringSubmatch(rawKey, -1) {
		if len(groups) != 4 {
			continue
		}

		kind := DefaultStatic
		if len(groups[2]) > 1 {
			kind = DefaultDynamic
		}
		spec = DefaultSpec{Kind: kind, Key: groups[1], Value: groups[3]}
	}

	return spec
}
