package subst

// FailureMode 表示占位符无法解析时的处理方式。
type FailureMode int

const (
	// FailIgnore 保留占位符原文。
	FailIgnore FailureMode = iota
	// FailAbort 终止替换并返回 [UnresolvedKeyError]。
	FailAbort
	// FailConstant 使用固定值替换。
	FailConstant
	// FailCallback 调用回调获取替换值。
	FailCallback
)

// String 返回模式名称。
func (m FailureMode) String() string {
	switch m {
	case FailAbort:
		return "abort"
	case FailConstant:
		return "constant"
	case FailCallback:
		return "callback"
	default:
		return "ignore"
	}
}

// FailurePolicy 描述主 key 与默认值都无法解析时的行为。
//
// 零值等同于 [Ignore]。
type FailurePolicy struct {
	Mode FailureMode
	// Value 仅在 FailConstant 下使用。
	Value string
	// Callback 仅在 FailCallback 下使用，参数为实际查询的 key。
	// 同一次替换中按扫描顺序串行调用，可以修改闭包捕获的状态。
	Callback func(key string) string
}

// Ignore 返回保留原文的策略。
func Ignore() FailurePolicy {
	return FailurePolicy{Mode: FailIgnore}
}

// Abort 返回遇到首个未解析 key 即报错的策略。
func Abort() FailurePolicy {
	return FailurePolicy{Mode: FailAbort}
}

// Constant 返回使用固定值 v 的策略。
func Constant(v string) FailurePolicy {
	return FailurePolicy{Mode: FailConstant, Value: v}
}

// Callback 返回由 fn 决定替换值的策略。fn 为 nil 时等同于 [Ignore]。
func Callback(fn func(key string) string) FailurePolicy {
	if fn == nil {
		return Ignore()
	}

	return FailurePolicy{Mode: FailCallback, Callback: fn}
}

// apply 返回替换值；ok 为 false 表示保留原文。
func (p FailurePolicy) apply(m Marker, key string) (string, bool, error) {
	switch p.Mode {
	case FailAbort:
		return "", false, &UnresolvedKeyError{Key: key, Marker: m.FullMatch}
	case FailConstant:
		return p.Value, true, nil
	case FailCallback:
		if p.Callback == nil {
			return "", false, nil
		}
		return p.Callback(key), true, nil
	default:
		return "", false, nil
	}
}
