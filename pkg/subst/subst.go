package subst

import (
	"log/slog"
	"slices"
)

// DefaultSyntaxChar 是未指定语法字符时唯一允许的前缀。
const DefaultSyntaxChar = '$'

// ═══════════════════════════════════════════════════════════════════════════
// 选项
// ═══════════════════════════════════════════════════════════════════════════

type options struct {
	syntaxChars []rune
	policy      FailurePolicy
	logger      *slog.Logger
}

// Option 配置 [Engine]。
type Option func(*options)

// WithSyntaxChars 设置允许的语法字符，未设置或为空时仅允许 '$'。
func WithSyntaxChars(chars ...rune) Option {
	return func(o *options) {
		o.syntaxChars = chars
	}
}

// WithFailurePolicy 设置未解析占位符的处理策略，默认 [Ignore]。
func WithFailurePolicy(p FailurePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithLogger 设置调试日志输出，nil 表示不输出。
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 引擎
// ═══════════════════════════════════════════════════════════════════════════

// Engine 按固定的语法字符与失败策略执行替换。
//
// Engine 本身不保存替换过程中的状态；回调策略中的状态由调用方负责。
type Engine struct {
	opts options
}

// New 创建 [Engine]。
func New(opts ...Option) *Engine {
	o := options{policy: Ignore()}
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.syntaxChars) == 0 {
		o.syntaxChars = []rune{DefaultSyntaxChar}
	}

	return &Engine{opts: o}
}

// Plan 扫描 text 并解析每个占位符，返回替换计划，不修改 text。
//
// 解析顺序：
//  1. 语法字符不在允许列表中的占位符直接跳过，不触发失败策略
//  2. 查询主 key，命中即使用
//  3. 静态默认值直接使用；动态默认值作为 key 再查询一次
//  4. 仍未解析时交给失败策略；[FailAbort] 在第一个失败处返回错误
func (e *Engine) Plan(text string, src Source) (ReplacementPlan, error) {
	var plan ReplacementPlan
	for m := range Scan(text) {
		if !slices.Contains(e.opts.syntaxChars, m.SyntaxChar) {
			continue
		}

		value, ok, err := e.resolve(m, src)
		if err != nil {
			return nil, err
		}
		if ok {
			plan = append(plan, Replacement{Target: m.FullMatch, Value: value})
		}
	}

	return plan, nil
}

// Substitute 先生成替换计划，再一次性应用到 text。
func (e *Engine) Substitute(text string, src Source) (string, error) {
	plan, err := e.Plan(text, src)
	if err != nil {
		return "", err
	}

	return plan.Apply(text), nil
}

func (e *Engine) resolve(m Marker, src Source) (string, bool, error) {
	spec := ExtractDefault(m.RawKey)

	if v, ok := src.Lookup(spec.Key, m.SyntaxChar); ok {
		return v, true, nil
	}

	switch spec.Kind {
	case DefaultStatic:
		return spec.Value, true, nil
	case DefaultDynamic:
		if v, ok := src.Lookup(spec.Value, m.SyntaxChar); ok {
			return v, true, nil
		}
	case DefaultNone:
	}

	if e.opts.logger != nil {
		e.opts.logger.Debug("marker unresolved",
			slog.String("key", spec.Key),
			slog.String("marker", m.FullMatch),
			slog.String("policy", e.opts.policy.Mode.String()),
		)
	}

	return e.opts.policy.apply(m, spec.Key)
}

// Substitute 替换 text 中的占位符。
//
// allowed 为允许的语法字符，省略时仅处理 '$'。
// 只有 policy 为 [Abort] 且存在无法解析的占位符时返回错误。
func Substitute(text string, src Source, policy FailurePolicy, allowed ...rune) (string, error) {
	return New(WithSyntaxChars(allowed...), WithFailurePolicy(policy)).Substitute(text, src)
}

// MustSubstitute 调用 [Substitute]，失败时 panic。
func MustSubstitute(text string, src Source, policy FailurePolicy, allowed ...rune) string {
	out, err := Substitute(text, src, policy, allowed...)
	if err != nil {
		panic(err.Error())
	}

	return out
}
