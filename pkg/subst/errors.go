package subst

import (
	"errors"
	"fmt"
)

// ErrUnresolvedKey 可用于 errors.Is 判断 [FailAbort] 导致的失败。
var ErrUnresolvedKey = errors.New("subst: unresolved key")

// UnresolvedKeyError 记录第一个无法解析的 key。
type UnresolvedKeyError struct {
	Key    string
	Marker string
}

func (e *UnresolvedKeyError) Error() string {
	return fmt.Sprintf("subst: failed to get value from key: %s (marker %q)", e.Key, e.Marker)
}

// Is 使 errors.Is(err, ErrUnresolvedKey) 成立。
func (e *UnresolvedKeyError) Is(target error) bool {
	return target == ErrUnresolvedKey
}
