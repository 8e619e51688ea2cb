package kvsource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	json "github.com/goccy/go-json"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251207-go-pkg-subst/pkg/subst"
)

// ═══════════════════════════════════════════════════════════════════════════
// 值文件
// ═══════════════════════════════════════════════════════════════════════════

// File 读取 YAML 或 JSON 值文件（按扩展名 .json 区分）并展平为 [subst.Map]。
//
// 嵌套对象以 "." 连接，列表使用下标，例如：
//
//	db:
//	  hosts: [a, b]
//
// 得到 db.hosts.0 = a、db.hosts.1 = b。
func File(path string) (subst.Map, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
	if err != nil {
		return nil, fmt.Errorf("kvsource: read values %s: %w", path, err)
	}

	m, err := Parse(path, content)
	if err != nil {
		return nil, fmt.Errorf("kvsource: parse values %s: %w", path, err)
	}

	return m, nil
}

// Parse 按 path 的扩展名解析 content，path 仅用于判断格式。
func Parse(path string, content []byte) (subst.Map, error) {
	var raw any
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		// 数字保留原文，避免 float64 丢失精度
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.UseNumber()
		if err = dec.Decode(&raw); errors.Is(err, io.EOF) {
			err = nil
		}
	} else {
		err = yamlv3.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, err
	}

	out := make(subst.Map)
	if raw == nil {
		return out, nil
	}
	if reflect.ValueOf(raw).Kind() != reflect.Map {
		return nil, errors.New("values root must be object")
	}
	flatten(out, "", reflect.ValueOf(raw))

	return out, nil
}

// FromStruct 按 json tag 把结构体展平为 [subst.Map]，仅处理导出字段。
func FromStruct(v any) (subst.Map, error) {
	var raw map[string]any
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &raw,
		TagName: "json",
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(v); err != nil {
		return nil, fmt.Errorf("kvsource: decode struct: %w", err)
	}

	out := make(subst.Map)
	flatten(out, "", reflect.ValueOf(raw))

	return out, nil
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}

// flatten 把嵌套的 map 与 slice 写成点分路径，其余值转为字符串。
func flatten(dst subst.Map, prefix string, val reflect.Value) {
	for val.Kind() == reflect.Interface || val.Kind() == reflect.Pointer {
		if val.IsNil() {
			dst[prefix] = ""
			return
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Map:
		iter := val.MapRange()
		for iter.Next() {
			key := fmt.Sprintf("%v", iter.Key().Interface())
			flatten(dst, join(prefix, key), iter.Value())
		}
	case reflect.Slice, reflect.Array:
		if val.Kind() == reflect.Slice && val.Type().Elem().Kind() == reflect.Uint8 {
			dst[prefix] = string(val.Bytes())
			return
		}
		for i := range val.Len() {
			flatten(dst, join(prefix, strconv.Itoa(i)), val.Index(i))
		}
	case reflect.Invalid:
		dst[prefix] = ""
	default:
		dst[prefix] = fmt.Sprint(val.Interface())
	}
}
