package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ValueKind 单元格取值类型
type ValueKind int

const (
	ValueMissing ValueKind = iota
	ValueNumeric
	ValueGrade
)

// Value 得分单元格：数值 | 等级字母 | 缺失
type Value struct {
	Kind   ValueKind
	Number float64
	Grade  byte
}

// Numeric 数值
func Numeric(f float64) Value {
	return Value{Kind: ValueNumeric, Number: f}
}

// Grade 等级（A-E）
func Grade(g byte) Value {
	return Value{Kind: ValueGrade, Grade: g}
}

// Missing 缺失
func Missing() Value {
	return Value{}
}

// IsMissing 是否缺失
func (v Value) IsMissing() bool {
	return v.Kind == ValueMissing
}

// Float 数值取值；非数值返回 false
func (v Value) Float() (float64, bool) {
	if v.Kind != ValueNumeric {
		return 0, false
	}
	return v.Number, true
}

// String 写入 CSV 的文本形式，缺失为空串
func (v Value) String() string {
	switch v.Kind {
	case ValueNumeric:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case ValueGrade:
		return string(v.Grade)
	default:
		return ""
	}
}

// MarshalJSON 数值输出 number，等级输出字符串，缺失输出 null
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueNumeric:
		return json.Marshal(v.Number)
	case ValueGrade:
		return json.Marshal(string(v.Grade))
	default:
		return []byte("null"), nil
	}
}

// ParseNumeric 强制转换为数值，无法解析（含等级字母）的一律视为缺失
func ParseNumeric(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Missing()
	}
	// 移除千分位分隔符
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing()
	}
	return Numeric(f)
}

// ParseValue 解析原始单元格：数值、A-E 等级或缺失
func ParseValue(s string) Value {
	if v := ParseNumeric(s); !v.IsMissing() {
		return v
	}
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		g := strings.ToUpper(s)[0]
		if g >= 'A' && g <= 'E' {
			return Grade(g)
		}
	}
	return Missing()
}
