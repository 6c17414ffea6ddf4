package model

import (
	"fmt"
	"strings"
)

// Level 组织层级：ISDN ⊃ Trust ⊃ Team
type Level int

const (
	LevelISDN Level = iota + 1
	LevelTrust
	LevelTeam
)

// AllLevels 全部层级（由粗到细）
func AllLevels() []Level {
	return []Level{LevelISDN, LevelTrust, LevelTeam}
}

// Label 原始表中对应的行标签
func (l Level) Label() string {
	switch l {
	case LevelISDN:
		return "ISDN"
	case LevelTrust:
		return "Trust"
	case LevelTeam:
		return "Team"
	default:
		return ""
	}
}

// Name 大写键名，用于单实体序列的目录
func (l Level) Name() string {
	return strings.ToUpper(l.Label())
}

func (l Level) String() string {
	return l.Label()
}

// MarshalText 以行标签形式输出
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.Label()), nil
}

// ParseLevel 解析层级（大小写不敏感）
func ParseLevel(s string) (Level, error) {
	for _, l := range AllLevels() {
		if strings.EqualFold(strings.TrimSpace(s), l.Label()) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q", s)
}

// IsLevelLabel 判断行标签是否为层级标签行
func IsLevelLabel(label string) bool {
	for _, l := range AllLevels() {
		if label == l.Label() {
			return true
		}
	}
	return false
}
