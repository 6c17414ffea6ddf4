package aggregate

import "strings"

// LegacySuffix 旧版区域网络后缀（已被 ISDN 取代）
const LegacySuffix = "SCN"

// SanitizeNames 统一实体名称
// 同一批名称中只要有一个带 SCN 后缀，就认为该季度采用旧命名，全部去除后缀；否则仅去除首尾空格。
// TODO: 增加名称别名表，合并 "Hospital Trust" / "Hospitals Trust" 这类非后缀拼写差异
func SanitizeNames(names []string) []string {
	legacy := false
	for _, name := range names {
		if strings.Contains(name, LegacySuffix) {
			legacy = true
			break
		}
	}

	out := make([]string, len(names))
	for i, name := range names {
		if legacy {
			name = strings.ReplaceAll(name, LegacySuffix, "")
		}
		out[i] = strings.TrimSpace(name)
	}
	return out
}
