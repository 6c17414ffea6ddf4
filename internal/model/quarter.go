package model

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Season 季度代码（按起始月份排序）
type Season int

const (
	JanMar Season = iota + 1
	AprJun
	JulSep
	OctDec
)

var seasonCodes = map[Season]string{
	JanMar: "JanMar",
	AprJun: "AprJun",
	JulSep: "JulSep",
	OctDec: "OctDec",
}

// Code 返回季度代码，如 "JulSep"
func (s Season) Code() string {
	return seasonCodes[s]
}

// StartMonth 季度起始月份
func (s Season) StartMonth() time.Month {
	return time.Month(int(s)*3 - 2)
}

// Quarter 报告期标识（季度代码 + 四位年份）
type Quarter struct {
	Season Season
	Year   int
}

// FirstQuarter 最早可用的报告期
var FirstQuarter = Quarter{Season: JulSep, Year: 2013}

// String 返回报告期标识，如 "JulSep2013"
func (q Quarter) String() string {
	return fmt.Sprintf("%s%04d", q.Season.Code(), q.Year)
}

// Date 报告期对应的日历日期（起始月第一天）
func (q Quarter) Date() time.Time {
	return time.Date(q.Year, q.Season.StartMonth(), 1, 0, 0, 0, 0, time.UTC)
}

// Before 按 (年份, 季度) 比较先后
func (q Quarter) Before(other Quarter) bool {
	if q.Year != other.Year {
		return q.Year < other.Year
	}
	return q.Season < other.Season
}

// Next 下一个报告期
func (q Quarter) Next() Quarter {
	if q.Season == OctDec {
		return Quarter{Season: JanMar, Year: q.Year + 1}
	}
	return Quarter{Season: q.Season + 1, Year: q.Year}
}

// IsZero 是否为空值
func (q Quarter) IsZero() bool {
	return q.Season == 0 && q.Year == 0
}

// QuarterOf 给定时间所在的报告期
func QuarterOf(t time.Time) Quarter {
	return Quarter{Season: Season((int(t.Month())-1)/3 + 1), Year: t.Year()}
}

// Quarters 列出从 FirstQuarter 到 now 所在季度（含）的全部报告期，按时间升序
func Quarters(now time.Time) []Quarter {
	last := QuarterOf(now)
	var out []Quarter
	for q := FirstQuarter; !last.Before(q); q = q.Next() {
		out = append(out, q)
	}
	return out
}

// ParseQuarter 解析已持久化的报告期标识（如文件名 "JulSep2013"）
func ParseQuarter(s string) (Quarter, error) {
	if len(s) != 10 {
		return Quarter{}, fmt.Errorf("invalid quarter %q", s)
	}
	code, yearText := s[:6], s[6:]
	for season, c := range seasonCodes {
		if c != code {
			continue
		}
		year, err := strconv.Atoi(yearText)
		if err != nil {
			return Quarter{}, fmt.Errorf("invalid quarter year %q: %w", s, err)
		}
		return Quarter{Season: season, Year: year}, nil
	}
	return Quarter{}, fmt.Errorf("invalid quarter code %q", s)
}

// SortQuarters 原地按时间升序排序
func SortQuarters(qs []Quarter) {
	sort.Slice(qs, func(i, j int) bool { return qs[i].Before(qs[j]) })
}

// MarshalText 输出报告期标识
func (q Quarter) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}
