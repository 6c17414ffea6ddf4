// Package summary 基于概览表与实体序列计算看板所需的汇总指标。
//
// 所有输出保留两位小数。
package summary

import (
	"sort"

	"github.com/shopspring/decimal"
	"strokedash/internal/model"
)

// 近期窗口：最近四个季度
const yearWindow = 4

// QuarterMean 某季度全部实体得分的平均值
type QuarterMean struct {
	Quarter model.Quarter `json:"quarter"`
	Mean    model.Value   `json:"mean"`
}

// LatestSummary 最新季度概况
type LatestSummary struct {
	Quarter model.Quarter `json:"quarter"`
	Mean    model.Value   `json:"mean"`
	// Delta 与上一季度均值之差
	Delta model.Value `json:"delta"`
	// YearMean 最近四个季度均值
	YearMean     model.Value `json:"yearMean"`
	PrevYearMean model.Value `json:"prevYearMean"`
	YearDelta    model.Value `json:"yearDelta"`
}

// Ranked 排名条目
type Ranked struct {
	Entity string  `json:"entity"`
	Score  float64 `json:"score"`
}

// Move 相邻两个季度之间的变化
type Move struct {
	Entity   string  `json:"entity"`
	Previous float64 `json:"previous"`
	Current  float64 `json:"current"`
	Change   float64 `json:"change"`
}

// MoverSet 进步最大与退步最大的实体
type MoverSet struct {
	Improvers []Move `json:"improvers"`
	Decliners []Move `json:"decliners"`
}

// MetricDelta 实体某指标最新与上一季度的比较
type MetricDelta struct {
	Metric   string      `json:"metric"`
	Current  model.Value `json:"current"`
	Previous model.Value `json:"previous"`
	Delta    model.Value `json:"delta"`
}

func round(d decimal.Decimal) model.Value {
	return model.Numeric(d.Round(2).InexactFloat64())
}

func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

// mean 非缺失值的平均数
func mean(values []model.Value) (decimal.Decimal, bool) {
	sum := decimal.Zero
	n := 0
	for _, v := range values {
		if v.Kind != model.ValueNumeric {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(v.Number))
		n++
	}
	if n == 0 {
		return decimal.Zero, false
	}
	return sum.Div(decimal.NewFromInt(int64(n))), true
}

// NationalMean 每个季度的全国均值；全部缺失的季度为缺失值
func NationalMean(ov *model.OverviewTable) []QuarterMean {
	out := make([]QuarterMean, 0, len(ov.Quarters))
	for qi, q := range ov.Quarters {
		m := model.Missing()
		if d, ok := mean(ov.Cells[qi]); ok {
			m = round(d)
		}
		out = append(out, QuarterMean{Quarter: q, Mean: m})
	}
	return out
}

// Latest 最新季度概况；概览表为空时返回 nil
func Latest(ov *model.OverviewTable) *LatestSummary {
	n := len(ov.Quarters)
	if n == 0 {
		return nil
	}

	means := make([]decimal.Decimal, n)
	present := make([]bool, n)
	for qi := range ov.Quarters {
		means[qi], present[qi] = mean(ov.Cells[qi])
	}

	out := &LatestSummary{
		Quarter:      ov.Quarters[n-1],
		Mean:         model.Missing(),
		Delta:        model.Missing(),
		YearMean:     model.Missing(),
		PrevYearMean: model.Missing(),
		YearDelta:    model.Missing(),
	}
	if present[n-1] {
		out.Mean = round(means[n-1])
		if n > 1 && present[n-2] {
			out.Delta = round(means[n-1].Sub(means[n-2]))
		}
	}

	// 按行（季度）取窗口
	cur, curOK := windowMean(means, present, n-yearWindow, n)
	prev, prevOK := windowMean(means, present, n-2*yearWindow, n-yearWindow)
	if curOK {
		out.YearMean = round(cur)
	}
	if prevOK {
		out.PrevYearMean = round(prev)
	}
	if curOK && prevOK {
		out.YearDelta = round(cur.Sub(prev))
	}
	return out
}

func windowMean(means []decimal.Decimal, present []bool, from, to int) (decimal.Decimal, bool) {
	if from < 0 || to <= from {
		return decimal.Zero, false
	}
	sum := decimal.Zero
	n := 0
	for i := from; i < to; i++ {
		if !present[i] {
			continue
		}
		sum = sum.Add(means[i])
		n++
	}
	if n == 0 {
		return decimal.Zero, false
	}
	return sum.Div(decimal.NewFromInt(int64(n))), true
}

func latestScores(ov *model.OverviewTable) []Ranked {
	n := len(ov.Quarters)
	if n == 0 {
		return nil
	}
	var out []Ranked
	for ei, name := range ov.Entities {
		v := ov.Cells[n-1][ei]
		if v.Kind != model.ValueNumeric {
			continue
		}
		out = append(out, Ranked{Entity: name, Score: round2(v.Number)})
	}
	return out
}

// TopN 最新季度得分最高的 n 个实体，同分按名称排序
func TopN(ov *model.OverviewTable, n int) []Ranked {
	ranked := latestScores(ov)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Entity < ranked[j].Entity
	})
	return head(ranked, n)
}

// BottomN 最新季度得分最低的 n 个实体，同分按名称排序
func BottomN(ov *model.OverviewTable, n int) []Ranked {
	ranked := latestScores(ov)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score < ranked[j].Score
		}
		return ranked[i].Entity < ranked[j].Entity
	})
	return head(ranked, n)
}

func head[T any](s []T, n int) []T {
	if n >= 0 && len(s) > n {
		return s[:n]
	}
	return s
}

// Movers 最近两个季度变化最大的实体；任一季度缺失的实体不参与
func Movers(ov *model.OverviewTable, n int) MoverSet {
	out := MoverSet{Improvers: []Move{}, Decliners: []Move{}}
	q := len(ov.Quarters)
	if q < 2 {
		return out
	}

	for ei, name := range ov.Entities {
		prev, cur := ov.Cells[q-2][ei], ov.Cells[q-1][ei]
		if prev.Kind != model.ValueNumeric || cur.Kind != model.ValueNumeric {
			continue
		}
		change := decimal.NewFromFloat(cur.Number).Sub(decimal.NewFromFloat(prev.Number)).Round(2).InexactFloat64()
		m := Move{Entity: name, Previous: round2(prev.Number), Current: round2(cur.Number), Change: change}
		switch {
		case change > 0:
			out.Improvers = append(out.Improvers, m)
		case change < 0:
			out.Decliners = append(out.Decliners, m)
		}
	}

	sort.SliceStable(out.Improvers, func(i, j int) bool {
		if out.Improvers[i].Change != out.Improvers[j].Change {
			return out.Improvers[i].Change > out.Improvers[j].Change
		}
		return out.Improvers[i].Entity < out.Improvers[j].Entity
	})
	sort.SliceStable(out.Decliners, func(i, j int) bool {
		if out.Decliners[i].Change != out.Decliners[j].Change {
			return out.Decliners[i].Change < out.Decliners[j].Change
		}
		return out.Decliners[i].Entity < out.Decliners[j].Entity
	})
	out.Improvers = head(out.Improvers, n)
	out.Decliners = head(out.Decliners, n)
	return out
}

// MetricDeltas 实体每个指标最新季度相对上一季度的变化
//
// 数值取差；两端均为等级时取名次变化（A 最好，升一级为 +1）；其他组合无变化值。
func MetricDeltas(series *model.SeriesTable) []MetricDelta {
	out := make([]MetricDelta, 0, len(series.Metrics))
	n := len(series.Quarters)
	for mi, metric := range series.Metrics {
		d := MetricDelta{
			Metric:   metric,
			Current:  model.Missing(),
			Previous: model.Missing(),
			Delta:    model.Missing(),
		}
		if n > 0 {
			d.Current = series.Cells[mi][n-1]
		}
		if n > 1 {
			d.Previous = series.Cells[mi][n-2]
		}
		d.Delta = delta(d.Previous, d.Current)
		if d.Current.Kind == model.ValueNumeric {
			d.Current = model.Numeric(round2(d.Current.Number))
		}
		if d.Previous.Kind == model.ValueNumeric {
			d.Previous = model.Numeric(round2(d.Previous.Number))
		}
		out = append(out, d)
	}
	return out
}

func delta(prev, cur model.Value) model.Value {
	switch {
	case prev.Kind == model.ValueNumeric && cur.Kind == model.ValueNumeric:
		return round(decimal.NewFromFloat(cur.Number).Sub(decimal.NewFromFloat(prev.Number)))
	case prev.Kind == model.ValueGrade && cur.Kind == model.ValueGrade:
		return model.Numeric(float64(int(prev.Grade) - int(cur.Grade)))
	default:
		return model.Missing()
	}
}
