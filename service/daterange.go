package service

import (
	"fmt"
	"net/url"
	"time"
)

const dateLayout = "2006-01-02"

// 日期范围预设
const (
	PresetToday      = "today"
	PresetYesterday  = "yesterday"
	PresetLast7Days  = "last7days"
	PresetLast30Days = "last30days"
	PresetThisMonth  = "thisMonth"
	PresetThisYear   = "thisYear"
	PresetCustom     = "custom"
)

// RangeSelection 用户选择的日期范围：预设或自定义
type RangeSelection struct {
	Preset string
	Start  string // 仅 custom 使用，YYYY-MM-DD
	End    string
}

// DateRange 已解析的闭区间日期范围（按天）
type DateRange struct {
	Preset string    `json:"preset"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// Query 转为后端查询参数 start/end
func (r DateRange) Query() url.Values {
	q := url.Values{}
	q.Set("start", r.Start.Format(dateLayout))
	q.Set("end", r.End.Format(dateLayout))
	return q
}

// String 形如 2024-01-01~2024-01-07
func (r DateRange) String() string {
	return r.Start.Format(dateLayout) + "~" + r.End.Format(dateLayout)
}

// ResolveRange 根据当前时间把选择解析为具体日期
func ResolveRange(sel RangeSelection, now time.Time) (DateRange, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	rng := DateRange{Preset: sel.Preset, End: today}

	switch sel.Preset {
	case PresetToday:
		rng.Start = today
	case PresetYesterday:
		rng.Start = today.AddDate(0, 0, -1)
		rng.End = rng.Start
	case PresetLast7Days:
		rng.Start = today.AddDate(0, 0, -6)
	case PresetLast30Days:
		rng.Start = today.AddDate(0, 0, -29)
	case PresetThisMonth:
		rng.Start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	case PresetThisYear:
		rng.Start = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
	case PresetCustom:
		start, err := time.ParseInLocation(dateLayout, sel.Start, now.Location())
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: start %q", ErrInvalidRange, sel.Start)
		}
		end, err := time.ParseInLocation(dateLayout, sel.End, now.Location())
		if err != nil {
			return DateRange{}, fmt.Errorf("%w: end %q", ErrInvalidRange, sel.End)
		}
		if end.Before(start) {
			return DateRange{}, fmt.Errorf("%w: end before start", ErrInvalidRange)
		}
		rng.Start, rng.End = start, end
	default:
		return DateRange{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidRange, sel.Preset)
	}
	return rng, nil
}
