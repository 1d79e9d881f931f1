package timeline

import (
	"math"
	"sort"
	"time"

	"github.com/gonewx/cinereel/pkg/utils"
)

// Track 一段属性动画
type Track struct {
	Name     string
	Start    time.Duration
	Duration time.Duration
	From     float64
	To       float64
	// Easing 为 nil 时使用线性插值
	Easing utils.Easing
}

// End 返回动画结束时间
func (tr Track) End() time.Duration {
	return tr.Start + tr.Duration
}

// ValueAt 计算时间 t 时的属性值
// 返回的 bool 表示 t 是否已到达 Start
func (tr Track) ValueAt(t time.Duration) (float64, bool) {
	if t < tr.Start {
		return tr.From, false
	}
	if tr.Duration <= 0 || t >= tr.End() {
		return tr.To, true
	}

	progress := utils.Clamp01(float64(t-tr.Start) / float64(tr.Duration))
	ease := tr.Easing
	if ease == nil {
		ease = utils.EaseLinear
	}
	return utils.Lerp(tr.From, tr.To, ease(progress)), true
}

// Timeline 同一属性的多段动画
// 两段之间保持上一段的终值，第一段开始前保持 Initial
type Timeline struct {
	Initial float64
	tracks  []Track
}

// NewTimeline 创建时间线，tracks 按 Start 排序
func NewTimeline(initial float64, tracks ...Track) *Timeline {
	sorted := append([]Track(nil), tracks...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	return &Timeline{Initial: initial, tracks: sorted}
}

// Value 计算时间 t 时的属性值
func (tl *Timeline) Value(t time.Duration) float64 {
	value := tl.Initial
	for _, tr := range tl.tracks {
		v, started := tr.ValueAt(t)
		if !started {
			break
		}
		value = v
	}
	return value
}

// End 返回最后一段动画的结束时间
func (tl *Timeline) End() time.Duration {
	var end time.Duration
	for _, tr := range tl.tracks {
		end = max(end, tr.End())
	}
	return end
}

// Seconds 将帧间隔（秒）转换为 time.Duration，四舍五入到纳秒
func Seconds(dt float64) time.Duration {
	return time.Duration(math.Round(dt * float64(time.Second)))
}
