// Package input 将逐帧的指针采样转换为拖拽和轻扫手势
//
// 本包不读取任何设备，调用方每帧提供一个 PointerSample（鼠标或触摸），
// 因此手势逻辑可以在无图形环境下测试。
package input

// PointerSample 一帧的指针状态
type PointerSample struct {
	// Pressed 鼠标左键按下或存在活动触摸
	Pressed bool
	X, Y    int
	// TouchID 触摸ID，鼠标为 -1
	TouchID int
}

// DragState 拖拽状态
type DragState int

const (
	// DragStateNone 无拖拽
	DragStateNone DragState = iota
	// DragStateStarted 拖拽开始（刚按下）
	DragStateStarted
	// DragStateDragging 拖拽中（按住移动）
	DragStateDragging
	// DragStateEnded 拖拽结束（释放），只持续一帧
	DragStateEnded
)

// DragInfo 拖拽信息
type DragInfo struct {
	State DragState
	// StartX, StartY 拖拽起始位置（屏幕坐标）
	StartX, StartY int
	// CurrentX, CurrentY 当前位置；结束帧为释放前最后的位置
	CurrentX, CurrentY int
	TouchID            int
}

// 手势阈值（像素）
const (
	DefaultSwipeThreshold = 40
	DefaultTapSlop        = 10
)

// DragTracker 跟踪单个指针的拖拽过程
type DragTracker struct {
	info DragInfo
	// SwipeThreshold 水平位移超过此值才算轻扫
	SwipeThreshold int
	// TapSlop 位移不超过此值的按下-释放算点击
	TapSlop int
}

// NewDragTracker 创建使用默认阈值的拖拽跟踪器
func NewDragTracker() *DragTracker {
	return &DragTracker{
		info:           DragInfo{TouchID: -1},
		SwipeThreshold: DefaultSwipeThreshold,
		TapSlop:        DefaultTapSlop,
	}
}

// Update 用本帧的采样推进状态（每帧调用一次）
func (dt *DragTracker) Update(sample PointerSample) {
	switch dt.info.State {
	case DragStateNone:
		if sample.Pressed {
			dt.info = DragInfo{
				State:    DragStateStarted,
				StartX:   sample.X,
				StartY:   sample.Y,
				CurrentX: sample.X,
				CurrentY: sample.Y,
				TouchID:  sample.TouchID,
			}
		}

	case DragStateStarted, DragStateDragging:
		if !sample.Pressed || sample.TouchID != dt.info.TouchID {
			dt.info.State = DragStateEnded
			return
		}
		dt.info.State = DragStateDragging
		dt.info.CurrentX, dt.info.CurrentY = sample.X, sample.Y

	case DragStateEnded:
		dt.Reset()
		// 同一帧内的新按下直接开始下一次拖拽
		if sample.Pressed {
			dt.Update(sample)
		}
	}
}

// Reset 重置拖拽状态
func (dt *DragTracker) Reset() {
	dt.info = DragInfo{State: DragStateNone, TouchID: -1}
}

// GetState 获取当前拖拽状态
func (dt *DragTracker) GetState() DragState {
	return dt.info.State
}

// GetInfo 获取完整拖拽信息
func (dt *DragTracker) GetInfo() DragInfo {
	return dt.info
}

// IsDragging 是否正在拖拽
func (dt *DragTracker) IsDragging() bool {
	return dt.info.State == DragStateDragging
}

// JustEnded 是否刚结束拖拽（本帧）
func (dt *DragTracker) JustEnded() bool {
	return dt.info.State == DragStateEnded
}

// GetDragDistance 获取拖拽距离（从起点到当前位置）
func (dt *DragTracker) GetDragDistance() (dx, dy int) {
	return dt.info.CurrentX - dt.info.StartX, dt.info.CurrentY - dt.info.StartY
}

// Swipe 在拖拽结束帧返回轻扫方向：向左滑返回 +1（下一项），向右滑返回 -1，其他返回 0
func (dt *DragTracker) Swipe() int {
	if dt.info.State != DragStateEnded {
		return 0
	}
	dx, dy := dt.GetDragDistance()
	if abs(dx) < dt.SwipeThreshold || abs(dx) <= abs(dy) {
		return 0
	}
	if dx < 0 {
		return 1
	}
	return -1
}

// Tap 在拖拽结束帧判断是否为点击，返回点击位置
func (dt *DragTracker) Tap() (bool, int, int) {
	if dt.info.State != DragStateEnded {
		return false, 0, 0
	}
	dx, dy := dt.GetDragDistance()
	if abs(dx) > dt.TapSlop || abs(dy) > dt.TapSlop {
		return false, 0, 0
	}
	return true, dt.info.StartX, dt.info.StartY
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
