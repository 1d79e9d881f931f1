package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one screen of the app (intro, carousel).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Teardowner 是一个可选接口，场景被切换掉时调用 Teardown
//
// 实现此接口的场景应在 Teardown 中取消所有计时器和动画，
// 之后不再修改任何状态、不再触发回调。
type Teardowner interface {
	Teardown()
}

// Resizable 是一个可选接口，逻辑屏幕尺寸变化时调用 Resize
type Resizable interface {
	Resize(width, height int)
}
