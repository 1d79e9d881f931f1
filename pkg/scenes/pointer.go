package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/cinereel/pkg/input"
)

// readPointer 读取本帧的指针状态，触摸优先于鼠标
func readPointer() input.PointerSample {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return input.PointerSample{Pressed: true, X: x, Y: y, TouchID: int(touchIDs[0])}
	}

	x, y := ebiten.CursorPosition()
	return input.PointerSample{
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		X:       x,
		Y:       y,
		TouchID: -1,
	}
}
