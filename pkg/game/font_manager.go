package game

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// FontManager 缓存界面使用的字体
// 所有字号共享同一个内置 Go Regular 字体源（覆盖拉丁字母扩展，影片标题中的重音字符可以正常显示）
type FontManager struct {
	once      sync.Once
	source    *text.GoTextFaceSource
	sourceErr error
	faceCache map[float64]*text.GoTextFace
}

// NewFontManager 创建字体管理器，字体源在第一次 LoadFont 时解析
func NewFontManager() *FontManager {
	return &FontManager{faceCache: make(map[float64]*text.GoTextFace)}
}

// LoadFont 返回指定字号的字体
func (fm *FontManager) LoadFont(size float64) (*text.GoTextFace, error) {
	if cachedFace, exists := fm.faceCache[size]; exists {
		return cachedFace, nil
	}

	fm.once.Do(func() {
		fm.source, fm.sourceErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	})
	if fm.sourceErr != nil {
		return nil, fmt.Errorf("failed to create font source: %w", fm.sourceErr)
	}

	face := &text.GoTextFace{
		Source:    fm.source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	fm.faceCache[size] = face
	return face, nil
}

// MustLoadFont 与 LoadFont 相同，失败时 panic（内置字体解析失败属于构建错误）
func (fm *FontManager) MustLoadFont(size float64) *text.GoTextFace {
	face, err := fm.LoadFont(size)
	if err != nil {
		panic(err)
	}
	return face
}
