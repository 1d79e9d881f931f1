package scenes

import "image/color"

// Palette 一套界面配色
type Palette struct {
	Background color.RGBA
	Surface    color.RGBA
	Text       color.RGBA
	TextMuted  color.RGBA
	Border     color.RGBA
	Accent     color.RGBA
	Danger     color.RGBA
	NavButton  color.RGBA
}

// GlyphColor 开场字形颜色，与主题无关
var GlyphColor = color.RGBA{0xE5, 0x09, 0x14, 0xFF}

// LightPalette 浅色主题
var LightPalette = Palette{
	Background: color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
	Surface:    color.RGBA{0xF0, 0xF0, 0xF0, 0xFF},
	Text:       color.RGBA{0x14, 0x14, 0x14, 0xFF},
	TextMuted:  color.RGBA{0x56, 0x56, 0x56, 0xFF},
	Border:     color.RGBA{0xD9, 0xD9, 0xD9, 0xFF},
	Accent:     color.RGBA{0xE5, 0x09, 0x14, 0xFF},
	Danger:     color.RGBA{0xFF, 0x4D, 0x4F, 0xFF},
	NavButton:  color.RGBA{0xCC, 0xCC, 0xCC, 0xFF},
}

// DarkPalette 深色主题
var DarkPalette = Palette{
	Background: color.RGBA{0x12, 0x12, 0x12, 0xFF},
	Surface:    color.RGBA{0x1F, 0x1F, 0x2A, 0xFF},
	Text:       color.RGBA{0xF8, 0xF9, 0xFA, 0xFF},
	TextMuted:  color.RGBA{0x9E, 0xA2, 0xB3, 0xFF},
	Border:     color.RGBA{0x27, 0x27, 0x36, 0xFF},
	Accent:     color.RGBA{0xE5, 0x09, 0x14, 0xFF},
	Danger:     color.RGBA{0xFF, 0x6B, 0x6B, 0xFF},
	NavButton:  color.RGBA{0x66, 0x66, 0x66, 0xFF},
}

// PaletteFor 根据主题返回配色
func PaletteFor(darkMode bool) Palette {
	if darkMode {
		return DarkPalette
	}
	return LightPalette
}
