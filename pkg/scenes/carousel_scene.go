package scenes

import (
	"context"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/cinereel/pkg/components"
	"github.com/gonewx/cinereel/pkg/config"
	"github.com/gonewx/cinereel/pkg/ecs"
	"github.com/gonewx/cinereel/pkg/game"
	"github.com/gonewx/cinereel/pkg/input"
	"github.com/gonewx/cinereel/pkg/items"
	"github.com/gonewx/cinereel/pkg/systems"
)

// 界面文案
const (
	loadingText  = "Carregando filmes..."
	offlineText  = "Sem conexão. Mostrando sugestões offline."
	retryText    = "Tentar novamente (r)"
	emptyText    = "Nenhum filme disponível."
	trailerText  = "▶ Assistir trailer: "
	navPrevLabel = "<"
	navNextLabel = ">"
)

// 布局常量（像素）
const (
	navButtonInset   = 10
	bannerHeight     = 44
	titleGap         = 8
	metadataGap      = 36
	synopsisMaxLines = 4
	spinnerDots      = 8
	spinnerRadius    = 18
)

// CarouselScene 影片轮播场景
//
// 影片列表由 items.Loader 在后台加载，加载完成前显示加载动画。
// 左右方向键、导航按钮和水平轻扫都会请求翻一页；是否接受由 CarouselSystem 决定。
type CarouselScene struct {
	ctx            context.Context
	entityManager  *ecs.EntityManager
	carouselSystem *systems.CarouselSystem
	cfg            config.CarouselConfig
	loader         *items.Loader
	settings       *game.SettingsManager
	drag           *input.DragTracker

	titleFont    *text.GoTextFace
	bodyFont     *text.GoTextFace
	posterFont   *text.GoTextFace
	navFont      *text.GoTextFace
	films        []components.Item
	loaded       bool
	degraded     bool
	loadErr      error
	elapsedTime  float64
	width        int
	height       int
	logger       *log.Logger
}

// NewCarouselScene 创建轮播场景
//
// 参数：
//   - ctx: 重新加载时使用的上下文
//   - cfg: 条目尺寸和弹簧参数
//   - loader: 影片列表加载器（由调用方启动和停止）
//   - settings: 主题设置
//   - fonts: 字体管理器
func NewCarouselScene(ctx context.Context, cfg config.CarouselConfig, loader *items.Loader, settings *game.SettingsManager, fonts *game.FontManager) *CarouselScene {
	em := ecs.NewEntityManager()
	s := &CarouselScene{
		ctx:            ctx,
		entityManager:  em,
		carouselSystem: systems.NewCarouselSystem(em, cfg, config.DefaultWindowWidth),
		cfg:            cfg,
		loader:         loader,
		settings:       settings,
		drag:           input.NewDragTracker(),
		width:          config.DefaultWindowWidth,
		height:         config.DefaultWindowHeight,
		logger:         log.WithPrefix("CarouselScene"),
	}

	s.titleFont = loadFont(fonts, 16, s.logger)
	s.bodyFont = loadFont(fonts, 13, s.logger)
	s.posterFont = loadFont(fonts, 72, s.logger)
	s.navFont = loadFont(fonts, 30, s.logger)
	return s
}

func loadFont(fonts *game.FontManager, size float64, logger *log.Logger) *text.GoTextFace {
	if fonts == nil {
		return nil
	}
	face, err := fonts.LoadFont(size)
	if err != nil {
		logger.Warn("failed to load font", "size", size, "err", err)
		return nil
	}
	return face
}

// Update 处理加载结果、输入和弹簧动画
func (s *CarouselScene) Update(deltaTime float64) {
	s.elapsedTime += deltaTime

	if s.loader != nil {
		if result, ok := s.loader.Poll(); ok {
			s.applyResult(result)
		}
	}

	s.handleInput()
	s.carouselSystem.Update(deltaTime)
}

// applyResult 应用一次加载结果；两个数据源都失败时保留已显示的列表
func (s *CarouselScene) applyResult(result items.Result) {
	s.loaded = true
	s.degraded = result.Degraded
	s.loadErr = result.Err

	if len(result.Items) == 0 {
		s.logger.Error("no films available", "err", result.Err)
		return
	}
	s.films = result.Items
	s.carouselSystem.SetItemCount(len(s.films))
	s.logger.Info("films loaded", "count", len(s.films), "degraded", s.degraded)
}

// handleInput 键盘、导航按钮和轻扫
func (s *CarouselScene) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		s.carouselSystem.Advance(systems.DirectionPrev)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		s.carouselSystem.Advance(systems.DirectionNext)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Retry()
	}

	s.drag.Update(readPointer())
	if !s.drag.JustEnded() {
		return
	}

	if tapped, x, y := s.drag.Tap(); tapped {
		s.handleTap(image.Pt(x, y))
		return
	}
	if direction := s.drag.Swipe(); direction != 0 {
		s.carouselSystem.Advance(direction)
	}
}

func (s *CarouselScene) handleTap(p image.Point) {
	prev, next := navButtonRects(s.width, s.height, s.cfg.ItemWidth)
	switch {
	case p.In(prev):
		s.carouselSystem.Advance(systems.DirectionPrev)
	case p.In(next):
		s.carouselSystem.Advance(systems.DirectionNext)
	case s.showBanner() && p.In(bannerRect(s.width)):
		s.Retry()
	}
}

// Retry 在离线或加载失败时重新请求影片列表
func (s *CarouselScene) Retry() {
	if s.loader == nil || s.loader.Loading() || (!s.degraded && s.loadErr == nil) {
		return
	}
	s.logger.Info("retrying film list")
	s.loader.Start(s.ctx)
}

// Draw 绘制轮播
func (s *CarouselScene) Draw(screen *ebiten.Image) {
	palette := PaletteFor(s.settings != nil && s.settings.DarkMode())
	screen.Fill(palette.Background)

	switch {
	case len(s.films) > 0:
		s.drawCards(screen, palette)
		s.drawMetadata(screen, palette)
		s.drawNavButtons(screen, palette)
	case !s.loaded || (s.loader != nil && s.loader.Loading()):
		s.drawSpinner(screen, palette)
	default:
		drawTextCentered(screen, emptyText, s.titleFont, float64(s.width)/2, float64(s.height)/2, palette.TextMuted)
	}

	if s.showBanner() {
		s.drawBanner(screen, palette)
	}
}

func (s *CarouselScene) showBanner() bool {
	return s.degraded || (s.loaded && s.loadErr != nil)
}

func (s *CarouselScene) drawCards(screen *ebiten.Image, palette Palette) {
	size := s.cfg.ItemWidth
	top := cardTop(s.height, size)
	first, last := s.carouselSystem.VisibleRange()

	for i := first; i < last; i++ {
		film := s.films[i]
		x := s.carouselSystem.SlotX(i)

		vector.DrawFilledRect(screen, float32(x), float32(top), float32(size), float32(size), palette.Surface, true)
		vector.StrokeRect(screen, float32(x), float32(top), float32(size), float32(size), 1, palette.Border, true)
		drawTextCentered(screen, posterInitial(film.Key), s.posterFont, x+size/2, top+size/2-48, palette.Accent)

		title := film.Key
		if s.titleFont != nil {
			title = ellipsize(title, size, faceMeasure(s.titleFont))
		}
		drawTextCentered(screen, title, s.titleFont, x+size/2, top+size+titleGap, palette.Text)
	}
}

// drawMetadata 绘制当前居中影片的评分和简介
func (s *CarouselScene) drawMetadata(screen *ebiten.Image, palette Palette) {
	index := s.carouselSystem.Index()
	if index < 0 || index >= len(s.films) || s.bodyFont == nil {
		return
	}
	film := s.films[index]
	y := cardTop(s.height, s.cfg.ItemWidth) + s.cfg.ItemWidth + titleGap + metadataGap
	cx := float64(s.width) / 2

	if film.Rating > 0 {
		drawTextCentered(screen, fmt.Sprintf("★ %.1f", film.Rating), s.bodyFont, cx, y, palette.Accent)
		y += 20
	}

	lines := wrapText(film.Synopsis, float64(s.width)-40, synopsisMaxLines, faceMeasure(s.bodyFont))
	for _, line := range lines {
		drawTextCentered(screen, line, s.bodyFont, cx, y, palette.TextMuted)
		y += 18
	}

	if film.Trailer != "" {
		link := ellipsize(trailerText+film.Trailer, float64(s.width)-40, faceMeasure(s.bodyFont))
		drawTextCentered(screen, link, s.bodyFont, cx, y+6, palette.Accent)
	}
}

func (s *CarouselScene) drawNavButtons(screen *ebiten.Image, palette Palette) {
	prev, next := navButtonRects(s.width, s.height, s.cfg.ItemWidth)
	for _, b := range []struct {
		rect  image.Rectangle
		label string
	}{{prev, navPrevLabel}, {next, navNextLabel}} {
		r := float32(b.rect.Dx()) / 2
		cx := float32(b.rect.Min.X) + r
		cy := float32(b.rect.Min.Y) + r
		vector.DrawFilledCircle(screen, cx, cy, r, palette.NavButton, true)
		drawTextCentered(screen, b.label, s.navFont, float64(cx), float64(cy)-20, LightPalette.Background)
	}
}

func (s *CarouselScene) drawSpinner(screen *ebiten.Image, palette Palette) {
	cx, cy := float64(s.width)/2, float64(s.height)/2
	head := int(s.elapsedTime*spinnerDots) % spinnerDots
	for i := 0; i < spinnerDots; i++ {
		angle := 2 * math.Pi * float64(i) / spinnerDots
		clr := palette.Border
		if i == head {
			clr = palette.Accent
		}
		vector.DrawFilledCircle(screen,
			float32(cx+spinnerRadius*math.Cos(angle)),
			float32(cy+spinnerRadius*math.Sin(angle)),
			3, clr, true)
	}
	drawTextCentered(screen, loadingText, s.bodyFont, cx, cy+spinnerRadius+16, palette.TextMuted)
}

func (s *CarouselScene) drawBanner(screen *ebiten.Image, palette Palette) {
	r := bannerRect(s.width)
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), palette.Danger, true)
	message := offlineText
	if !s.degraded {
		message = emptyText
	}
	if s.loader != nil && s.loader.Loading() {
		message = loadingText
	}
	drawText(screen, message, s.bodyFont, float64(r.Min.X)+10, float64(r.Min.Y)+6, LightPalette.Background)
	drawText(screen, retryText, s.bodyFont, float64(r.Min.X)+10, float64(r.Min.Y)+24, LightPalette.Background)
}

// Resize 视口宽度变化时重新居中轮播
func (s *CarouselScene) Resize(width, height int) {
	s.width, s.height = width, height
	s.carouselSystem.Resize(float64(width))
}

// Teardown 停止弹簧动画并释放场景实体
func (s *CarouselScene) Teardown() {
	s.carouselSystem.Teardown()
	destroyAll[*components.CarouselComponent](s.entityManager)
}

// cardTop 海报顶部Y坐标：海报中心位于屏幕高度的 45%
func cardTop(height int, size float64) float64 {
	return float64(height)*0.45 - size/2
}

// navButtonRects 左右导航按钮的点击区域（直径为条目宽度的 1/3）
func navButtonRects(width, height int, itemWidth float64) (prev, next image.Rectangle) {
	d := int(itemWidth / 3)
	cy := int(float64(height) * 0.45)
	prev = image.Rect(navButtonInset, cy-d/2, navButtonInset+d, cy-d/2+d)
	next = image.Rect(width-navButtonInset-d, cy-d/2, width-navButtonInset, cy-d/2+d)
	return prev, next
}

// bannerRect 顶部提示条的区域
func bannerRect(width int) image.Rectangle {
	return image.Rect(0, 0, width, bannerHeight)
}

// posterInitial 海报占位图上显示的首字母
func posterInitial(title string) string {
	for _, r := range strings.TrimSpace(title) {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// ellipsize 截断超出宽度的标题并以 "..." 结尾
func ellipsize(s string, maxWidth float64, measure func(string) float64) string {
	if measure(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		candidate := strings.TrimRight(string(runes[:n]), " ") + "..."
		if measure(candidate) <= maxWidth {
			return candidate
		}
	}
	return "..."
}
