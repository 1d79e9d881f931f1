// Package tui 在终端中驱动开场动画和影片轮播
//
// 与窗口端共用同一套核心系统；终端的字符格按 cellWidth×cellHeight 逻辑像素换算，
// 每个 tick 消息按与上一个 tick 的真实间隔推进一帧。
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/gonewx/cinereel/pkg/components"
	"github.com/gonewx/cinereel/pkg/config"
	"github.com/gonewx/cinereel/pkg/ecs"
	"github.com/gonewx/cinereel/pkg/game"
	"github.com/gonewx/cinereel/pkg/items"
	"github.com/gonewx/cinereel/pkg/systems"
	"github.com/gonewx/cinereel/pkg/utils"
)

// FrameRate 每秒 tick 次数
const FrameRate = 60

// 终端默认尺寸（收到 WindowSizeMsg 之前使用）
const (
	defaultCols = 80
	defaultRows = 24
)

// 字形在终端中的高度范围（字符行）
const (
	minGlyphRows = 3
	maxGlyphRows = 12
)

const (
	cardRows         = 7
	synopsisMaxWidth = 60
	synopsisMaxLines = 3
)

const (
	loadingText = "Carregando filmes..."
	offlineText = "Sem conexão. Mostrando sugestões offline. (r) tentar novamente"
	emptyText   = "Nenhum filme disponível. (r) tentar novamente"
	helpText    = "←/→ navegar  d tema  r recarregar  q sair"
	trailerText = "▶ Assistir trailer: "
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/FrameRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Options 终端模式的启动参数
type Options struct {
	// AppConfig 动画与轮播调参，nil 时使用默认值
	AppConfig *config.AppConfig
	// Loader 影片列表加载器，由调用方启动和停止，可为 nil
	Loader *items.Loader
	// Settings 主题设置，nil 时使用内存中的默认设置
	Settings *game.SettingsManager
	// SkipIntro 跳过开场动画
	SkipIntro bool
}

// Model 终端模式的 bubbletea 模型
type Model struct {
	ctx      context.Context
	cfg      *config.AppConfig
	intro    *systems.IntroRevealSystem
	carousel *systems.CarouselSystem
	loader   *items.Loader
	settings *game.SettingsManager
	logger   *log.Logger

	width, height int
	frames        int
	lastTick      time.Time
	handedOff     bool

	films    []components.Item
	loaded   bool
	degraded bool
	loadErr  error
}

// New 创建终端模型
func New(ctx context.Context, opts Options) (Model, error) {
	cfg := opts.AppConfig
	if cfg == nil {
		cfg = config.DefaultAppConfig()
	}
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	settings := opts.Settings
	if settings == nil {
		settings = game.NewSettingsManager(nil)
	}

	em := ecs.NewEntityManager()
	m := Model{
		ctx:       ctx,
		cfg:       cfg,
		intro:     systems.NewIntroRevealSystem(em, cfg.Intro, nil),
		carousel:  systems.NewCarouselSystem(em, cfg.Carousel, defaultCols*cellWidth),
		loader:    opts.Loader,
		settings:  settings,
		logger:    log.WithPrefix("TUI"),
		width:     defaultCols,
		height:    defaultRows,
		handedOff: opts.SkipIntro,
	}
	if m.handedOff {
		m.intro.Teardown()
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m = m.resize(msg.Width, msg.Height)
	case tickMsg:
		now := time.Time(msg)
		m = m.step(m.frameDelta(now))
		m.lastTick = now
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.intro.Teardown()
		m.carousel.Teardown()
		return m, tea.Quit
	case "d":
		dark := m.settings.ToggleDarkMode()
		m.logger.Debug("theme toggled", "darkMode", dark)
	}

	if !m.handedOff {
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		m.carousel.Advance(systems.DirectionPrev)
	case "right", "l":
		m.carousel.Advance(systems.DirectionNext)
	case "r":
		m.retry()
	}
	return m, nil
}

// resize 终端尺寸变化：首次尺寸即字形的测量结果，之后只影响轮播居中
func (m Model) resize(cols, rows int) Model {
	m.width, m.height = cols, rows
	if !m.handedOff {
		w, h := m.glyphBox()
		m.intro.Measure(w, h)
	}
	m.carousel.Resize(float64(cols) * cellWidth)
	return m
}

// glyphBox 字形在当前终端中的像素尺寸，宽高比取自配置
func (m Model) glyphBox() (width, height float64) {
	glyphRows := min(max(m.height/2, minGlyphRows), maxGlyphRows)
	height = float64(glyphRows) * cellHeight
	width = height * m.cfg.Intro.GlyphWidth / m.cfg.Intro.GlyphHeight
	return width, height
}

// frameDelta 距上一个 tick 的真实间隔（秒）
// 第一帧、时间戳缺失或时钟回退时按 FrameRate 计
func (m Model) frameDelta(now time.Time) float64 {
	if m.lastTick.IsZero() || now.IsZero() || !now.After(m.lastTick) {
		return 1.0 / FrameRate
	}
	return now.Sub(m.lastTick).Seconds()
}

// step 推进一帧
func (m Model) step(dt float64) Model {
	m.frames++

	if m.loader != nil {
		if result, ok := m.loader.Poll(); ok {
			m = m.applyResult(result)
		}
	}

	if !m.handedOff {
		m.intro.Update(dt)
		if m.intro.IsCompleted() {
			m.intro.Teardown()
			m.handedOff = true
			m.logger.Debug("intro handed off", "frames", m.frames)
		}
		return m
	}

	m.carousel.Update(dt)
	return m
}

// applyResult 两个数据源都失败时保留已显示的列表
func (m Model) applyResult(result items.Result) Model {
	m.loaded = true
	m.degraded = result.Degraded
	m.loadErr = result.Err
	if len(result.Items) == 0 {
		m.logger.Error("no films available", "err", result.Err)
		return m
	}
	m.films = result.Items
	m.carousel.SetItemCount(len(m.films))
	m.logger.Info("films loaded", "count", len(m.films), "degraded", m.degraded)
	return m
}

func (m Model) retry() {
	if m.loader == nil || m.loader.Loading() || (!m.degraded && m.loadErr == nil) {
		return
	}
	m.logger.Info("retrying film list")
	m.loader.Start(m.ctx)
}

// HandedOff 开场动画是否已交出控制权
func (m Model) HandedOff() bool {
	return m.handedOff
}

func (m Model) View() string {
	st := newStyles(m.settings.DarkMode())
	if !m.handedOff {
		return m.viewIntro(st)
	}
	return m.viewCarousel(st)
}

func (m Model) viewIntro(st styles) string {
	c := newCanvas(m.width, m.height)
	snap := m.intro.Snapshot()
	cx := float64(m.width) * cellWidth / 2
	cy := float64(m.height) * cellHeight / 2
	for _, seg := range glyphSegments(snap, cx, cy) {
		c.line(seg, '█')
	}
	return st.glyph.Render(c.String())
}

// glyphSegments 返回像素坐标系下可见的描边段，字形以 (cx, cy) 为中心按 ZoomScale 缩放
func glyphSegments(snap systems.IntroSnapshot, cx, cy float64) []utils.Segment {
	if !snap.Measured {
		return nil
	}
	geometry := snap.Geometry
	start, end, visible := utils.TraceSpan(snap.TraceOffset, geometry.TotalPathLength)
	if !visible {
		return nil
	}

	segments := utils.ClipPath(utils.GlyphPath(geometry), start, end)
	for i, seg := range segments {
		segments[i] = utils.Segment{
			From: utils.Point{X: cx + (seg.From.X-geometry.Width/2)*snap.ZoomScale, Y: cy + (seg.From.Y-geometry.Height/2)*snap.ZoomScale},
			To:   utils.Point{X: cx + (seg.To.X-geometry.Width/2)*snap.ZoomScale, Y: cy + (seg.To.Y-geometry.Height/2)*snap.ZoomScale},
		}
	}
	return segments
}

func (m Model) viewCarousel(st styles) string {
	var b strings.Builder
	b.WriteString(st.title.Render("cinereel"))
	b.WriteString("\n\n")

	switch {
	case len(m.films) > 0:
		b.WriteString(st.card.Render(m.cardBand()))
		b.WriteString("\n")
		b.WriteString(m.metadata(st))
	case !m.loaded || (m.loader != nil && m.loader.Loading()):
		frame := spinnerFrames[(m.frames/6)%len(spinnerFrames)]
		b.WriteString(st.dim.Render(frame + " " + loadingText))
	default:
		b.WriteString(st.dim.Render(emptyText))
	}
	b.WriteString("\n\n")

	if m.degraded && len(m.films) > 0 {
		b.WriteString(st.banner.Render(offlineText))
		b.WriteString("\n")
	}
	b.WriteString(st.dim.Render(helpText))
	return b.String()
}

// cardBand 绘制可见的卡片，聚焦的卡片下方带标记
func (m Model) cardBand() string {
	c := newCanvas(m.width, cardRows+1)
	cardCols := int(math.Round(m.cfg.Carousel.ItemWidth / cellWidth))
	focus := m.carousel.Index()

	first, last := m.carousel.VisibleRange()
	for i := first; i < last; i++ {
		col := int(math.Round(m.carousel.SlotX(i) / cellWidth))
		c.box(col, 0, cardCols, cardRows)

		film := m.films[i]
		inner := cardCols - 4
		initial := posterInitial(film.Key)
		c.text(col+cardCols/2, cardRows/2-1, initial)
		c.text(col+2, cardRows-2, truncate(film.Key, inner))

		if i == focus {
			for x := col + 1; x < col+cardCols-1; x++ {
				c.set(x, cardRows, '▔')
			}
		}
	}

	// 导航提示
	c.set(0, cardRows/2, '‹')
	c.set(m.width-1, cardRows/2, '›')
	return c.String()
}

func (m Model) metadata(st styles) string {
	focus := m.carousel.Index()
	if focus < 0 || focus >= len(m.films) {
		return ""
	}
	film := m.films[focus]

	var b strings.Builder
	b.WriteString(st.title.Render(film.Key))
	if film.Rating > 0 {
		b.WriteString("  ")
		b.WriteString(st.focused.Render(fmt.Sprintf("★ %.1f", film.Rating)))
	}
	if film.Synopsis != "" {
		width := max(min(m.width-2, synopsisMaxWidth), 10)
		wrapped := lipgloss.NewStyle().Width(width).Render(film.Synopsis)
		lines := strings.Split(wrapped, "\n")
		if len(lines) > synopsisMaxLines {
			lines = lines[:synopsisMaxLines]
			lines[synopsisMaxLines-1] = truncate(strings.TrimRight(lines[synopsisMaxLines-1], " ")+"...", width)
		}
		b.WriteString("\n")
		b.WriteString(st.body.Render(strings.Join(lines, "\n")))
	}
	if film.Trailer != "" {
		b.WriteString("\n")
		b.WriteString(st.focused.Render(truncate(trailerText+film.Trailer, max(m.width-2, 10))))
	}
	return b.String()
}

// posterInitial 海报占位：标题的首个字符
func posterInitial(title string) string {
	for _, r := range strings.TrimSpace(title) {
		return strings.ToUpper(string(r))
	}
	return "?"
}
