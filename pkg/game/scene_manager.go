package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于按名称创建场景，避免 scenes 包与调用方循环依赖
type SceneFactory func() Scene

// SceneManager manages the app's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	currentName  string
	factories    map[string]SceneFactory
	width        int
	height       int
	logger       *log.Logger
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		factories: make(map[string]SceneFactory),
		logger:    log.WithPrefix("SceneManager"),
	}
}

// Register 注册场景工厂
func (sm *SceneManager) Register(name string, factory SceneFactory) {
	sm.factories[name] = factory
}

// Switch 按名称创建并切换到场景
func (sm *SceneManager) Switch(name string) error {
	factory, ok := sm.factories[name]
	if !ok {
		return fmt.Errorf("scene %q is not registered", name)
	}
	scene := factory()
	if scene == nil {
		return fmt.Errorf("scene factory %q returned nil", name)
	}
	sm.SwitchTo(scene)
	sm.currentName = name
	sm.logger.Info("switched scene", "scene", name)
	return nil
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene is torn down if it implements Teardowner.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if prev, ok := sm.currentScene.(Teardowner); ok && sm.currentScene != scene {
		prev.Teardown()
	}
	sm.currentScene = scene
	sm.currentName = ""
	if r, ok := scene.(Resizable); ok && sm.width > 0 && sm.height > 0 {
		r.Resize(sm.width, sm.height)
	}
}

// CurrentName 返回通过 Switch 切换的场景名称；SwitchTo 切换时为空
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// Resize 记录逻辑屏幕尺寸并通知当前场景（尺寸未变化时不通知）
func (sm *SceneManager) Resize(width, height int) {
	if width == sm.width && height == sm.height {
		return
	}
	sm.width, sm.height = width, height
	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(width, height)
	}
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}

// Teardown 卸载当前场景（程序退出时调用）
func (sm *SceneManager) Teardown() {
	if t, ok := sm.currentScene.(Teardowner); ok {
		t.Teardown()
	}
	sm.currentScene = nil
	sm.currentName = ""
}
