package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ThemeSettings 界面主题设置
type ThemeSettings struct {
	DarkMode bool `yaml:"darkMode"`
}

// DefaultSettings 返回默认设置（浅色主题）
func DefaultSettings() *ThemeSettings {
	return &ThemeSettings{DarkMode: false}
}

// SettingsManager 设置管理器
// 负责主题设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ThemeSettings
	logger       *log.Logger
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "theme"
)

// OpenStorage 打开 appName 对应的 gdata 存储
// 失败时返回 nil 和错误，调用方可以用 nil 进入降级模式
func OpenStorage(appName string) (*gdata.Manager, error) {
	if err := EnsureStorageDir(); err != nil {
		return nil, fmt.Errorf("failed to prepare storage dir: %w", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return manager, nil
}

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不是致命错误，使用默认设置并记录警告。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
		logger:       log.WithPrefix("SettingsManager"),
	}

	if err := sm.Load(); err != nil {
		sm.logger.Warn("failed to load settings, using defaults", "err", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或数据不存在，使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	var loaded ThemeSettings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = &loaded
	sm.logger.Debug("settings loaded", "darkMode", loaded.DarkMode)
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	sm.logger.Debug("settings saved", "darkMode", sm.settings.DarkMode)
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ThemeSettings {
	return sm.settings
}

// DarkMode 返回是否使用深色主题
func (sm *SettingsManager) DarkMode() bool {
	return sm.settings.DarkMode
}

// SetDarkMode 设置深色主题
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetDarkMode(enabled bool) {
	sm.settings.DarkMode = enabled
}

// ToggleDarkMode 切换主题并立即保存，返回切换后的值
// 保存失败只记录警告，内存中的设置仍然生效
func (sm *SettingsManager) ToggleDarkMode() bool {
	sm.settings.DarkMode = !sm.settings.DarkMode
	if err := sm.Save(); err != nil {
		sm.logger.Warn("failed to persist theme", "err", err)
	}
	return sm.settings.DarkMode
}
