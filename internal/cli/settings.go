package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gonewx/cinereel/pkg/config"
	"github.com/gonewx/cinereel/pkg/embedded"
	"github.com/gonewx/cinereel/pkg/game"
	"github.com/gonewx/cinereel/pkg/items"
)

// EnvPrefix 环境变量前缀，例如 CINEREEL_ITEMS_URL
const EnvPrefix = "CINEREEL"

// DefaultItemsURL 影片后端的默认地址
const DefaultItemsURL = "http://localhost:3000"

// Settings 运行时设置
// 取值顺序：命令行参数 > CINEREEL_* 环境变量 > 默认值
type Settings struct {
	ItemsURL  string `mapstructure:"items_url"`
	ItemsFile string `mapstructure:"items_file"`
	Config    string `mapstructure:"config"`
	DarkMode  bool   `mapstructure:"dark_mode"`
	Width     int    `mapstructure:"width"`
	Height    int    `mapstructure:"height"`
	SkipIntro bool   `mapstructure:"skip_intro"`
	Verbose   bool   `mapstructure:"verbose"`

	// darkModeSet 是否显式指定了 dark_mode；未指定时沿用已保存的主题
	darkModeSet bool
}

// addSettingsFlags 注册所有命令共用的参数
func addSettingsFlags(flags *pflag.FlagSet) {
	flags.String("items-url", DefaultItemsURL, "film API base URL (empty disables the API)")
	flags.String("items-file", "", "YAML film list used when the API is unavailable (default: embedded list)")
	flags.String("config", "", "tuning config file (default: embedded data/cinereel.yaml)")
	flags.Bool("dark-mode", false, "use the dark theme")
	flags.Int("width", 0, "window width (default: from config)")
	flags.Int("height", 0, "window height (default: from config)")
	flags.Bool("skip-intro", false, "start directly on the carousel")
	flags.BoolP("verbose", "v", false, "enable verbose logging")
}

// newViper 创建绑定了参数和环境变量的 viper 实例
func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// dark_mode 不设默认值，IsSet 据此区分"未指定"和"显式关闭"
	v.SetDefault("items_url", DefaultItemsURL)
	v.SetDefault("items_file", "")
	v.SetDefault("config", "")
	v.SetDefault("width", 0)
	v.SetDefault("height", 0)
	v.SetDefault("skip_intro", false)
	v.SetDefault("verbose", false)

	for _, name := range []string{"items-url", "items-file", "config", "dark-mode", "width", "height", "skip-intro", "verbose"} {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return v, nil
}

// loadSettings 从 viper 读取设置
func loadSettings(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	s.darkModeSet = v.IsSet("dark_mode")
	return s, nil
}

// appConfig 加载调参配置：指定了文件时读文件，否则读内嵌配置，都没有时使用默认值
func (s Settings) appConfig() (*config.AppConfig, error) {
	var cfg *config.AppConfig
	switch {
	case s.Config != "":
		loaded, err := config.LoadAppConfig(s.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case embedded.Exists(embedded.AppConfigPath):
		data, err := embedded.ReadFile(embedded.AppConfigPath)
		if err != nil {
			return nil, err
		}
		parsed, err := config.ParseAppConfig(data)
		if err != nil {
			return nil, err
		}
		cfg = parsed
	default:
		cfg = config.DefaultAppConfig()
	}

	if s.Width > 0 {
		cfg.Window.Width = s.Width
	}
	if s.Height > 0 {
		cfg.Window.Height = s.Height
	}
	return cfg, cfg.Validate()
}

// source 组装影片数据源：API 优先，失败时退回到列表文件
func (s Settings) source() *items.FallbackSource {
	var primary items.Source
	if s.ItemsURL != "" {
		primary = items.NewHTTPSource(s.ItemsURL)
	}

	var fallback items.Source
	switch {
	case s.ItemsFile != "":
		fallback = &items.FileSource{Path: s.ItemsFile}
	case embedded.Exists(embedded.FilmListPath):
		fallback = &items.FileSource{FS: embedded.FS(), Path: embedded.FilmListPath}
	}
	return items.NewFallbackSource(primary, fallback)
}

// themeSettings 打开主题存储；存储不可用时退化为内存设置
// 显式指定的 dark_mode 会覆盖已保存的值，但不写回存储
func (s Settings) themeSettings(storageName string, logger *log.Logger) *game.SettingsManager {
	var storage *gdata.Manager
	if storageName != "" {
		opened, err := game.OpenStorage(storageName)
		if err != nil {
			logger.Warn("settings storage unavailable, theme will not persist", "err", err)
		}
		storage = opened
	}
	sm := game.NewSettingsManager(storage)
	if s.darkModeSet {
		sm.SetDarkMode(s.DarkMode)
	}
	return sm
}
