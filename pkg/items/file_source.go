package items

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/cinereel/pkg/components"
)

// filmList YAML 列表文件的结构
type filmList struct {
	Films []components.Item `yaml:"films"`
}

// FileSource 从 YAML 文件读取影片列表
//
// FS 为 nil 时从操作系统文件系统读取 Path；否则从 FS（例如内嵌资源）读取。
type FileSource struct {
	FS    fs.FS
	Path  string
	Limit int
}

// Load 读取并解析列表文件
func (s *FileSource) Load(ctx context.Context) ([]components.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	if s.FS != nil {
		data, err = fs.ReadFile(s.FS, s.Path)
	} else {
		data, err = os.ReadFile(s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read film list %s: %w", s.Path, err)
	}

	items, err := ParseFilmList(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse film list %s: %w", s.Path, err)
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return normalize(items, s.Limit), nil
}

// ParseFilmList 解析 YAML 格式的影片列表
func ParseFilmList(data []byte) ([]components.Item, error) {
	var list filmList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list.Films, nil
}
