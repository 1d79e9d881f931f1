package scenes

import (
	"github.com/gonewx/cinereel/pkg/ecs"
	"github.com/gonewx/cinereel/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// 场景名称（SceneManager 注册用）
const (
	SceneIntro    = "intro"
	SceneCarousel = "carousel"
)

// destroyAll 删除所有拥有组件 T 的实体
// 场景卸载后不会再被绘制，系统之后读到的是缺省快照
func destroyAll[T any](em *ecs.EntityManager) {
	for _, id := range ecs.GetEntitiesWith1[T](em) {
		em.DestroyEntity(id)
	}
	em.RemoveMarkedEntities()
}
