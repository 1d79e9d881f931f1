// Package items 加载轮播展示的影片列表。
//
// 数据源实现 [Source] 接口：[HTTPSource] 从后端接口读取，[FileSource] 读取
// 本地 YAML 列表，[FallbackSource] 在主数据源失败或返回空列表时换用备用列表，
// 并通过 [Result.Degraded] 告知界面当前显示的是离线数据。
//
// [Loader] 在后台 goroutine 中执行加载，帧循环通过 Poll 非阻塞地取回结果。
package items
