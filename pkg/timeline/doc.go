// Package timeline 提供基于单调时钟的动画阶段表和计时器调度器。
//
// Track 描述一段属性动画（起始时间、时长、起止值、缓动），Timeline 将同一属性的
// 多段 Track 串联起来，按经过的时间求值。Scheduler 是一个由帧驱动的计时器队列：
// 渲染循环每帧调用 Advance(dt)，到期的回调按到期时间顺序在同一线程内执行。
//
// 两者都不启动 goroutine，也不读取系统时间，因此测试可以精确地模拟时间。
package timeline
