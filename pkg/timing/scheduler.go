// Package timing 提供演示流程使用的虚拟时钟调度器
//
// 所有"异步"等待（固定延迟、打字效果的逐字间隔、自动翻页）都表示为
// 调度器上的回调。调度器由 Ebitengine 的 Update 循环按帧推进，
// 因此整个流程只在一个 goroutine 上运行，测试中可以精确地手动推进时间。
package timing

import (
	"container/heap"
	"log"
)

// TimerID 定时器标识，可用于取消
type TimerID uint64

// timer 单个待触发的回调
type timer struct {
	id  TimerID
	due float64 // 触发时刻（毫秒，虚拟时钟）
	seq uint64  // 插入序号，保证同一时刻的定时器按 FIFO 触发
	fn  func()
}

// timerQueue 按 (due, seq) 排序的最小堆
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(*timer)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// Scheduler 虚拟时钟调度器
//
// 注意事项:
//   - 非线程安全，只能在游戏主循环中使用（与 ResourceManager 相同的约束）
//   - 回调中可以继续调度新的定时器；若新定时器在本次 Update 的时间窗口内到期，会在同一次 Update 中触发
//   - 被取消的定时器永远不会触发
type Scheduler struct {
	now       float64
	queue     timerQueue
	cancelled map[TimerID]bool
	nextID    TimerID
	nextSeq   uint64
}

// NewScheduler 创建时钟从 0 开始的调度器
func NewScheduler() *Scheduler {
	return &Scheduler{
		cancelled: make(map[TimerID]bool),
	}
}

// Now 返回当前虚拟时间（毫秒）
func (s *Scheduler) Now() float64 {
	return s.now
}

// After 在 ms 毫秒后调用 fn
// 从不同步调用 fn。ms <= 0 时在当前时刻到期：在 Update 之外调度时于下一次 Update 触发，
// 在回调中调度时于同一次 Update 内触发
func (s *Scheduler) After(ms float64, fn func()) TimerID {
	if ms < 0 {
		ms = 0
	}
	s.nextID++
	s.nextSeq++
	heap.Push(&s.queue, &timer{
		id:  s.nextID,
		due: s.now + ms,
		seq: s.nextSeq,
		fn:  fn,
	})
	return s.nextID
}

// Cancel 取消尚未触发的定时器，对已触发或未知的 ID 无副作用
func (s *Scheduler) Cancel(id TimerID) {
	for _, t := range s.queue {
		if t.id == id {
			s.cancelled[id] = true
			return
		}
	}
}

// Pending 返回尚未触发（且未取消）的定时器数量
func (s *Scheduler) Pending() int {
	return len(s.queue) - len(s.cancelled)
}

// Clear 丢弃所有待触发的定时器，时钟不回拨
func (s *Scheduler) Clear() {
	if len(s.queue) > 0 {
		log.Printf("[Scheduler] Clearing %d pending timers", len(s.queue))
	}
	s.queue = nil
	s.cancelled = make(map[TimerID]bool)
}

// Update 推进虚拟时钟 dtMs 毫秒，并按到期顺序触发所有到期的定时器
// 每个回调执行时 Now() 等于它的到期时刻
func (s *Scheduler) Update(dtMs float64) {
	if dtMs < 0 {
		dtMs = 0
	}
	target := s.now + dtMs

	for len(s.queue) > 0 && s.queue[0].due <= target {
		t := heap.Pop(&s.queue).(*timer)
		if s.cancelled[t.id] {
			delete(s.cancelled, t.id)
			continue
		}
		if t.due > s.now {
			s.now = t.due
		}
		t.fn()
	}

	s.now = target
}
