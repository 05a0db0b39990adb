package timing

import (
	"reflect"
	"testing"
)

// TestSchedulerFiresInDueOrder 测试定时器按到期顺序触发，同一时刻按插入顺序
func TestSchedulerFiresInDueOrder(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.After(300, func() { order = append(order, "c") })
	s.After(100, func() { order = append(order, "a") })
	s.After(100, func() { order = append(order, "b") })

	s.Update(50)
	if len(order) != 0 {
		t.Fatalf("no timer should fire before 100ms, got %v", order)
	}

	s.Update(1000)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if s.Now() != 1050 {
		t.Errorf("Now() = %v, want 1050", s.Now())
	}
}

// TestSchedulerNowInsideCallback 测试回调执行时 Now() 等于到期时刻
func TestSchedulerNowInsideCallback(t *testing.T) {
	s := NewScheduler()
	var seen float64

	s.After(250, func() { seen = s.Now() })
	s.Update(1000)

	if seen != 250 {
		t.Errorf("Now() inside callback = %v, want 250", seen)
	}
}

// TestSchedulerChainedTimers 测试回调中调度的定时器在同一次 Update 内触发
func TestSchedulerChainedTimers(t *testing.T) {
	s := NewScheduler()
	var fired []float64

	s.After(100, func() {
		fired = append(fired, s.Now())
		s.After(100, func() {
			fired = append(fired, s.Now())
		})
	})

	s.Update(150)
	if len(fired) != 1 {
		t.Fatalf("after 150ms fired = %v, want one entry", fired)
	}

	s.Update(50)
	want := []float64{100, 200}
	if !reflect.DeepEqual(fired, want) {
		t.Errorf("fired = %v, want %v", fired, want)
	}
}

// TestSchedulerZeroDelayIsDeferred 测试零延迟不会同步执行
func TestSchedulerZeroDelayIsDeferred(t *testing.T) {
	s := NewScheduler()
	called := false

	s.After(0, func() { called = true })
	if called {
		t.Fatal("After(0) must not call fn synchronously")
	}

	s.Update(0)
	if !called {
		t.Error("After(0) should fire on the next Update")
	}
}

// TestSchedulerZeroDelayInCallback 回调中零延迟调度在同一次 Update 内触发，且排在当前回调之后
func TestSchedulerZeroDelayInCallback(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.After(10, func() {
		s.After(0, func() { order = append(order, "inner") })
		order = append(order, "outer")
	})
	s.Update(10)

	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("order = %v, want [outer inner]", order)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
}

// TestSchedulerCancel 测试取消
func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	called := false

	id := s.After(100, func() { called = true })
	s.After(200, func() {})

	s.Cancel(id)
	if got := s.Pending(); got != 1 {
		t.Errorf("Pending() = %d, want 1", got)
	}

	s.Update(500)
	if called {
		t.Error("cancelled timer fired")
	}
	if got := s.Pending(); got != 0 {
		t.Errorf("Pending() after Update = %d, want 0", got)
	}

	// 取消未知 ID 不应影响计数
	s.Cancel(9999)
	if got := s.Pending(); got != 0 {
		t.Errorf("Pending() after unknown cancel = %d, want 0", got)
	}
}

// TestSchedulerClear 测试清空
func TestSchedulerClear(t *testing.T) {
	s := NewScheduler()
	count := 0
	for i := 0; i < 5; i++ {
		s.After(float64(i*10), func() { count++ })
	}

	s.Update(15)
	s.Clear()
	s.Update(1000)

	if count != 2 {
		t.Errorf("count = %d, want 2 (timers at 0 and 10 only)", count)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
}
