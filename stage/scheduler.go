package stage

import "time"

// TimerID identifies a task owned by a Scheduler. The zero value never refers
// to a live task.
type TimerID uint64

type task struct {
	id       TimerID
	due      time.Duration
	interval time.Duration
	periodic bool
	fn       func()
}

// Scheduler is a virtual-time task list. Nothing fires on its own; tasks run
// only from Advance, on the caller's goroutine.
type Scheduler struct {
	now   time.Duration
	next  TimerID
	tasks map[TimerID]*task
}

func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[TimerID]*task)}
}

// Now returns the scheduler's virtual clock.
func (s *Scheduler) Now() time.Duration {
	if s == nil {
		return 0
	}
	return s.now
}

// Every schedules fn to run each interval, first at now+interval.
func (s *Scheduler) Every(interval time.Duration, fn func()) TimerID {
	return s.add(interval, true, fn)
}

// After schedules fn to run once at now+delay.
func (s *Scheduler) After(delay time.Duration, fn func()) TimerID {
	return s.add(delay, false, fn)
}

func (s *Scheduler) add(d time.Duration, periodic bool, fn func()) TimerID {
	if s == nil || d <= 0 || fn == nil {
		return 0
	}
	if s.tasks == nil {
		s.tasks = make(map[TimerID]*task)
	}
	s.next++
	t := &task{
		id:       s.next,
		due:      s.now + d,
		interval: d,
		periodic: periodic,
		fn:       fn,
	}
	s.tasks[t.id] = t
	return t.id
}

// Cancel removes a task. It reports whether the task was still scheduled.
func (s *Scheduler) Cancel(id TimerID) bool {
	if s == nil || id == 0 {
		return false
	}
	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)
	return true
}

// CancelAll drops every scheduled task.
func (s *Scheduler) CancelAll() {
	if s == nil {
		return
	}
	for id := range s.tasks {
		delete(s.tasks, id)
	}
}

// Active reports whether id is still scheduled.
func (s *Scheduler) Active(id TimerID) bool {
	if s == nil || id == 0 {
		return false
	}
	_, ok := s.tasks[id]
	return ok
}

// Len returns the number of scheduled tasks.
func (s *Scheduler) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tasks)
}

// Advance moves the clock forward by dt and fires every task that falls due,
// earliest first (ties broken by creation order). The clock reads the task's
// due time while its callback runs, so work scheduled from a callback is
// anchored to that moment rather than to the end of the step.
func (s *Scheduler) Advance(dt time.Duration) {
	if s == nil || dt < 0 {
		return
	}
	target := s.now + dt
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.due
		if t.periodic {
			t.due += t.interval
		} else {
			delete(s.tasks, t.id)
		}
		t.fn()
	}
	s.now = target
}

func (s *Scheduler) nextDue(limit time.Duration) *task {
	var best *task
	for _, t := range s.tasks {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.id < best.id) {
			best = t
		}
	}
	return best
}
