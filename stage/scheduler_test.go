package stage

import (
	"testing"
	"time"
)

func TestSchedulerEveryFireCounts(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		steps    []time.Duration
		want     int
	}{
		{name: "exact multiples", interval: 100 * time.Millisecond, steps: []time.Duration{100 * time.Millisecond, 100 * time.Millisecond}, want: 2},
		{name: "one big step", interval: 200 * time.Millisecond, steps: []time.Duration{time.Second}, want: 5},
		{name: "uneven steps", interval: 200 * time.Millisecond, steps: []time.Duration{150 * time.Millisecond, 60 * time.Millisecond, 190 * time.Millisecond, 5 * time.Millisecond}, want: 2},
		{name: "not yet due", interval: time.Second, steps: []time.Duration{999 * time.Millisecond}, want: 0},
		{name: "frame sized steps", interval: 20 * time.Millisecond, steps: repeat(time.Second/60, 61), want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler()
			n := 0
			s.Every(tt.interval, func() { n++ })
			for _, dt := range tt.steps {
				s.Advance(dt)
			}
			if n != tt.want {
				t.Fatalf("fired %d times, want %d", n, tt.want)
			}
		})
	}
}

func TestSchedulerAfterFiresOnce(t *testing.T) {
	s := NewScheduler()
	n := 0
	id := s.After(time.Second, func() { n++ })
	s.Advance(500 * time.Millisecond)
	if n != 0 || !s.Active(id) {
		t.Fatalf("fired early: n=%d active=%v", n, s.Active(id))
	}
	s.Advance(5 * time.Second)
	if n != 1 {
		t.Fatalf("fired %d times, want 1", n)
	}
	if s.Active(id) || s.Len() != 0 {
		t.Fatalf("one-shot task still scheduled")
	}
}

func TestSchedulerOrderAndClock(t *testing.T) {
	s := NewScheduler()
	var got []string
	var at []time.Duration
	s.After(300*time.Millisecond, func() { got = append(got, "c"); at = append(at, s.Now()) })
	s.After(100*time.Millisecond, func() { got = append(got, "a"); at = append(at, s.Now()) })
	s.After(100*time.Millisecond, func() { got = append(got, "b"); at = append(at, s.Now()) })
	s.Advance(time.Second)

	want := []string{"a", "b", "c"}
	wantAt := []time.Duration{100 * time.Millisecond, 100 * time.Millisecond, 300 * time.Millisecond}
	for i := range want {
		if got[i] != want[i] || at[i] != wantAt[i] {
			t.Fatalf("fire %d = %s@%s, want %s@%s", i, got[i], at[i], want[i], wantAt[i])
		}
	}
	if s.Now() != time.Second {
		t.Fatalf("Now() = %s, want 1s", s.Now())
	}
}

func TestSchedulerCancelFromCallback(t *testing.T) {
	t.Run("self", func(t *testing.T) {
		s := NewScheduler()
		n := 0
		var id TimerID
		id = s.Every(100*time.Millisecond, func() {
			n++
			if n == 3 {
				s.Cancel(id)
			}
		})
		s.Advance(time.Second)
		if n != 3 {
			t.Fatalf("fired %d times, want 3", n)
		}
	})

	t.Run("other due in same step", func(t *testing.T) {
		s := NewScheduler()
		fired := false
		var victim TimerID
		s.After(100*time.Millisecond, func() { s.Cancel(victim) })
		victim = s.After(200*time.Millisecond, func() { fired = true })
		s.Advance(time.Second)
		if fired {
			t.Fatalf("cancelled task fired")
		}
	})

	t.Run("schedule from callback", func(t *testing.T) {
		s := NewScheduler()
		var at time.Duration
		s.After(100*time.Millisecond, func() {
			s.After(100*time.Millisecond, func() { at = s.Now() })
		})
		s.Advance(time.Second)
		if at != 200*time.Millisecond {
			t.Fatalf("nested task fired at %s, want 200ms", at)
		}
	})

	t.Run("cancel all", func(t *testing.T) {
		s := NewScheduler()
		n := 0
		s.Every(100*time.Millisecond, func() { n++ })
		s.Every(100*time.Millisecond, func() {
			n++
			s.CancelAll()
		})
		s.Advance(time.Second)
		if n != 2 || s.Len() != 0 {
			t.Fatalf("n=%d len=%d, want 2 and 0", n, s.Len())
		}
	})
}

func TestSchedulerRejectsBadInput(t *testing.T) {
	s := NewScheduler()
	if id := s.Every(0, func() {}); id != 0 {
		t.Fatalf("zero interval scheduled %d", id)
	}
	if id := s.After(-time.Second, func() {}); id != 0 {
		t.Fatalf("negative delay scheduled %d", id)
	}
	if id := s.Every(time.Second, nil); id != 0 {
		t.Fatalf("nil fn scheduled %d", id)
	}
	if s.Cancel(0) || s.Cancel(42) {
		t.Fatalf("Cancel of unknown id reported true")
	}

	var nilSched *Scheduler
	nilSched.Advance(time.Second)
	if nilSched.Len() != 0 || nilSched.Every(time.Second, func() {}) != 0 {
		t.Fatalf("nil scheduler should be inert")
	}
}

func repeat(d time.Duration, n int) []time.Duration {
	out := make([]time.Duration, n)
	for i := range out {
		out[i] = d
	}
	return out
}
