package schedule

import "time"

// Throttle paces remote calls to stay under the calendar service's rate
// limits. It is injected so tests run without real delays.
type Throttle interface {
	AfterDelete()
	AfterCreate()
}

// FixedThrottle sleeps a fixed duration after each remote call.
type FixedThrottle struct {
	DeleteWait time.Duration
	CreateWait time.Duration
}

func (t FixedThrottle) AfterDelete() { time.Sleep(t.DeleteWait) }
func (t FixedThrottle) AfterCreate() { time.Sleep(t.CreateWait) }

// NoThrottle disables pacing.
type NoThrottle struct{}

func (NoThrottle) AfterDelete() {}
func (NoThrottle) AfterCreate() {}
