// internal/printer/clock.go
package printer

import "time"

// Clock abstracts the settle-time sleeps the printer hardware requires
// between writes, so tests can substitute a fake and assert on the timing
// contracts instead of actually waiting.
type Clock interface {
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
