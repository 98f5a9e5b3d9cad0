package shapz

import (
	"fmt"
	"time"

	"github.com/zoobzio/clockz"
)

// Pad2 left-pads a non-negative integer with a zero to at least two digits.
// Values of 10 or more are returned undecorated.
func Pad2(n int) string {
	if n >= 0 && n < 10 {
		return fmt.Sprintf("0%d", n)
	}
	return fmt.Sprintf("%d", n)
}

// Datestamp formats t as "YYYY-MM-DD" with zero-padded month and day.
func Datestamp(t time.Time) string {
	return fmt.Sprintf("%04d-%s-%s", t.Year(), Pad2(int(t.Month())), Pad2(t.Day()))
}

// Timestamp formats t as "YYYY-MM-DD hh:mm:ss" with zero-padded components.
func Timestamp(t time.Time) string {
	return fmt.Sprintf("%s %s:%s:%s", Datestamp(t),
		Pad2(t.Hour()), Pad2(t.Minute()), Pad2(t.Second()))
}

// Stamper produces datestamps for the current moment. The clock defaults to
// the real clock; inject a fake clock in tests for deterministic output.
type Stamper struct {
	clock clockz.Clock
}

// NewStamper creates a Stamper using the real clock.
func NewStamper() *Stamper {
	return &Stamper{}
}

// WithClock sets a custom clock for testing.
func (s *Stamper) WithClock(clock clockz.Clock) *Stamper {
	s.clock = clock
	return s
}

// getClock returns the clock to use.
func (s *Stamper) getClock() clockz.Clock {
	if s.clock == nil {
		return clockz.RealClock
	}
	return s.clock
}

// Datestamp returns "YYYY-MM-DD" for the clock's current time.
func (s *Stamper) Datestamp() string {
	return Datestamp(s.getClock().Now())
}

// Timestamp returns "YYYY-MM-DD hh:mm:ss" for the clock's current time.
func (s *Stamper) Timestamp() string {
	return Timestamp(s.getClock().Now())
}
