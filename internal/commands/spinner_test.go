package commands

import (
	"testing"
	"time"
)

func TestSpinnerStopOnceIsIdempotent(t *testing.T) {
	s := newSpinner("working")
	s.start()

	// Multiple stop paths must not double-close the channel.
	s.stopOnce()
	s.stopOnce()
	s.stopWithError()

	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("spinner goroutine did not exit")
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinner("idle")
	s.stopOnce()
	if !s.stopped {
		t.Error("spinner not marked stopped")
	}
}
