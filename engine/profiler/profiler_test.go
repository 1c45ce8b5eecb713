package profiler

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time { return c.t }

func (c *stepClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestProfilerLogsOncePerInterval(t *testing.T) {
	clock := &stepClock{t: time.Unix(100, 0)}
	var buf bytes.Buffer
	p := NewProfiler(WithInterval(100*time.Millisecond), WithLogger(log.New(&buf, "", 0)), WithClock(clock.now))

	frames := []time.Duration{10 * time.Millisecond, 30 * time.Millisecond, 20 * time.Millisecond, 20 * time.Millisecond}
	for i, d := range frames {
		clock.advance(d)
		if p.Tick() {
			t.Fatalf("frame %d logged before the interval elapsed", i)
		}
	}
	if buf.Len() != 0 {
		t.Fatalf("unexpected output %q", buf.String())
	}

	clock.advance(40 * time.Millisecond)
	if !p.Tick() {
		t.Fatalf("expected a log line after 120ms")
	}

	out := buf.String()
	if !strings.HasPrefix(out, "[Profiler] FPS: ") || !strings.Contains(out, "frame: 10.00ms min, 40.00ms max") {
		t.Fatalf("unexpected log line %q", out)
	}

	stats := p.Last()
	if stats.Frames != 5 || stats.MinFrame != 10*time.Millisecond || stats.MaxFrame != 40*time.Millisecond {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if fps := stats.FPS; fps < 41.6 || fps > 41.7 {
		t.Fatalf("expected ~41.67 FPS, got %v", fps)
	}
}

func TestProfilerResetsAfterLogging(t *testing.T) {
	clock := &stepClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithInterval(time.Second), WithLogger(log.New(&bytes.Buffer{}, "", 0)), WithClock(clock.now))

	clock.advance(time.Second)
	if !p.Tick() {
		t.Fatalf("expected first interval to log")
	}

	clock.advance(5 * time.Millisecond)
	p.Tick()
	clock.advance(995 * time.Millisecond)
	if !p.Tick() {
		t.Fatalf("expected second interval to log")
	}
	stats := p.Last()
	if stats.Frames != 2 || stats.MinFrame != 5*time.Millisecond || stats.MaxFrame != 995*time.Millisecond {
		t.Fatalf("frame counters not reset: %+v", stats)
	}
}

func TestProfilerOptionsIgnoreInvalid(t *testing.T) {
	p := NewProfiler(WithInterval(-1), WithLogger(nil), WithClock(nil))
	if p.updateInterval != time.Second || p.logger == nil || p.now == nil {
		t.Fatalf("invalid options must keep defaults: %+v", p)
	}
}
