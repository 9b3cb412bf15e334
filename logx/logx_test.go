package logx

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestLevelGating(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	SetLevel(Warn)
	Errorf("e %d", 1)
	Warnf("w")
	Infof("i")
	Tracef("t")

	out := buf.String()
	if !strings.Contains(out, "[ERROR] e 1") || !strings.Contains(out, "[WARN] w") {
		t.Fatalf("missing enabled lines: %q", out)
	}
	if strings.Contains(out, "[INFO]") || strings.Contains(out, "[TRACE]") {
		t.Fatalf("suppressed levels leaked: %q", out)
	}
}

func TestOffSilencesEverything(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(Off)
	Errorf("nope")
	if buf.Len() != 0 {
		t.Fatalf("Off should silence errors too: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"off": Off, "error": Error, "2": Warn, "info": Info, "4": Debug, "trace": Trace,
		"Debug": Debug, "WARN": Warn, "Trace": Trace,
	} {
		got, ok := ParseLevel(in)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v %v", in, got, ok)
		}
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Fatal("unknown level should not parse")
	}
}

func TestSetLevelClamps(t *testing.T) {
	SetLevel(Level(99))
	if Current() != Trace {
		t.Fatalf("Current = %v, want Trace", Current())
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// The worker goroutine logs while the bootstrap is still swapping the
// output; the race detector flags any unguarded access.
func TestSetOutputDuringLogging(t *testing.T) {
	SetLevel(Trace)
	defer SetLevel(Warn)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				Debugf("tick %d", 1)
			}
		}
	}()
	for i := 0; i < 100; i++ {
		SetOutput(&lockedBuffer{})
	}
	close(stop)
	wg.Wait()
}
