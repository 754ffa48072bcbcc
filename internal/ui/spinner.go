package ui

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Growth is a seed sprouting into a grain head. The chat TUI and Thinking both use it.
var Growth = spinner.Spinner{
	Frames: []string{"🟤", "🌱", "🌿", "🌾"},
	FPS:    time.Second / 6,
}

// Thinking animates a status line on a terminal while an answer is produced.
// Stop it with Done; it also stops when its context ends.
type Thinking struct {
	out    io.Writer
	label  string
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// StartThinking starts drawing label on out.
func StartThinking(ctx context.Context, out io.Writer, label string) *Thinking {
	ctx, cancel := context.WithCancel(ctx)
	t := &Thinking{
		out:    out,
		label:  label,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go t.draw(ctx)
	return t
}

func (t *Thinking) draw(ctx context.Context) {
	defer close(t.done)
	tick := time.NewTicker(Growth.FPS)
	defer tick.Stop()

	started := time.Now()
	for frame := 0; ; frame++ {
		line := Growth.Frames[frame%len(Growth.Frames)] + " " + StyleSubtle.Render(t.label)
		if secs := int(time.Since(started).Seconds()); secs > 0 {
			line += StyleSubtle.Render(fmt.Sprintf(" %ds", secs))
		}
		_, _ = fmt.Fprint(t.out, "\r"+line)

		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}
	}
}

// Done stops the animation and clears the line. A non-empty msg is printed in its place.
// Calling Done again does nothing.
func (t *Thinking) Done(msg string) {
	t.once.Do(func() {
		t.cancel()
		<-t.done
		_, _ = fmt.Fprint(t.out, "\r\033[K")
		if msg != "" {
			_, _ = fmt.Fprintln(t.out, msg)
		}
	})
}
