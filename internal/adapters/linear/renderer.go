// Package linear provides a synchronous, line-oriented renderer for pipeline steps.
package linear

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/envy/internal/ui/output"
	"go.trai.ch/envy/internal/ui/style"
)

// Renderer implements ports.Renderer with chronological, prefixed lines.
type Renderer struct {
	out    io.Writer
	output *termenv.Output

	mu    sync.Mutex
	steps map[string]*stepState // spanID -> step state
}

type stepState struct {
	name      string
	startTime time.Time
}

// NewRenderer creates a Renderer writing to out. A nil out falls back to stderr.
func NewRenderer(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stderr
	}

	return &Renderer{
		out:    out,
		output: output.NewWithProfile(out, output.ColorProfileANSI),
		steps:  make(map[string]*stepState),
	}
}

// OnStepStart prints a step start message.
func (r *Renderer) OnStepStart(spanID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.steps[spanID] = &stepState{
		name:      name,
		startTime: startTime,
	}

	_, _ = fmt.Fprintf(r.out, "%s Starting...\n", r.prefix(name))
}

// OnStepComplete prints the completion status of a started step.
func (r *Renderer) OnStepComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, ok := r.steps[spanID]
	if !ok {
		return
	}
	delete(r.steps, spanID)

	duration := endTime.Sub(step.startTime).Round(time.Millisecond)

	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.out, "%s %s Failed after %v: %v\n",
			r.prefix(step.name), symbol, duration, err)
		return
	}

	symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
	_, _ = fmt.Fprintf(r.out, "%s %s Completed in %v\n",
		r.prefix(step.name), symbol, duration)
}

func (r *Renderer) prefix(name string) string {
	return r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
}
