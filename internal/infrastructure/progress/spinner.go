package progress

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"

	"JSMChanges/internal/ports"
)

// unicode dots; ascii fallback is set 9.
const (
	unicodeCharSet = 14
	asciiCharSet   = 9
)

// Spinner is the console progress indicator.
type Spinner struct {
	s *spinner.Spinner
}

var _ ports.Progress = (*Spinner)(nil)

// NewConsole returns a spinner on w when w is a terminal, otherwise a no-op.
func NewConsole(w io.Writer) ports.Progress {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return Noop{}
	}

	charSet := unicodeCharSet
	if os.Getenv("JSM_ASCII") == "1" {
		charSet = asciiCharSet
	}
	return &Spinner{
		s: spinner.New(spinner.CharSets[charSet], 100*time.Millisecond, spinner.WithWriter(f)),
	}
}

// Start shows the spinner with message.
func (p *Spinner) Start(message string) {
	p.setSuffix(message)
	p.s.Start()
}

// Update replaces the message.
func (p *Spinner) Update(message string) {
	p.setSuffix(message)
}

// Stop clears the spinner line.
func (p *Spinner) Stop() {
	p.s.Stop()
}

func (p *Spinner) setSuffix(message string) {
	p.s.Lock()
	p.s.Suffix = " " + message
	p.s.Unlock()
}

// Noop satisfies ports.Progress when output is not interactive.
type Noop struct{}

func (Noop) Start(string) {}
func (Noop) Update(string) {}
func (Noop) Stop() {}
