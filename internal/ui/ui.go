// Package ui provides stderr-based status output and the terminal
// Gantt renderer. Status messages go to stderr so chart output on
// stdout stays pipeable.
package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/papapumpkin/gantry/internal/ansi"
)

type Printer struct{}

func New() *Printer {
	return &Printer{}
}

func (p *Printer) Banner() {
	fmt.Fprintln(os.Stderr, ansi.Bold+ansi.Cyan+"  ╔══════════════════════════════════╗"+ansi.Reset)
	fmt.Fprintln(os.Stderr, ansi.Bold+ansi.Cyan+"  ║"+ansi.Reset+ansi.Bold+"   GANTRY  "+ansi.Dim+"timeline scheduler"+ansi.Reset+ansi.Bold+ansi.Cyan+"    ║"+ansi.Reset)
	fmt.Fprintln(os.Stderr, ansi.Bold+ansi.Cyan+"  ╚══════════════════════════════════╝"+ansi.Reset)
	fmt.Fprintln(os.Stderr)
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(os.Stderr, ansi.Red+ansi.Bold+"error: "+ansi.Reset+"%s\n", msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(os.Stderr, ansi.Dim+"%s"+ansi.Reset+"\n", msg)
}

func (p *Printer) PlanLoaded(path string, taskCount int) {
	fmt.Fprintf(os.Stderr, ansi.Cyan+"◆ plan"+ansi.Reset+" %s "+ansi.Dim+"(%d task(s))"+ansi.Reset+"\n", path, taskCount)
}

func (p *Printer) PlanReloaded(path string) {
	fmt.Fprintf(os.Stderr, ansi.Dim+"plan changed, reloaded %s"+ansi.Reset+"\n", path)
}

// ValidateResult reports the outcome of a plan validation: either a
// clean bill or each detected dependency cycle on its own line.
func (p *Printer) ValidateResult(name string, taskCount int, cycles [][]string) {
	if len(cycles) == 0 {
		fmt.Fprintf(os.Stderr, ansi.Green+ansi.Bold+"✓ plan %q"+ansi.Reset+" — %d task(s), no cycles\n", name, taskCount)
		return
	}
	fmt.Fprintf(os.Stderr, ansi.Red+ansi.Bold+"✗ plan %q"+ansi.Reset+" — %d cycle(s) detected\n", name, len(cycles))
	for _, cycle := range cycles {
		fmt.Fprintf(os.Stderr, "  "+ansi.Yellow+"↻"+ansi.Reset+" %s\n", strings.Join(cycle, " → "))
	}
}

func (p *Printer) ImportDone(dbPath string, taskCount int) {
	fmt.Fprintf(os.Stderr, ansi.Green+"✓ imported"+ansi.Reset+" %d task(s) into %s\n", taskCount, dbPath)
}
