// Package console is a small leveled logger with inline color markup.
//
// Messages may contain `$Style{text}` markup, nested freely:
//
//	console.Logger.Info("$Bold{$Green{wrote}} %s", path)
//
// Markup is rendered as ANSI escapes when the output is a terminal and
// stripped otherwise. Every message ends up on its own line.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

var styles = map[string]string{
	"Bold":    "\x1b[1m",
	"Dim":     "\x1b[2m",
	"Red":     "\x1b[31m",
	"Green":   "\x1b[32m",
	"Yellow":  "\x1b[33m",
	"Blue":    "\x1b[34m",
	"Magenta": "\x1b[35m",
	"Cyan":    "\x1b[36m",
}

const reset = "\x1b[0m"

// Logger is the process-wide logger.
var Logger = New(colorable.NewColorableStdout(), isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))

// Log writes markup-formatted messages to a writer.
type Log struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
	Quiet bool

	// DebugLevel > 0 enables Debug output.
	DebugLevel int
}

// New creates a Log writing to out.
func New(out io.Writer, color bool) *Log {
	return &Log{out: out, color: color}
}

// SetOutput replaces the destination writer and color mode.
func (l *Log) SetOutput(out io.Writer, color bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = out
	l.color = color
}

// Debug prints only when DebugLevel is positive.
func (l *Log) Debug(format string, args ...interface{}) {
	if l.DebugLevel <= 0 {
		return
	}
	l.print("$Dim{[debug]} "+format, args...)
}

// Info prints a normal message.
func (l *Log) Info(format string, args ...interface{}) {
	if l.Quiet {
		return
	}
	l.print(format, args...)
}

// Warn prints a yellow warning; it is shown even in quiet mode.
func (l *Log) Warn(format string, args ...interface{}) {
	l.print("$Bold{$Yellow{warning:}} "+format, args...)
}

// Error prints a red error.
func (l *Log) Error(format string, args ...interface{}) {
	l.print("$Bold{$Red{error:}} "+format, args...)
}

// Printf implements the Debugger interface used by the generator layers.
func (l *Log) Printf(format string, args ...interface{}) {
	l.Debug(format, args...)
}

func (l *Log) print(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := Render(format, l.color)
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, _ = io.WriteString(l.out, msg)
}

// Render expands markup in s. Unknown styles and unbalanced braces are left
// as literal text.
func Render(s string, color bool) string {
	var b strings.Builder
	var stack []string
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '$' {
			if name, n := styleAt(s[i+1:]); n > 0 {
				stack = append(stack, name)
				if color {
					b.WriteString(styles[name])
				}
				i += n
				continue
			}
		}
		if c == '}' && len(stack) > 0 {
			stack = stack[:len(stack)-1]
			if color {
				b.WriteString(reset)
				for _, name := range stack {
					b.WriteString(styles[name])
				}
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// styleAt returns the style name opening at the start of s and the number of
// bytes consumed ("Bold{" -> 5).
func styleAt(s string) (string, int) {
	idx := strings.IndexByte(s, '{')
	if idx <= 0 {
		return "", 0
	}
	name := s[:idx]
	if _, ok := styles[name]; !ok {
		return "", 0
	}
	return name, idx + 1
}
