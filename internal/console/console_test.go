package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	t.Run("strips markup without color", func(t *testing.T) {
		assert.Equal(t, "wrote types.ts", Render("$Bold{$Green{wrote}} types.ts", false))
	})

	t.Run("emits escapes with color", func(t *testing.T) {
		out := Render("$Red{x}", true)
		assert.Equal(t, "\x1b[31mx\x1b[0m", out)
	})

	t.Run("restores outer style after nested close", func(t *testing.T) {
		out := Render("$Bold{a$Red{b}c}", true)
		assert.Equal(t, "\x1b[1ma\x1b[31mb\x1b[0m\x1b[1mc\x1b[0m", out)
	})

	t.Run("leaves unknown styles and stray braces", func(t *testing.T) {
		assert.Equal(t, "$Nope{x} {y}", Render("$Nope{x} {y}", false))
		assert.Equal(t, "cost $5", Render("cost $5", false))
	})
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Debug("hidden %d\n", 1)
	assert.Empty(t, buf.String())

	l.DebugLevel = 1
	l.Debug("shown %d\n", 2)
	assert.Equal(t, "[debug] shown 2\n", buf.String())

	buf.Reset()
	l.Quiet = true
	l.Info("info\n")
	l.Warn("careful %s\n", "now")
	assert.Equal(t, "warning: careful now\n", buf.String())

	buf.Reset()
	l.Printf("via %s", "printf")
	assert.Equal(t, "[debug] via printf\n", buf.String())
}

func TestLogLineBreaks(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Warn("unsupported-variant %q: %s", "#/a", "x")
	l.Warn("catch-all %q: %s", "#/b", "y")
	l.Info("$Green{converted} %s: %d models", "api.yaml", 3)

	assert.Equal(t, []string{
		`warning: unsupported-variant "#/a": x`,
		`warning: catch-all "#/b": y`,
		"converted api.yaml: 3 models",
		"",
	}, strings.Split(buf.String(), "\n"))

	t.Run("existing newline is not doubled", func(t *testing.T) {
		buf.Reset()
		l.Info("done\n")
		assert.Equal(t, "done\n", buf.String())
	})
}
