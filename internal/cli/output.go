package cli

import (
	"fmt"
	"io"
	"os"
)

// console prints the status lines around a report. Reports themselves are
// written undecorated to the command's stdout.
type console struct {
	stdout  io.Writer
	stderr  io.Writer
	color   bool
	unicode bool
	quiet   bool
}

// con is replaced by setup once flags are parsed.
var con = console{stdout: os.Stdout, stderr: os.Stderr, color: true, unicode: true}

func (c console) paint(code, s string) string {
	if !c.color {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

func (c console) glyph(unicode, ascii string) string {
	if c.unicode {
		return unicode
	}
	return ascii
}

func (c console) line(w io.Writer, code, glyph, msg string) {
	fmt.Fprintf(w, "%s  %s\n", c.paint(code, glyph), msg)
}

// done reports a completed action, e.g. a report file written.
func (c console) done(msg string) {
	if !c.quiet {
		c.line(c.stdout, "0;32", c.glyph("✓", "OK"), msg)
	}
}

// progress reports a long-running action starting.
func (c console) progress(msg string) {
	if !c.quiet {
		c.line(c.stdout, "0;90", c.glyph("→", ">"), msg)
	}
}

// fail goes to stderr and ignores --quiet.
func (c console) fail(msg string) {
	c.line(c.stderr, "0;31", c.glyph("x", "ERR"), msg)
}

// field prints an indented "Key: value" line; an empty key continues the
// previous field.
func (c console) field(key, value string) {
	if key == "" {
		fmt.Fprintf(c.stdout, "  %s\n", value)
		return
	}
	fmt.Fprintf(c.stdout, "  %s %s\n", c.paint("1", key+":"), value)
}
