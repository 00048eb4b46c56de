package decl

import (
	"fmt"
	"strings"
)

type CodePrinter interface {
	Indent(n int)
	Unindent(n int)
	Print(str string)
	Printf(fmt string, args ...any)
	Println(str string)
	String() string
}

func WithIndent(n int, cp CodePrinter, block func(cp CodePrinter)) {
	cp.Indent(n)
	defer cp.Unindent(n)
	block(cp)
}

type codePrinter struct {
	indent  int
	col     int
	builder strings.Builder
}

func (c *codePrinter) Indent(n int) {
	c.indent += n
}

func (c *codePrinter) Unindent(n int) {
	c.indent -= n
	if c.indent < 0 {
		c.indent = 0
	}
}

func (c *codePrinter) Print(str string) {
	lines := strings.Split(str, "\n")
	for idx, l := range lines {
		if c.col == 0 && l != "" {
			// new line has started so add the indent string
			c.builder.WriteString(c.IndentString())
		}
		c.builder.WriteString(l)
		c.col += len(l)
		if idx < len(lines)-1 {
			c.builder.WriteRune('\n')
			c.col = 0
		}
	}
}

func (c *codePrinter) Println(str string) {
	c.Print(str + "\n")
}

func (c *codePrinter) Printf(format string, args ...any) {
	c.Print(fmt.Sprintf(format, args...))
}

func (c *codePrinter) IndentString() string {
	return strings.Repeat("  ", c.indent)
}

func (c *codePrinter) String() string {
	return c.builder.String()
}

func NewCodePrinter() CodePrinter {
	return &codePrinter{}
}

// MaxLineWidth is the width beyond which PrettyPrint breaks a list over
// several lines.
const MaxLineWidth = 60

// PrettyPrint writes v to cp.  Lists that fit within MaxLineWidth are printed
// on one line, longer ones put the head on the first line and each remaining
// element on its own indented line.
func PrettyPrint(v Value, cp CodePrinter) {
	flat := v.String()
	items := v.Items()
	if v.Type != ListType || len(flat) <= MaxLineWidth || len(items) < 2 {
		cp.Print(flat)
		return
	}
	cp.Print("(")
	PrettyPrint(items[0], cp)
	WithIndent(1, cp, func(cp CodePrinter) {
		for _, item := range items[1:] {
			cp.Print("\n")
			PrettyPrint(item, cp)
		}
	})
	cp.Print(")")
}

// PPrint returns the pretty printed form of v.
func PPrint(v Value) string {
	cp := NewCodePrinter()
	PrettyPrint(v, cp)
	return cp.String()
}
