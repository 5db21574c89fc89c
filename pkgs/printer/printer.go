// Package printer writes styled, human facing output.
package printer

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hay-kot/ellipsis/pkgs/styles"
)

// StatusListItem is a single line of a status list.
type StatusListItem struct {
	Ok     bool
	Status string
}

// Printer renders titles in bold and list entries in a subtle color.
type Printer struct {
	writer io.Writer
}

func New(w io.Writer) *Printer {
	return &Printer{writer: w}
}

// Ctx returns a copy of the printer writing to the context's writer, if one
// was set with WithWriter.
func (p *Printer) Ctx(ctx context.Context) *Printer {
	w, ok := GetWriter(ctx)
	if !ok {
		return p
	}

	cp := *p
	cp.writer = w
	return &cp
}

func (p *Printer) write(s string) {
	_, _ = io.WriteString(p.writer, s)
}

// FatalError renders err in an error box.
func (p *Printer) FatalError(err error) {
	p.write(styles.ErrorBox("Error", err.Error()) + "\n")
}

func (p *Printer) Title(title string) {
	p.write(styles.Bold(title) + "\n")
}

func (p *Printer) LineBreak() {
	p.write("\n")
}

// List prints title followed by one bullet per item.
func (p *Printer) List(title string, items []string) {
	var b strings.Builder

	b.WriteString(styles.Bold(title) + "\n")
	for _, item := range items {
		fmt.Fprintf(&b, " %s%s\n", styles.Dot, styles.Subtle(item))
	}

	p.write(b.String())
}

// StatusList prints title followed by a check or cross per item.
func (p *Printer) StatusList(title string, items []StatusListItem) {
	var b strings.Builder

	b.WriteString(styles.Bold(title) + "\n")
	for _, item := range items {
		mark := styles.Error(styles.Cross)
		if item.Ok {
			mark = styles.Success(styles.Check)
		}
		fmt.Fprintf(&b, "%s%s\n", mark, styles.Subtle(item.Status))
	}

	p.write(b.String())
}
