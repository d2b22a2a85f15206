package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/fieldblob/blob"
)

var (
	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// RenderOptions controls Render and Lines.
type RenderOptions struct {
	// Names maps hashed names back to their source strings.
	Names map[uint32]string
	// Indent is the per-level prefix; two spaces when empty.
	Indent string
	// Color styles names, types and values with lipgloss.
	Color bool
}

// Render writes one line per node to w.
func Render(w io.Writer, nodes []Node, opts RenderOptions) error {
	for _, line := range Lines(nodes, opts) {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Lines returns the rendered tree, one entry per node.
func Lines(nodes []Node, opts RenderOptions) []string {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	r := renderer{opts: opts}
	for i := range nodes {
		r.node(0, fmt.Sprintf("[%d]", i), &nodes[i], true)
	}
	return r.lines
}

type renderer struct {
	opts  RenderOptions
	lines []string
}

func (r *renderer) style(s lipgloss.Style, text string) string {
	if !r.opts.Color {
		return text
	}
	return s.Render(text)
}

func (r *renderer) node(depth int, label string, n *Node, index bool) {
	var b strings.Builder
	b.WriteString(strings.Repeat(r.opts.Indent, depth))
	if index {
		b.WriteString(r.style(indexStyle, label))
	} else {
		b.WriteString(r.style(nameStyle, label))
	}
	b.WriteString(" ")
	b.WriteString(r.style(typeStyle, typeLabel(n)))

	switch n.Type {
	case blob.TypeGenericObject, blob.TypeRuntimeObject:
		r.lines = append(r.lines, b.String())
		for i := range n.Fields {
			r.node(depth+1, Key(n.Fields[i].Name, r.opts.Names), &n.Fields[i], false)
		}
		return
	case blob.TypePrototype:
		r.lines = append(r.lines, b.String())
		for _, f := range n.Fields {
			r.lines = append(r.lines, strings.Repeat(r.opts.Indent, depth+1)+
				r.style(nameStyle, Key(f.Name, r.opts.Names))+" "+r.style(typeStyle, f.Type.String()))
		}
		return
	case blob.TypeArray:
		if n.IsString() {
			b.WriteString(" = ")
			b.WriteString(r.style(valueStyle, fmt.Sprintf("%q", n.Value)))
			r.lines = append(r.lines, b.String())
			return
		}
		r.lines = append(r.lines, b.String())
		for i := range n.Items {
			r.node(depth+1, fmt.Sprintf("[%d]", i), &n.Items[i], true)
		}
		return
	case blob.TypeNull:
		r.lines = append(r.lines, b.String())
		return
	}
	b.WriteString(" = ")
	b.WriteString(r.style(valueStyle, fmt.Sprint(n.Value)))
	r.lines = append(r.lines, b.String())
}

func typeLabel(n *Node) string {
	switch n.Type {
	case blob.TypeArray:
		if n.IsString() {
			return "string"
		}
		return fmt.Sprintf("array<%s>[%d]", n.ItemType, len(n.Items))
	case blob.TypeGenericObject, blob.TypeRuntimeObject, blob.TypePrototype:
		return fmt.Sprintf("%s{%d}", n.Type, len(n.Fields))
	}
	return n.Type.String()
}
