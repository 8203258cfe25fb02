package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/ardnew/dfprop/lang"
)

// Tree renders a resolved map as an indented tree.
type Tree struct {
	Resolve resolveFlags `embed:""`

	Path string `arg:"" help:"Logical document path." name:"path"`
}

// treeStyle holds the styles used by [Tree].
type treeStyle struct {
	root, key, value, null, enum lipgloss.Style
}

func newTreeStyle(r *lipgloss.Renderer) treeStyle {
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return treeStyle{
		root:  fg("5").Bold(true),
		key:   fg("6"),
		value: fg("2"),
		null:  fg("8").Italic(true),
		enum:  fg("8"),
	}
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m, err := t.Resolve.resolver().ReadMap(ctx, t.Path, t.Resolve.Env)
	if err != nil {
		return err
	}

	w := stdoutFrom(ctx)
	style := newTreeStyle(lipgloss.NewRenderer(w))

	root := tree.Root(style.root.Render(t.Path)).
		EnumeratorStyle(style.enum)

	addChildren(root, lang.MapOf(m), style)

	_, err = fmt.Fprintln(w, root.String())

	return err
}

// addChildren appends the entries or elements of v to node. Scalars render
// as "key = value" leaves; collections become subtrees.
func addChildren(node *tree.Tree, v *lang.Value, style treeStyle) {
	child := func(label string, e *lang.Value) {
		label = style.key.Render(label)

		switch lang.KindOf(e) {
		case lang.KindMap, lang.KindList:
			sub := tree.Root(label).EnumeratorStyle(style.enum)
			addChildren(sub, e, style)
			node.Child(sub)

		case lang.KindNull:
			node.Child(label + " = " + style.null.Render("null"))

		default:
			node.Child(label + " = " + style.value.Render(e.Str))
		}
	}

	switch lang.KindOf(v) {
	case lang.KindMap:
		for k, e := range v.Map.All() {
			child(k, e)
		}

	case lang.KindList:
		for i, e := range v.List {
			child("["+strconv.Itoa(i)+"]", e)
		}
	}
}
