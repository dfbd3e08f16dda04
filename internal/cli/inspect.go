package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inklab/inkdoc/pkg/document"
)

// newInspectCmd creates the inspect command.
func newInspectCmd() *cobra.Command {
	var effective bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a document file",
		Long: `Inspect prints a document's metadata and layer tree.

With --effective, each node shows its effective visibility, opacity and
lock state as inherited through its enclosing groups rather than the
values stored on the node itself.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			logger.Debug("loaded document", "id", doc.ID, "nodes", doc.Stack().Len())

			printKeyValue("Name", doc.Name)
			printKeyValue("ID", doc.ID)
			printKeyValue("Canvas", fmt.Sprintf("%dx%d", doc.Width, doc.Height))
			printKeyValue("Schema", fmt.Sprintf("v%d", doc.Version))
			fmt.Println()

			stack := doc.Stack()
			var groups, effects int
			for _, n := range stack.Nodes() {
				if n.IsGroup() {
					groups++
				}
				effects += len(n.Effects)
			}

			printTree(stack, "", 0, effective)
			fmt.Println()
			printStats(stack.Len()-groups, groups, effects)
			return nil
		},
	}

	cmd.Flags().BoolVar(&effective, "effective", false, "show inherited visibility, opacity and lock state")
	return cmd
}

// printTree prints the children of parentID recursively, topmost layer
// first to match the panel ordering users see in the editor.
func printTree(s *document.Stack, parentID string, depth int, effective bool) {
	children := s.Children(parentID)
	for i := len(children) - 1; i >= 0; i-- {
		n := children[i]
		fmt.Println(strings.Repeat("  ", depth) + nodeLine(s, n, effective))
		if n.IsGroup() {
			printTree(s, n.ID, depth+1, effective)
		}
	}
}

func nodeLine(s *document.Stack, n *document.Node, effective bool) string {
	marker := "•"
	if n.IsGroup() {
		marker = "▸"
		if n.Expanded {
			marker = "▾"
		}
	}

	visible, locked, opacity := n.Visible, n.Locked, n.Opacity
	if effective {
		visible = s.EffectivelyVisible(n)
		locked = s.EffectivelyLocked(n)
		opacity = s.EffectiveOpacity(n)
	}

	var tags []string
	if !visible {
		tags = append(tags, "hidden")
	}
	if locked {
		tags = append(tags, "locked")
	}
	if opacity < 1.0 {
		tags = append(tags, fmt.Sprintf("%.0f%%", opacity*100))
	}
	if len(n.Effects) > 0 {
		tags = append(tags, fmt.Sprintf("fx:%d", len(n.Effects)))
	}

	line := fmt.Sprintf("%s %s (%s)", marker, n.Name, n.Kind)
	if !visible {
		if len(tags) > 0 {
			line += " [" + strings.Join(tags, " ") + "]"
		}
		return StyleDim.Render(line)
	}

	line = fmt.Sprintf("%s %s %s", marker, n.Name, StyleDim.Render("("+string(n.Kind)+")"))
	if len(tags) > 0 {
		line += " " + StyleDim.Render("["+strings.Join(tags, " ")+"]")
	}
	return line
}
