package adf

import (
	"errors"
	"strings"
)

// MaxDepth bounds recursion over documents received from the server.
const MaxDepth = 256

// ErrTooDeep is returned when a document nests deeper than MaxDepth.
var ErrTooDeep = errors.New("rich-text document exceeds maximum nesting depth")

// ExtractPlainText linearizes doc in document order.
//
// A newline follows every top-level child. Inside the tree, a node's text is
// written verbatim and, when the node is a paragraph or list item, a newline
// is written after each of its children. A block node without children
// therefore contributes no newline of its own, so a single-paragraph document
// "Hello" yields "Hello\n\n". Output from earlier releases depends on this
// spacing.
//
// A nil document or one without children yields "".
func ExtractPlainText(doc *Node) (string, error) {
	if doc == nil || len(doc.Content) == 0 {
		return "", nil
	}

	var b strings.Builder
	for i := range doc.Content {
		if err := writeNode(&b, &doc.Content[i], 1); err != nil {
			return "", err
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func writeNode(b *strings.Builder, n *Node, depth int) error {
	if depth > MaxDepth {
		return ErrTooDeep
	}

	b.WriteString(n.Text)
	for i := range n.Content {
		if err := writeNode(b, &n.Content[i], depth+1); err != nil {
			return err
		}
		if n.IsBlock() {
			b.WriteByte('\n')
		}
	}
	return nil
}
