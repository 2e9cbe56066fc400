// Package adf models Atlassian Document Format rich text as a typed tree and
// linearizes it into plain text for terminal display.
package adf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Block-like node kinds that end a line after each of their children.
const (
	KindDoc       = "doc"
	KindParagraph = "paragraph"
	KindListItem  = "listItem"
)

// ErrNotDocument is returned by Parse for JSON that is not an object.
var ErrNotDocument = errors.New("description is not a rich-text document")

// Node is one element of a rich-text document. Attributes and marks are
// accepted on input but not retained; plain-text extraction ignores them.
type Node struct {
	Type    string `json:"type,omitempty"`
	Text    string `json:"text,omitempty"`
	Content []Node `json:"content,omitempty"`
}

// Parse decodes raw into a Node tree. Field types are checked strictly: a
// "text" that is not a string or a "content" that is not an array of objects
// is an error rather than a silently empty node.
func Parse(raw json.RawMessage) (*Node, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotDocument
	}

	var doc Node
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decoding rich-text document: %w", err)
	}
	return &doc, nil
}

// IsBlock reports whether the node's kind terminates a line after each child.
func (n *Node) IsBlock() bool {
	return n.Type == KindParagraph || n.Type == KindListItem
}
