package records

import "strings"

// Node is one line of a brace-structured file together with the block that
// follows it, if any.
//
//	levels a b        <- Node{Text: "levels a b", Block: true}
//	{
//	    a city        <- child
//	}
type Node struct {
	Line     Line
	Text     string
	Block    bool
	Children []*Node
}

// Key returns the first token of the node text.
func (n *Node) Key() string {
	return FirstToken(n.Text)
}

// Value returns the node text after its first token.
func (n *Node) Value() string {
	_, v := SplitPair(n.Text)
	return v
}

// Child returns the first direct child whose key matches.
func (n *Node) Child(key string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Key() == key {
			return c, true
		}
	}
	return nil, false
}

// ParseBlocks builds the nested block tree of cleaned lines. A block is
// opened either by a lone "{" following a header line or by a header line
// ending in "{", and closed by a lone "}". Lines with balanced inline braces
// are leaves.
func ParseBlocks(lines []Line) ([]*Node, error) {
	root := &Node{Block: true}
	stack := []*Node{root}
	var last *Node
	var lastLine Line

	top := func() *Node { return stack[len(stack)-1] }

	for _, line := range lines {
		lastLine = line
		text := line.Text
		delta := braceDelta(text)

		switch {
		case text == "{":
			if last == nil || last.Block {
				return nil, newExtractError(line, "opening brace without a header line")
			}
			last.Block = true
			stack = append(stack, last)
			last = nil

		case text == "}":
			if len(stack) == 1 {
				return nil, newExtractError(line, "unexpected closing brace")
			}
			last = top()
			stack = stack[:len(stack)-1]

		case delta == 0:
			node := &Node{Line: line, Text: text}
			top().Children = append(top().Children, node)
			last = node

		case delta == 1 && strings.HasSuffix(text, "{"):
			node := &Node{
				Line:  line,
				Text:  strings.TrimSpace(strings.TrimSuffix(text, "{")),
				Block: true,
			}
			top().Children = append(top().Children, node)
			stack = append(stack, node)
			last = nil

		default:
			return nil, newExtractError(line, "unbalanced braces")
		}
	}

	if len(stack) != 1 {
		return nil, newExtractError(lastLine, "missing closing brace")
	}
	return root.Children, nil
}
