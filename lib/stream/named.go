package stream

import (
	"fmt"
)

// NamedInput attaches a diagnostic label to an Input. The label never affects
// how bytes are read.
type NamedInput struct {
	Input
	name string
}

// NameInput labels in with name
func NameInput(in Input, name string) *NamedInput {
	return &NamedInput{Input: in, name: name}
}

// Name returns the label
func (n *NamedInput) Name() string {
	return n.name
}

// Unwrap returns the labelled input
func (n *NamedInput) Unwrap() Input {
	return n.Input
}

func (n *NamedInput) String() string {
	return fmt.Sprintf("%s[offset=%d length=%d]", n.name, n.Offset(), n.Length())
}

// NamedOutput attaches a diagnostic label to an Output
type NamedOutput struct {
	Output
	name string
}

// NameOutput labels out with name
func NameOutput(out Output, name string) *NamedOutput {
	return &NamedOutput{Output: out, name: name}
}

// Name returns the label
func (n *NamedOutput) Name() string {
	return n.name
}

// Unwrap returns the labelled output
func (n *NamedOutput) Unwrap() Output {
	return n.Output
}

func (n *NamedOutput) String() string {
	return fmt.Sprintf("%s[offset=%d length=%d]", n.name, n.Offset(), n.Length())
}
