package compiler

// Context tells a transformer how the value of its node is used. It is
// passed top-down and never stored.
type Context uint8

const (
	// None is used for statements and for nodes whose value is not consumed.
	None Context = iota

	// Left marks an assignment target. Storage nodes render a reference.
	Left

	// Right marks a read. Storage nodes render a value.
	Right
)

func (c Context) String() string {
	switch c {
	case Left:
		return "Left"
	case Right:
		return "Right"
	}
	return "None"
}
