package enums

import "fmt"

// AtomicOp names the two delta operations supported on quantity counters.
type AtomicOp string

const (
	AtomicOpIncrement AtomicOp = "increment"
	AtomicOpDecrement AtomicOp = "decrement"
)

// String implements fmt.Stringer.
func (o AtomicOp) String() string {
	return string(o)
}

// IsValid reports whether the value is a known AtomicOp.
func (o AtomicOp) IsValid() bool {
	return o == AtomicOpIncrement || o == AtomicOpDecrement
}

// ParseAtomicOp converts raw input into an AtomicOp.
func ParseAtomicOp(value string) (AtomicOp, error) {
	switch AtomicOp(value) {
	case AtomicOpIncrement:
		return AtomicOpIncrement, nil
	case AtomicOpDecrement:
		return AtomicOpDecrement, nil
	}
	return "", fmt.Errorf("invalid atomic operation %q", value)
}

// ToolCounter is the request-facing selector for a tool quantity column.
type ToolCounter string

const (
	ToolCounterOwned     ToolCounter = "owned"
	ToolCounterAvailable ToolCounter = "available"
)

// toolCounterColumns maps each selector to its column. Static data, so adding
// a counter means adding exactly one row here.
var toolCounterColumns = map[ToolCounter]string{
	ToolCounterOwned:     "total_owned",
	ToolCounterAvailable: "total_avail",
}

// String implements fmt.Stringer.
func (c ToolCounter) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ToolCounter.
func (c ToolCounter) IsValid() bool {
	_, ok := toolCounterColumns[c]
	return ok
}

// Column returns the database column the selector addresses.
func (c ToolCounter) Column() string {
	return toolCounterColumns[c]
}

// ParseToolCounter converts raw input into a ToolCounter.
func ParseToolCounter(value string) (ToolCounter, error) {
	c := ToolCounter(value)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid tool counter %q", value)
	}
	return c, nil
}
