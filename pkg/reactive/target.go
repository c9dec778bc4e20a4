package reactive

import "strconv"

// Target is the identity of a reactive data source.
//
// The runtime never reads anything through a Target; it is only used as a
// key in the dependency graph. Signals and memos own one each. Callers that
// build their own reactive structures allocate Targets with NewTarget and
// call Runtime.Track on reads and Runtime.Trigger on writes.
type Target struct {
	id    uint64
	label string
}

// NewTarget allocates a fresh target. The label only appears in logs and
// inspector output.
func NewTarget(label string) *Target {
	return &Target{id: nextID(), label: label}
}

// ID returns the unique identifier for this target.
func (t *Target) ID() uint64 {
	return t.id
}

// Label returns the label given at creation.
func (t *Target) Label() string {
	return t.label
}

// String returns "label#id", or "target#id" for unlabeled targets.
func (t *Target) String() string {
	label := t.label
	if label == "" {
		label = "target"
	}
	return label + "#" + strconv.FormatUint(t.id, 10)
}

// Op tags the kind of mutation passed to Trigger. The runtime does not
// interpret it; it is forwarded to OnTrigger hooks and observers.
type Op uint8

const (
	// OpSet replaces a value. Signals always trigger with OpSet.
	OpSet Op = iota
	// OpAdd inserts a new key or element.
	OpAdd
	// OpDelete removes a key or element.
	OpDelete
	// OpClear removes everything.
	OpClear
)

// String returns a human-readable name for the op.
func (o Op) String() string {
	switch o {
	case OpSet:
		return "set"
	case OpAdd:
		return "add"
	case OpDelete:
		return "delete"
	case OpClear:
		return "clear"
	default:
		return "op(" + strconv.Itoa(int(o)) + ")"
	}
}
