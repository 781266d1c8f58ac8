package catalog

import "fmt"

// ChangeKind identifies the mutation that produced a Change.
type ChangeKind int

const (
	// ChangeInserted is sent after Append. Index is the new position.
	ChangeInserted ChangeKind = iota
	// ChangeRemoved is sent after Remove. Index is the old position.
	ChangeRemoved
	// ChangeSorted is sent after Sort; every index is stale.
	ChangeSorted
	// ChangeReset is sent after Clear emptied the catalog.
	ChangeReset
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeInserted:
		return "inserted"
	case ChangeRemoved:
		return "removed"
	case ChangeSorted:
		return "sorted"
	case ChangeReset:
		return "reset"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change describes one mutation of a Model. Index is -1 for changes that
// affect the whole catalog.
type Change struct {
	Kind   ChangeKind
	Index  int
	Record Record
}
