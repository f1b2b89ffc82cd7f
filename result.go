package snapshot

// VisitResult instructs the driver how to continue after VisitEntry.
type VisitResult int

const (
	// Continue walks on normally, descending into directories.
	Continue VisitResult = iota
	// SkipSubtree does not descend into the current directory but
	// continues with its siblings. For leaves it is the same as Continue.
	SkipSubtree
	// Terminate stops the walk. No further callbacks fire, including
	// LeaveDirectory for directories that have already been entered.
	Terminate
)

func (vr VisitResult) String() string {
	switch vr {
	case Continue:
		return "CONTINUE"
	case SkipSubtree:
		return "SKIP_SUBTREE"
	case Terminate:
		return "TERMINATE"
	default:
		return "UNKNOWN"
	}
}
