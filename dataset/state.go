package dataset

// State is the lifecycle stage of a dataset build.
//
//	Unbuilt → Ingesting → RawGraphReady → Flattened → Expanded → Validated → Queryable
//
// Any failure moves the build to Failed, which is terminal.
type State int

const (
	StateUnbuilt State = iota
	StateIngesting
	StateRawGraphReady
	StateFlattened
	StateExpanded
	StateValidated
	StateQueryable
	StateFailed
)

var stateNames = [...]string{
	StateUnbuilt:       "unbuilt",
	StateIngesting:     "ingesting",
	StateRawGraphReady: "raw_graph_ready",
	StateFlattened:     "flattened",
	StateExpanded:      "expanded",
	StateValidated:     "validated",
	StateQueryable:     "queryable",
	StateFailed:        "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateQueryable || s == StateFailed
}
