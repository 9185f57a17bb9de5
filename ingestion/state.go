package ingestion

// State is the stage a run is in.
type State int

const (
	StateIdle State = iota
	StateExtracting
	StateChunking
	StateEmbedding
	StatePersisting
	StateDone
	StateAborted
)

var stateNames = [...]string{
	StateIdle:       "idle",
	StateExtracting: "extracting",
	StateChunking:   "chunking",
	StateEmbedding:  "embedding",
	StatePersisting: "persisting",
	StateDone:       "done",
	StateAborted:    "aborted",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateDone || s == StateAborted
}
