package orchestrator

// The mapping between algorithm names and the numeric id stored in the
// stream header is an orchestration convention, not part of the container
// format. Encode and decode sessions must agree on it.
var algorithmIDs = map[string]uint16{
	"bilinear": 1,
	"xdraw":    2,
}

// AlgorithmID resolves a registered codec name to its header id.
func AlgorithmID(name string) (uint16, bool) {
	id, ok := algorithmIDs[name]
	return id, ok
}

// AlgorithmName resolves a header id back to a codec name.
func AlgorithmName(id uint16) (string, bool) {
	for name, candidate := range algorithmIDs {
		if candidate == id {
			return name, true
		}
	}
	return "", false
}
