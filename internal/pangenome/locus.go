package pangenome

import (
	"strconv"
	"strings"
)

// locus is a single classified feature identifier. Real loci come from a
// genome's annotation and belong to exactly one genome. Synthetic loci are
// minted by a step's pseudo-genome synthesizer and stand in for one of that
// step's clusters, spelled "<StepName>_<cluster>".
type locus struct {
	id string

	// step and cluster are set only for synthetic loci
	step    string
	cluster int
}

// synthetic reports whether the locus is a pseudo-locus.
func (l locus) synthetic() bool {
	return l.step != ""
}

// parseLocus classifies an identifier against the hierarchy's step names.
// Only identifiers whose prefix names an actual step are synthetic;
// anything else, "<digits>" suffix or not, is a real locus. Classification
// happens once here, so the recursion in resolve and expand works on the
// parsed form instead of re-matching strings at every level.
func (it *Itinerary) parseLocus(id string) locus {
	under := strings.LastIndex(id, "_")
	if under < 1 || under == len(id)-1 {
		return locus{id: id}
	}

	step := id[:under]
	if !it.isStep(step) {
		return locus{id: id}
	}

	cluster, err := strconv.Atoi(id[under+1:])
	if err != nil || cluster < 1 {
		return locus{id: id}
	}

	return locus{id: id, step: step, cluster: cluster}
}
