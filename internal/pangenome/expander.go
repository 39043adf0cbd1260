package pangenome

import (
	"path/filepath"

	"github.com/GregDucq/PanGenomePipeline/config"
)

// expander is the resolution engine over a clustered hierarchy. It can
// resolve an identifier to a single representative real locus, expand it
// to the full set of real loci it stands for, and lay an expanded cluster
// out into the registry's fixed genome columns. All file access funnels
// through the result cache, so each step's tables are parsed once.
type expander struct {
	it    *Itinerary
	reg   *Registry
	cache *resultCache

	// index maps each real locus to its owning genome
	index map[string]string

	// dir is the work directory the step directories live under
	dir  string
	conf *config.Config
}

// newExpander loads the itinerary and genome registry, builds the locus
// index from the raw genomes' attribute files, and wires an empty result
// cache over the step directories.
func newExpander(flags *Flags, conf *config.Config) (*expander, error) {
	it, err := parseItinerary(flags.itinerary)
	if err != nil {
		return nil, err
	}

	reg, err := readGenomeOrder(flags.genomes)
	if err != nil {
		return nil, err
	}

	index, err := buildLocusIndex(it, flags.dir, conf)
	if err != nil {
		return nil, err
	}

	return &expander{
		it:    it,
		reg:   reg,
		cache: newResultCache(filepath.Join(flags.dir, conf.StepsDir), conf),
		index: index,
		dir:   flags.dir,
		conf:  conf,
	}, nil
}

// overflow builds the error for a reference chain that outran the
// itinerary, which only a self- or cycle-referencing hierarchy can cause.
func (e *expander) overflow(l locus) error {
	return &LookupError{
		Step:    l.step,
		Cluster: l.cluster,
		Reason:  "reference chain longer than the itinerary, hierarchy loops",
	}
}
