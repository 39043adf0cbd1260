package pangenome

// expand returns every real locus a (possibly synthetic) identifier
// ultimately stands for. Unlike resolve, which follows only each cluster's
// representative, expand substitutes a pseudo-locus with its cluster's
// entire membership, in stored order, and recurses until only real loci
// remain. A single top-level pseudo-locus thus unwinds into the transitive
// set of original loci across every level below it.
func (e *expander) expand(id string) ([]string, error) {
	return e.expandAt(id, 0)
}

func (e *expander) expandAt(id string, depth int) (loci []string, err error) {
	l := e.it.parseLocus(id)
	if !l.synthetic() {
		return []string{id}, nil
	}
	if depth >= e.it.depth() {
		return nil, e.overflow(l)
	}

	members, err := e.clusterMembers(l.step, l.cluster)
	if err != nil {
		return nil, err
	}

	for _, m := range members {
		sub, err := e.expandAt(m, depth+1)
		if err != nil {
			return nil, err
		}
		loci = append(loci, sub...)
	}
	return loci, nil
}

// clusterMembers returns the member loci of one step's cluster. A cluster
// number absent from the step's match table means a pseudo-locus names a
// cluster that was never produced, which is fatal.
func (e *expander) clusterMembers(step string, cluster int) ([]string, error) {
	clusters, err := e.cache.clustersOf(step)
	if err != nil {
		return nil, err
	}

	members, ok := clusters[cluster]
	if !ok {
		return nil, &LookupError{Step: step, Cluster: cluster, Reason: "cluster missing from match table"}
	}
	return members, nil
}
