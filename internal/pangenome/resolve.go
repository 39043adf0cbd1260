package pangenome

// resolve follows a (possibly synthetic) identifier down to a single real
// locus: each pseudo-locus is swapped for its cluster's chosen
// representative until a real locus is reached. Real loci are fixed points
// and come back unchanged. Every substitution steps strictly down the
// itinerary, so the chain is bounded by the itinerary's depth; going past
// that bound turns an accidental cycle into a clean error rather than
// unbounded recursion.
func (e *expander) resolve(id string) (string, error) {
	return e.resolveAt(id, 0)
}

func (e *expander) resolveAt(id string, depth int) (string, error) {
	l := e.it.parseLocus(id)
	if !l.synthetic() {
		return id, nil
	}
	if depth >= e.it.depth() {
		return "", e.overflow(l)
	}

	rep, err := e.cache.centroidOf(l.step, l.cluster)
	if err != nil {
		return "", err
	}
	return e.resolveAt(rep, depth+1)
}
