package pangenome

import "fmt"

// absentMarker is written in place of a genome with no locus in a cluster.
// Columns are always written, never omitted, so every expanded row has
// exactly one cell per registered genome.
const absentMarker = "----------"

// reorder lays a flat expansion out into fixed output columns, one per
// genome in registry order. Each locus finds its column through the
// attribute-derived locus index. Absent placeholders in the input are
// skipped, so feeding an already-reordered row back through reorder
// reproduces it. Two loci from the same genome in one cluster is an
// error: the pairwise clustering input promises at most one member per
// genome per cluster, and silently keeping one of them would hide a
// malformed table.
func (e *expander) reorder(loci []string) ([]string, error) {
	row := make([]string, e.reg.size())
	for i := range row {
		row[i] = absentMarker
	}

	for _, id := range loci {
		if absent.MatchString(id) {
			continue
		}

		genome, ok := e.index[id]
		if !ok {
			return nil, fmt.Errorf("locus %s not found in any attribute file", id)
		}

		col, ok := e.reg.column(genome)
		if !ok {
			return nil, fmt.Errorf("genome %s of locus %s not in the genome order file", genome, id)
		}

		if row[col] != absentMarker {
			return nil, fmt.Errorf("cluster holds two loci for genome %s: %s and %s", genome, row[col], id)
		}
		row[col] = id
	}

	return row, nil
}
