package pangenome

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GregDucq/PanGenomePipeline/config"
)

// Registry is the canonical ordering of raw genome identifiers. The line
// order of the genome order file fixes every genome's output column; it is
// read once at startup and only ever read back, never re-derived.
type Registry struct {
	order []string
	col   map[string]int
}

// readGenomeOrder parses the genome order file, one genome per line.
func readGenomeOrder(path string) (*Registry, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genome order file: %w", err)
	}

	r := &Registry{col: make(map[string]int)}
	for i, line := range strings.Split(string(dat), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, seen := r.col[line]; seen {
			return nil, fmt.Errorf("%s line %d: genome %s listed twice", path, i+1, line)
		}
		r.col[line] = len(r.order)
		r.order = append(r.order, line)
	}

	if len(r.order) == 0 {
		return nil, fmt.Errorf("no genomes in order file %s", path)
	}

	return r, nil
}

// size is the number of registered genomes, and so the width of every
// expanded row.
func (r *Registry) size() int {
	return len(r.order)
}

// column returns the fixed output column of a genome.
func (r *Registry) column(genome string) (int, bool) {
	c, ok := r.col[genome]
	return c, ok
}

// attFields is the column count of a gene attribute record: contig, locus,
// end5, end3, annotation, genome.
const attFields = 6

// buildLocusIndex maps every real locus to its owning genome by reading the
// attribute files of all raw genomes the itinerary references. The locus
// sits in field 2 of each tab-delimited record and the genome in field 6.
func buildLocusIndex(it *Itinerary, dir string, conf *config.Config) (map[string]string, error) {
	index := make(map[string]string)
	for _, g := range it.genomes() {
		path := filepath.Join(dir, conf.AttDir, g+".att")
		if err := readAttFile(path, index); err != nil {
			return nil, err
		}
	}
	return index, nil
}

// readAttFile folds one attribute file into the locus index.
func readAttFile(path string, index map[string]string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open attribute file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < attFields {
			return fmt.Errorf("%s line %d: %d fields in attribute record, want %d", path, n, len(fields), attFields)
		}

		id := strings.TrimSpace(fields[1])
		genome := strings.TrimSpace(fields[5])
		if id == "" || genome == "" {
			return fmt.Errorf("%s line %d: attribute record missing locus or genome", path, n)
		}

		if owner, seen := index[id]; seen && owner != genome {
			return fmt.Errorf("%s line %d: locus %s claimed by genomes %s and %s", path, n, id, owner, genome)
		}
		index[id] = genome
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read attribute file %s: %w", path, err)
	}
	return nil
}
