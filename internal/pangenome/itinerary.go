// Package pangenome builds pan-genome cluster hierarchies: it runs an
// external clustering tool over groups of genomes level by level, feeds
// each level's clusters into the next as pseudo-genomes, and afterwards
// flattens every pseudo-locus in the final results back to the per-genome
// loci it stands for.
package pangenome

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/GregDucq/PanGenomePipeline/config"
)

// Step is one execution unit of the hierarchy: a named clustering run over
// a fixed, ordered set of parts. A part is either a raw genome identifier
// or the name of an earlier step, standing in for that step's whole
// cluster set.
type Step struct {
	// Name of the step, eg "L1B1" for level 1, branch 1. Unique across the
	// hierarchy; it also prefixes the step's synthetic loci
	Name string

	// Parts clustered by this step, in file order
	Parts []string
}

// Itinerary is the ordered execution plan parsed from the hierarchy
// definition file. File order is execution order; the last step's result
// table is the input to expansion.
type Itinerary struct {
	// Steps in execution order
	Steps []*Step

	// position of each step name in Steps
	pos map[string]int
}

// stepLine matches one hierarchy definition line: StepName(part,part,...)
var stepLine = regexp.MustCompile(`^([^()\s,]+)\(([^()]*)\)$`)

// extension matches a single file-extension-like suffix on a part, so the
// hierarchy file may name either bare identifiers or filenames
var extension = regexp.MustCompile(`\.\w+$`)

// parseItinerary reads the hierarchy definition file into an Itinerary.
// Each non-blank, non-comment line must match StepName(part,part,...); a
// step may only reference steps defined on earlier lines, so the reference
// graph is acyclic by construction and no topological sort is needed.
func parseItinerary(path string) (*Itinerary, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hierarchy file: %w", err)
	}

	it := &Itinerary{pos: make(map[string]int)}
	for i, line := range strings.Split(string(dat), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		m := stepLine.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("%s line %d: malformed step %q, want Name(part,part,...)", path, i+1, line)
		}

		name := m[1]
		if _, seen := it.pos[name]; seen {
			return nil, fmt.Errorf("%s line %d: step %s defined twice", path, i+1, name)
		}

		step := &Step{Name: name}
		for _, part := range strings.Split(m[2], ",") {
			part = extension.ReplaceAllString(strings.TrimSpace(part), "")
			if part == "" {
				return nil, fmt.Errorf("%s line %d: step %s has an empty part", path, i+1, name)
			}
			step.Parts = append(step.Parts, part)
		}
		if len(step.Parts) == 0 {
			return nil, fmt.Errorf("%s line %d: step %s has no parts", path, i+1, name)
		}

		it.pos[name] = len(it.Steps)
		it.Steps = append(it.Steps, step)
	}

	if len(it.Steps) == 0 {
		return nil, fmt.Errorf("no steps in hierarchy file %s", path)
	}

	// a part may only reference a step defined strictly earlier. checked
	// after the fact because a forward reference looks like a genome name
	// until the whole file has been read
	for i, step := range it.Steps {
		for _, part := range step.Parts {
			if j, isStep := it.pos[part]; isStep && j >= i {
				return nil, fmt.Errorf("step %s references step %s, which is not defined earlier", step.Name, part)
			}
		}
	}

	return it, nil
}

// Final returns the step whose results feed the expansion pass.
func (it *Itinerary) Final() *Step {
	return it.Steps[len(it.Steps)-1]
}

// isStep reports whether name is a step of this hierarchy.
func (it *Itinerary) isStep(name string) bool {
	_, ok := it.pos[name]
	return ok
}

// depth is the hard ceiling on reference chains: each substitution moves
// strictly down the itinerary, so no chain can be longer than the step
// count. Recursion past it means the hierarchy references itself.
func (it *Itinerary) depth() int {
	return len(it.Steps)
}

// genomes returns the raw genome parts referenced anywhere in the
// itinerary, deduplicated, in first-appearance order.
func (it *Itinerary) genomes() (ids []string) {
	seen := make(map[string]bool)
	for _, step := range it.Steps {
		for _, part := range step.Parts {
			if it.isStep(part) || seen[part] {
				continue
			}
			seen[part] = true
			ids = append(ids, part)
		}
	}
	return
}

// levels maps each step to its height in the reference graph: a step over
// raw genomes alone is level 1, and a step referencing other steps sits one
// above the deepest of them.
func (it *Itinerary) levels() map[string]int {
	levels := make(map[string]int, len(it.Steps))
	for _, step := range it.Steps {
		level := 1
		for _, part := range step.Parts {
			if l, isStep := levels[part]; isStep && l+1 > level {
				level = l + 1
			}
		}
		levels[step.Name] = level
	}
	return levels
}

// verifyGenomeFiles checks that every raw genome in the itinerary has its
// sequence and attribute files under the work dir. Missing files are
// reported, not fatal: a step's inputs are only read once that step runs.
func verifyGenomeFiles(it *Itinerary, dir string, conf *config.Config) (missing []error) {
	for _, g := range it.genomes() {
		for _, path := range []string{
			filepath.Join(dir, conf.FastaDir, g+".fasta"),
			filepath.Join(dir, conf.AttDir, g+".att"),
		} {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				missing = append(missing, fmt.Errorf("genome %s: no file at %s", g, path))
			}
		}
	}
	return
}
