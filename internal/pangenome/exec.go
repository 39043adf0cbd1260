package pangenome

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/GregDucq/PanGenomePipeline/config"
)

const (
	// combined input files a step feeds its clustering run
	combinedFasta = "combined.fasta"
	combinedAtt   = "combined.att"
	genomeList    = "genome.list"
)

// clusterExec is one step's run of the external clustering tool: the
// combined input files the tool is fed and the result files it has to
// leave behind.
type clusterExec struct {
	// the step being clustered
	step *Step

	// the step's working directory
	dir string

	// the path to the combined input FASTA
	fasta string

	// the path to the combined gene attribute file
	att string

	// the path to the genome list naming each part, in order
	list string

	// the result paths the tool must produce
	match    string
	centroid string

	// the clustering tool binary and its pass-through arguments
	tool string
	args []string
}

func newClusterExec(step *Step, stepDir string, conf *config.Config) *clusterExec {
	return &clusterExec{
		step:     step,
		dir:      stepDir,
		fasta:    filepath.Join(stepDir, combinedFasta),
		att:      filepath.Join(stepDir, combinedAtt),
		list:     filepath.Join(stepDir, genomeList),
		match:    filepath.Join(stepDir, conf.MatchFile),
		centroid: filepath.Join(stepDir, conf.CentroidFile),
		tool:     conf.ClusterTool,
		args:     conf.ClusterArgs,
	}
}

// done reports whether the step already has results on disk. A rerun
// skips such steps, so a pipeline killed partway picks up where it
// stopped instead of redoing finished clustering runs.
func (c *clusterExec) done() bool {
	for _, path := range []string{c.match, c.centroid} {
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			return false
		}
	}
	return true
}

// build writes the step's combined clustering input: each part's FASTA
// concatenated in itinerary order, the matching attribute rows, and the
// genome list naming the parts. The list's order fixes the column order
// of the step's match table.
func (c *clusterExec) build(work string, it *Itinerary, conf *config.Config) error {
	fasta, err := os.Create(c.fasta)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.fasta, err)
	}
	defer fasta.Close()

	att, err := os.Create(c.att)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.att, err)
	}
	defer att.Close()

	list, err := os.Create(c.list)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.list, err)
	}
	defer list.Close()

	for _, part := range c.step.Parts {
		partFasta, partAtt := partPaths(part, work, it, conf)
		if err := appendFile(fasta, partFasta); err != nil {
			return err
		}
		if err := appendFile(att, partAtt); err != nil {
			return err
		}
		fmt.Fprintln(list, part)
	}

	return nil
}

// run calls the external clustering tool on the step's combined input.
// The tool runs inside the step directory and must leave its match table
// and centroid FASTA there.
func (c *clusterExec) run() error {
	args := append([]string{
		"--dir", c.dir,
		"--genomes", c.list,
		"--fasta", c.fasta,
		"--att", c.att,
	}, c.args...)
	clusterCmd := exec.Command(c.tool, args...)
	clusterCmd.Dir = c.dir

	// execute the clustering tool and wait on it to finish
	if output, err := clusterCmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to execute %s on step %s: %v: %s", c.tool, c.step.Name, err, string(output))
	}

	return nil
}

// verify checks that the tool left usable results behind. Tools that die
// after printing a partial table exit zero often enough that the exit
// code alone is not trusted.
func (c *clusterExec) verify() error {
	for _, path := range []string{c.match, c.centroid} {
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			return fmt.Errorf("%s finished without producing %s", c.tool, path)
		}
	}
	return nil
}

// partPaths returns the FASTA and attribute file feeding one part into a
// step: the pseudo-genome files of an earlier step, or the raw input
// files of a genome.
func partPaths(part, work string, it *Itinerary, conf *config.Config) (fasta, att string) {
	if it.isStep(part) {
		dir := filepath.Join(work, conf.StepsDir, part)
		return filepath.Join(dir, part+".fasta"), filepath.Join(dir, part+".att")
	}

	return filepath.Join(work, conf.FastaDir, part+".fasta"),
		filepath.Join(work, conf.AttDir, part+".att")
}

// appendFile copies one part's file onto the end of a combined input file.
func appendFile(dst *os.File, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open part file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(dst, f); err != nil {
		return fmt.Errorf("failed to append %s to %s: %w", src, dst.Name(), err)
	}
	return nil
}
