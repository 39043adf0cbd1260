package pangenome

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GregDucq/PanGenomePipeline/config"
)

// centroidRecord is one full record of a step's centroid FASTA, sequence
// included. The result cache reads the same file but keeps headers only;
// synthesizing a pseudo-genome is the one place sequences are needed.
type centroidRecord struct {
	cluster int
	rep     string
	desc    string
	seq     []string
}

// pseudoGenome writes the files that let later steps consume a finished
// step as if it were a single genome: a FASTA of the step's centroid
// sequences renamed <step>_<n>, and an attribute file with one row per
// pseudo-locus. Each pseudo-locus sits on its own contig so the centroid
// file's arbitrary record order is not read as gene adjacency downstream.
func pseudoGenome(step *Step, stepDir string, conf *config.Config) error {
	records, err := readCentroidRecords(filepath.Join(stepDir, conf.CentroidFile))
	if err != nil {
		return err
	}

	fastaPath := filepath.Join(stepDir, step.Name+".fasta")
	fasta, err := os.Create(fastaPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", fastaPath, err)
	}
	defer fasta.Close()

	attPath := filepath.Join(stepDir, step.Name+".att")
	att, err := os.Create(attPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", attPath, err)
	}
	defer att.Close()

	fw := bufio.NewWriter(fasta)
	aw := bufio.NewWriter(att)
	for _, r := range records {
		if len(r.seq) == 0 {
			return fmt.Errorf("centroid_%d of step %s has no sequence", r.cluster, step.Name)
		}

		id := fmt.Sprintf("%s_%d", step.Name, r.cluster)
		fmt.Fprintf(fw, ">%s\n", id)
		for _, line := range r.seq {
			fmt.Fprintln(fw, line)
		}

		desc := r.desc
		if desc == "" {
			desc = fmt.Sprintf("centroid_%d", r.cluster)
		}
		fmt.Fprintf(aw, "%s\t%s\t1\t%d\t%s\t%s\n", id, id, seqLen(r.seq), desc, step.Name)
	}

	if err := flushSync(fw, fasta); err != nil {
		return err
	}
	return flushSync(aw, att)
}

// readCentroidRecords reads a centroid FASTA in full.
func readCentroidRecords(path string) ([]centroidRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open centroid file: %w", err)
	}
	defer f.Close()

	var records []centroidRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRowLen)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if !strings.HasPrefix(line, ">") {
			if len(records) == 0 {
				return nil, fmt.Errorf("%s line %d: sequence before first header", path, n)
			}
			records[len(records)-1].seq = append(records[len(records)-1].seq, line)
			continue
		}

		cluster, rep, err := splitCentroidHeader(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, n, err)
		}

		fields := strings.Fields(strings.TrimPrefix(line, ">"))
		records = append(records, centroidRecord{
			cluster: cluster,
			rep:     rep,
			desc:    strings.Join(fields[2:], " "),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read centroid file %s: %w", path, err)
	}

	return records, nil
}

// seqLen totals the residues across a record's sequence lines.
func seqLen(seq []string) (n int) {
	for _, line := range seq {
		n += len(strings.TrimSpace(line))
	}
	return n
}
