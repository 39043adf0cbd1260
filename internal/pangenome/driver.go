package pangenome

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/GregDucq/PanGenomePipeline/config"
	"github.com/spf13/cobra"
)

const (
	// expandedSuffix marks the rewritten copies of the final step's
	// result files. The originals are never touched.
	expandedSuffix = ".expanded"

	// clusterSizesFile summarizes each expanded cluster's real locus count
	clusterSizesFile = "cluster_sizes.txt"
)

// ExpandCmd takes a cobra command (with its flags) and runs Expand.
func ExpandCmd(cmd *cobra.Command, args []string) {
	Expand(parseCmdFlags(cmd, args))
}

// Expand rewrites the final step's result files with every pseudo-locus
// replaced by the real loci behind it, as if the whole hierarchy had been
// clustered in one flat run. Used by the 'pangenome expand' command and
// at the end of a full 'pangenome run'.
func Expand(flags *Flags, conf *config.Config) {
	start := time.Now()

	e, err := newExpander(flags, conf)
	if err != nil {
		stderr.Fatalln(err)
	}

	if err := e.expandResults(); err != nil {
		stderr.Fatalln(err)
	}

	if conf.Verbose {
		fmt.Printf("%s\n\n", time.Since(start))
	}
}

// expandResults writes the expanded match table, cluster size summary,
// centroid FASTA, and frameshift report next to the final step's own
// output files.
func (e *expander) expandResults() error {
	final := e.it.Final()
	dir := filepath.Join(e.dir, e.conf.StepsDir, final.Name)

	if err := e.expandMatchTable(final, dir); err != nil {
		return err
	}
	if err := e.expandCentroids(dir); err != nil {
		return err
	}
	return e.expandFrameshifts(dir)
}

// expandMatchTable writes the fully expanded match table and the cluster
// size summary. Row n is built by expanding the synthesized pseudo-locus
// <final>_n, so the final step's own clusters go through the same
// substitution machinery as every level below them. Rows are written as
// they are produced, then the finished file is reread and its line count
// checked against the cluster count.
func (e *expander) expandMatchTable(final *Step, dir string) error {
	clusters, err := e.cache.clustersOf(final.Name)
	if err != nil {
		return err
	}
	total := len(clusters)

	matchPath := filepath.Join(dir, e.conf.MatchFile+expandedSuffix)
	match, err := os.Create(matchPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", matchPath, err)
	}
	defer match.Close()

	sizesPath := filepath.Join(dir, clusterSizesFile)
	sizes, err := os.Create(sizesPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", sizesPath, err)
	}
	defer sizes.Close()

	mw := bufio.NewWriter(match)
	sw := bufio.NewWriter(sizes)
	for n := 1; n <= total; n++ {
		loci, err := e.expand(fmt.Sprintf("%s_%d", final.Name, n))
		if err != nil {
			return err
		}

		row, err := e.reorder(loci)
		if err != nil {
			return fmt.Errorf("cluster %d: %w", n, err)
		}

		fmt.Fprintf(mw, "%d\t%s\n", n, strings.Join(row, "\t"))
		fmt.Fprintf(sw, "%d\t%d\n", n, rowSize(row))
	}

	if err := flushSync(mw, match); err != nil {
		return err
	}
	if err := flushSync(sw, sizes); err != nil {
		return err
	}

	if err := verifyLineCount(matchPath, total); err != nil {
		return err
	}
	return verifyLineCount(sizesPath, total)
}

// expandCentroids copies the final centroid FASTA with each header's
// representative locus resolved down to a real one. Cluster numbers,
// trailing annotation, and sequence lines pass through untouched.
func (e *expander) expandCentroids(dir string) error {
	inPath := filepath.Join(dir, e.conf.CentroidFile)
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", inPath, err)
	}
	defer in.Close()

	outPath := inPath + expandedSuffix
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	lines := 0
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRowLen)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if strings.HasPrefix(line, ">") {
			if line, err = e.resolveCentroidHeader(line); err != nil {
				return fmt.Errorf("%s line %d: %w", inPath, n, err)
			}
		}

		fmt.Fprintln(w, line)
		lines++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", inPath, err)
	}

	if err := flushSync(w, out); err != nil {
		return err
	}
	return verifyLineCount(outPath, lines)
}

// centroidRep locates the representative locus, the second field of a
// ">centroid_<n> <locus> ..." header line.
var centroidRep = regexp.MustCompile(`^>\s*\S+\s+(\S+)`)

// resolveCentroidHeader swaps the representative in one
// ">centroid_<n> <locus> ..." header for the real locus it stands for.
// Only the representative's bytes are replaced; the rest of the line,
// annotation text and spacing included, passes through byte for byte.
func (e *expander) resolveCentroidHeader(line string) (string, error) {
	m := centroidRep.FindStringSubmatchIndex(line)
	if m == nil {
		return "", fmt.Errorf("centroid header %q names no representative", line)
	}

	rep, err := e.resolve(line[m[2]:m[3]])
	if err != nil {
		return "", err
	}

	return line[:m[2]] + rep + line[m[3]:], nil
}

// expandFrameshifts copies the final frameshift report with every
// pseudo-locus resolved to a real one. Fields that are not pseudo-loci,
// including genome names and annotation, pass through byte for byte.
// Clustering tools only write the report when they find frameshifts, so
// a missing file is skipped rather than treated as an error.
func (e *expander) expandFrameshifts(dir string) error {
	inPath := filepath.Join(dir, e.conf.FrameshiftFile)
	in, err := os.Open(inPath)
	if os.IsNotExist(err) {
		if e.conf.Verbose {
			stderr.Printf("no %s in %s, skipping\n", e.conf.FrameshiftFile, dir)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", inPath, err)
	}
	defer in.Close()

	outPath := inPath + expandedSuffix
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	lines := 0
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRowLen)
	for n := 1; scanner.Scan(); n++ {
		fields := strings.Split(scanner.Text(), "\t")
		for i, field := range fields {
			if !e.it.parseLocus(field).synthetic() {
				continue
			}

			resolved, err := e.resolve(field)
			if err != nil {
				return fmt.Errorf("%s line %d: %w", inPath, n, err)
			}
			fields[i] = resolved
		}

		fmt.Fprintln(w, strings.Join(fields, "\t"))
		lines++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", inPath, err)
	}

	if err := flushSync(w, out); err != nil {
		return err
	}
	return verifyLineCount(outPath, lines)
}

// rowSize counts the filled cells of a reordered row.
func rowSize(row []string) (n int) {
	for _, cell := range row {
		if cell != absentMarker {
			n++
		}
	}
	return n
}

// flushSync pushes buffered rows to the OS and the OS's copy to disk.
// The line count check rereads the file afterwards, so everything has to
// actually be there first.
func flushSync(w *bufio.Writer, f *os.File) error {
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", f.Name(), err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", f.Name(), err)
	}
	return nil
}

// verifyLineCount rereads a finished output file and compares what is on
// disk against the number of lines written into it.
func verifyLineCount(path string, want int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to reopen %s: %w", path, err)
	}
	defer f.Close()

	got := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRowLen)
	for scanner.Scan() {
		got++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to reread %s: %w", path, err)
	}

	if got != want {
		return &VerifyError{Path: path, Want: want, Got: got}
	}
	return nil
}
