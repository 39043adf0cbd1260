package pangenome

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/GregDucq/PanGenomePipeline/config"
)

// maxRowLen bounds a single table row. A row holds one cell per genome,
// which on large runs outgrows bufio.Scanner's default line limit.
const maxRowLen = 1 << 20

// absent matches the placeholder a clustering run writes for a genome with
// no member in a cluster: a run of three or more hyphens.
var absent = regexp.MustCompile(`^-{3,}$`)

// centroidHeader matches the leading token of a centroid FASTA header,
// ">centroid_<n> <locus> ...", capturing the cluster number.
var centroidHeader = regexp.MustCompile(`^centroid_(\d+)$`)

// stepResults holds one step's lazily parsed result tables.
type stepResults struct {
	// clusters maps a cluster number to its member loci in stored order,
	// with absent placeholders dropped. nil until first use
	clusters map[int][]string

	// centroids maps a cluster number to its representative locus.
	// nil until first use
	centroids map[int]string
}

// resultCache hands out per-step cluster membership and representative
// tables, parsing each step's result files at most once per run no matter
// how many recursive lookups hit them. It holds no state beyond what the
// step directories contain, so it is rebuilt from scratch on every run.
type resultCache struct {
	// dir holding one working directory per step
	dir string

	conf  *config.Config
	steps map[string]*stepResults
}

func newResultCache(dir string, conf *config.Config) *resultCache {
	return &resultCache{
		dir:   dir,
		conf:  conf,
		steps: make(map[string]*stepResults),
	}
}

// results returns the step's entry, creating an empty one on first use.
func (c *resultCache) results(step string) *stepResults {
	r, ok := c.steps[step]
	if !ok {
		r = &stepResults{}
		c.steps[step] = r
	}
	return r
}

// clustersOf returns the step's cluster membership table, reading its
// match table on first use.
func (c *resultCache) clustersOf(step string) (map[int][]string, error) {
	r := c.results(step)
	if r.clusters == nil {
		clusters, err := parseMatchTable(filepath.Join(c.dir, step, c.conf.MatchFile))
		if err != nil {
			return nil, err
		}
		r.clusters = clusters
	}
	return r.clusters, nil
}

// centroidOf returns the representative locus chosen for a step's cluster,
// reading the step's centroid FASTA on first use. A cluster number with no
// representative means the hierarchy references a cluster that was never
// produced, which is fatal.
func (c *resultCache) centroidOf(step string, cluster int) (string, error) {
	r := c.results(step)
	if r.centroids == nil {
		centroids, err := parseCentroids(filepath.Join(c.dir, step, c.conf.CentroidFile))
		if err != nil {
			return "", err
		}
		r.centroids = centroids
	}

	rep, ok := r.centroids[cluster]
	if !ok {
		return "", &LookupError{Step: step, Cluster: cluster, Reason: "no centroid for referenced cluster"}
	}
	return rep, nil
}

// parseMatchTable reads a step's tab-delimited cluster membership table.
// Field 1 is the 1-based cluster number; the rest of the row holds one
// locus per step genome, or an absent placeholder. Placeholders are
// dropped rather than kept positionally: expansion only needs to know
// which loci a cluster contains, and the reorder pass restores columns
// from the genome registry afterwards.
func parseMatchTable(path string) (map[int][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open match table: %w", err)
	}
	defer f.Close()

	clusters := make(map[int][]string)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRowLen)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		cluster, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad cluster number %q", path, n, fields[0])
		}
		if _, seen := clusters[cluster]; seen {
			return nil, fmt.Errorf("%s line %d: cluster %d listed twice", path, n, cluster)
		}

		members := []string{}
		for _, cell := range fields[1:] {
			cell = strings.TrimSpace(cell)
			if cell == "" || absent.MatchString(cell) {
				continue
			}
			members = append(members, cell)
		}
		clusters[cluster] = members
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read match table %s: %w", path, err)
	}
	return clusters, nil
}

// parseCentroids reads the representative FASTA a step's clustering run
// produces. Only headers matter here: ">centroid_<n> <locus> ..." maps
// cluster n to its representative. Sequences are skipped; the pseudo
// genome synthesizer reads them separately.
func parseCentroids(path string) (map[int]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open centroid file: %w", err)
	}
	defer f.Close()

	centroids := make(map[int]string)
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if !strings.HasPrefix(line, ">") {
			continue
		}

		cluster, rep, err := splitCentroidHeader(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, n, err)
		}
		if _, seen := centroids[cluster]; seen {
			return nil, fmt.Errorf("%s line %d: centroid_%d listed twice", path, n, cluster)
		}
		centroids[cluster] = rep
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read centroid file %s: %w", path, err)
	}
	return centroids, nil
}

// splitCentroidHeader pulls the cluster number and representative locus
// out of one ">centroid_<n> <locus> ..." header line.
func splitCentroidHeader(line string) (cluster int, rep string, err error) {
	fields := strings.Fields(strings.TrimPrefix(line, ">"))
	if len(fields) < 2 {
		return 0, "", fmt.Errorf("centroid header %q names no representative", line)
	}

	m := centroidHeader.FindStringSubmatch(fields[0])
	if m == nil {
		return 0, "", fmt.Errorf("malformed centroid header %q", line)
	}

	cluster, err = strconv.Atoi(m[1])
	if err != nil {
		return 0, "", fmt.Errorf("malformed centroid header %q", line)
	}
	return cluster, fields[1], nil
}
