package pangenome

import "fmt"

// LookupError is an inconsistency between a synthetic identifier and the
// step results it references: a cluster number missing from a step's match
// table or centroid file, or a reference chain deeper than the itinerary
// allows. The hierarchy's internal consistency is a precondition, so these
// are fatal; nothing here repairs them.
type LookupError struct {
	Step    string
	Cluster int
	Reason  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("step %s cluster %d: %s", e.Step, e.Cluster, e.Reason)
}

// VerifyError reports an expanded output file whose on-disk line count
// does not match the number of lines written into it. Every output is
// recounted after its final flush; a mismatch means truncation.
type VerifyError struct {
	Path string
	Want int
	Got  int
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("%s: wrote %d lines but found %d, output may be truncated", e.Path, e.Want, e.Got)
}
