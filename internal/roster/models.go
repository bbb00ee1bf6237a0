// Package roster loads the graduate roster and fuzzy-matches claimant names
// against it. The roster is read-only for this service; entries are
// maintained out of band and picked up within one cache cycle.
package roster

import "wathiq/internal/names"

// Attribute names the certificate template consumes. Any extra columns in
// the backing store are carried through untouched.
const (
	AttrFullName     = "full_name"
	AttrTypeOfStudy  = "type_of_study"
	AttrDepartment   = "department"
	AttrSection      = "section"
	AttrAverage      = "average"
	AttrAppreciation = "appreciation"
	AttrRank         = "rank"
	AttrTotal        = "total"
	AttrTopRank      = "top_rank"
)

// Record is one roster entry. FullName is the display form; MatchKey is the
// canonical whitespace-free form derived from it on load and never stored or
// user-edited.
type Record struct {
	FullName   string            `json:"full_name"`
	Attributes map[string]string `json:"attributes"`
	MatchKey   string            `json:"match_key"`
}

// withMatchKeys recomputes match keys for a freshly loaded roster. Keys are
// a pure function of the display name, so recomputing on every load keeps
// them consistent with the normalizer version in this binary.
func withMatchKeys(records []Record) []Record {
	for i := range records {
		records[i].MatchKey = names.MatchKey(records[i].FullName)
	}
	return records
}
