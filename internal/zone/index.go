// Package zone keeps an in-memory index of a zone's records and reconciles
// address records against it.
package zone

import "github.com/tempusbreve/zone-helper/internal/dns"

// Index maps sub-domain names to their records. Keys keep the order in which
// they were first seen while building; records under a key are sorted by
// type. An Index is a snapshot: it is never updated after a write, callers
// rebuild it to observe their own mutations.
type Index struct {
	keys    []string
	records map[string][]dns.Record
}

func newIndex() *Index {
	return &Index{records: map[string][]dns.Record{}}
}

func (i *Index) add(rec dns.Record) {
	if _, ok := i.records[rec.SubDomain]; !ok {
		i.keys = append(i.keys, rec.SubDomain)
	}
	i.records[rec.SubDomain] = append(i.records[rec.SubDomain], rec)
}

// Keys returns the sub-domains in first-seen order.
func (i *Index) Keys() []string {
	if i == nil {
		return nil
	}

	keys := make([]string, len(i.keys))
	copy(keys, i.keys)
	return keys
}

// Records returns a copy of the records held under subDomain.
func (i *Index) Records(subDomain string) ([]dns.Record, bool) {
	if i == nil {
		return nil, false
	}

	recs, ok := i.records[subDomain]
	if !ok {
		return nil, false
	}

	res := make([]dns.Record, len(recs))
	copy(res, recs)
	return res, true
}

func (i *Index) Has(subDomain string) bool {
	if i == nil {
		return false
	}

	_, ok := i.records[subDomain]
	return ok
}

// Len is the number of sub-domains.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}

	return len(i.keys)
}

// Total is the number of records across all sub-domains.
func (i *Index) Total() int {
	if i == nil {
		return 0
	}

	n := 0
	for _, recs := range i.records {
		n += len(recs)
	}
	return n
}
