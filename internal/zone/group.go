package zone

import (
	"sort"
	"strings"

	"github.com/tempusbreve/zone-helper/internal/dns"
)

// Entry is one sub-domain with its records.
type Entry struct {
	SubDomain string       `json:"subDomain" yaml:"subDomain"`
	Records   []dns.Record `json:"records" yaml:"records"`
}

// Label is the display name of the entry; the zone apex has an empty name.
func (e Entry) Label() string {
	if e.SubDomain == "" {
		return "(empty)"
	}
	return e.SubDomain
}

// Pair groups a sub-domain with its api. companion.
type Pair struct {
	Key  string `json:"key" yaml:"key"`
	Base Entry  `json:"base" yaml:"base"`
	API  Entry  `json:"api" yaml:"api"`
}

type GroupedView struct {
	Paired []Pair  `json:"paired" yaml:"paired"`
	Other  []Entry `json:"other" yaml:"other"`
}

// Group pairs every name k with "api."+k when both are present. Pairs are
// sorted by k; the names left unpaired keep their index order.
func Group(idx *Index) GroupedView {
	view := GroupedView{Paired: []Pair{}, Other: []Entry{}}

	keys := idx.Keys()
	var candidates []string
	for _, key := range keys {
		if strings.HasPrefix(key, apiPrefix) || !idx.Has(apiPrefix+key) {
			continue
		}
		candidates = append(candidates, key)
	}

	consumed := map[string]bool{}
	for _, key := range candidates {
		if consumed[key] {
			continue
		}

		apiKey := apiPrefix + key
		base, _ := idx.Records(key)
		api, _ := idx.Records(apiKey)
		view.Paired = append(view.Paired, Pair{
			Key:  key,
			Base: Entry{SubDomain: key, Records: base},
			API:  Entry{SubDomain: apiKey, Records: api},
		})

		consumed[key] = true
		consumed[apiKey] = true
	}

	sort.Slice(view.Paired, func(a, b int) bool { return view.Paired[a].Key < view.Paired[b].Key })

	for _, key := range keys {
		if consumed[key] {
			continue
		}
		recs, _ := idx.Records(key)
		view.Other = append(view.Other, Entry{SubDomain: key, Records: recs})
	}

	return view
}
