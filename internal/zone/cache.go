package zone

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/tempusbreve/zone-helper/internal/dns"
)

// Build fetches every record of the zone and indexes it by sub-domain. Any
// failing call fails the whole build; no partial index is returned.
func Build(ctx context.Context, client dns.ZoneClient, zoneName string) (*Index, error) {
	ids, err := client.ListRecordIDs(ctx, zoneName)
	if err != nil {
		return nil, remoteUnavailable(err)
	}

	idx := newIndex()
	for _, id := range ids {
		rec, err := client.GetRecord(ctx, zoneName, id)
		if err != nil {
			return nil, remoteUnavailable(err)
		}

		if rec.ID == "" || rec.Type == "" {
			return nil, fmt.Errorf("%w: record %q of %q has no id or type", dns.ErrMalformedRecord, id, zoneName)
		}

		idx.add(rec)
	}

	for _, recs := range idx.records {
		sort.SliceStable(recs, func(a, b int) bool { return recs[a].Type < recs[b].Type })
	}

	return idx, nil
}

func remoteUnavailable(err error) error {
	if errors.Is(err, dns.ErrRemoteUnavailable) || errors.Is(err, dns.ErrMalformedRecord) {
		return err
	}

	return fmt.Errorf("%w: %w", dns.ErrRemoteUnavailable, err)
}
