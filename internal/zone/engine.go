package zone

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"go.uber.org/multierr"

	"github.com/tempusbreve/zone-helper/internal/dns"
)

const apiPrefix = "api."

// Desired describes the address records wanted for a domain. An empty IPv4
// or IPv6 means that family is not requested.
type Desired struct {
	Domain    string
	IPv4      string
	IPv6      string
	MirrorAPI bool
}

func (d Desired) names() []string {
	names := []string{d.Domain}
	if d.MirrorAPI {
		names = append(names, apiPrefix+d.Domain)
	}
	return names
}

func (d Desired) records(name string) []dns.Record {
	var recs []dns.Record
	if d.IPv4 != "" {
		recs = append(recs, dns.Record{SubDomain: name, Type: dns.RecordTypeA, Target: d.IPv4})
	}
	if d.IPv6 != "" {
		recs = append(recs, dns.Record{SubDomain: name, Type: dns.RecordTypeAAAA, Target: d.IPv6})
	}
	return recs
}

func (d Desired) matches(rec dns.Record) bool {
	switch rec.Type {
	case dns.RecordTypeA:
		return d.IPv4 != "" && rec.Target == d.IPv4
	case dns.RecordTypeAAAA:
		return d.IPv6 != "" && rec.Target == d.IPv6
	}
	return false
}

type Action string

const (
	ActionCreate = Action("create")
	ActionDelete = Action("delete")
	ActionSkip   = Action("skip")
)

// Change reports one decision taken by the engine. Err is set when the
// matching remote call failed.
type Change struct {
	Action Action
	Record dns.Record
	Err    error
}

// Engine issues the writes needed to reach a Desired state. It decides from
// the Index it is handed and never updates it: after Add or Delete the index
// is stale and must be rebuilt before it is read again.
type Engine struct {
	client dns.ZoneClient
	zone   string
	log    logr.Logger
	dryRun bool
}

func WithLogger(log logr.Logger) func(*Engine) {
	return func(e *Engine) { e.log = log }
}

// WithDryRun makes the engine log its decisions without calling the client.
func WithDryRun(dryRun bool) func(*Engine) {
	return func(e *Engine) { e.dryRun = dryRun }
}

func NewEngine(client dns.ZoneClient, zoneName string, options ...func(*Engine)) *Engine {
	e := &Engine{
		client: client,
		zone:   zoneName,
		log:    logr.Discard(),
	}

	for _, fn := range options {
		fn(e)
	}

	return e
}

// Add creates the A and AAAA records of d.Domain, and of its api. mirror when
// requested. A name that already holds any record is skipped as a whole,
// whatever the record types. The zone is refreshed once at the end even if
// nothing was created. Failed writes do not stop the remaining ones; all
// failures, the refresh included, are returned together.
func (e *Engine) Add(ctx context.Context, idx *Index, d Desired) ([]Change, error) {
	var changes []Change
	var errs error

	for _, name := range d.names() {
		if idx.Has(name) {
			e.log.Info("domain already present, skipping", "domain", name)
			changes = append(changes, Change{Action: ActionSkip, Record: dns.Record{SubDomain: name}})
			continue
		}

		for _, rec := range d.records(name) {
			e.log.Info("adding record", "type", rec.Type, "domain", name, "target", rec.Target, "dryRun", e.dryRun)

			change := Change{Action: ActionCreate, Record: rec}
			if !e.dryRun {
				if err := e.client.CreateRecord(ctx, e.zone, rec.Type, rec.SubDomain, rec.Target); err != nil {
					change.Err = writeFailed(err)
					errs = multierr.Append(errs, change.Err)
				}
			}
			changes = append(changes, change)
		}
	}

	return changes, multierr.Append(errs, e.refresh(ctx))
}

// Delete removes the records of d.Domain, and of its api. mirror when
// requested, whose target equals the requested address of the same family.
// Unknown names are ignored. Refresh and failure handling follow Add.
func (e *Engine) Delete(ctx context.Context, idx *Index, d Desired) ([]Change, error) {
	var changes []Change
	var errs error

	for _, name := range d.names() {
		recs, ok := idx.Records(name)
		if !ok {
			e.log.V(1).Info("domain not present, nothing to delete", "domain", name)
			continue
		}

		for _, rec := range recs {
			if !d.matches(rec) {
				continue
			}

			e.log.Info("deleting record", "type", rec.Type, "domain", name, "id", rec.ID, "dryRun", e.dryRun)

			change := Change{Action: ActionDelete, Record: rec}
			if !e.dryRun {
				if err := e.client.DeleteRecord(ctx, e.zone, rec.ID); err != nil {
					change.Err = writeFailed(err)
					errs = multierr.Append(errs, change.Err)
				}
			}
			changes = append(changes, change)
		}
	}

	return changes, multierr.Append(errs, e.refresh(ctx))
}

func (e *Engine) refresh(ctx context.Context) error {
	if e.dryRun {
		e.log.Info("skipping zone refresh", "zone", e.zone, "dryRun", true)
		return nil
	}

	e.log.V(1).Info("refreshing zone", "zone", e.zone)
	if err := e.client.RefreshZone(ctx, e.zone); err != nil {
		return fmt.Errorf("refreshing zone %q: %w", e.zone, writeFailed(err))
	}

	return nil
}

func writeFailed(err error) error {
	if errors.Is(err, dns.ErrRemoteWriteFailed) {
		return err
	}

	return fmt.Errorf("%w: %w", dns.ErrRemoteWriteFailed, err)
}
