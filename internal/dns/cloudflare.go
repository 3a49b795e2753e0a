package dns

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudflare/cloudflare-go"
	"github.com/go-logr/logr"
)

var ErrInvalidToken = errors.New("invalid or missing cloudflare token")

// CloudFlareDNS adapts the Cloudflare API to ZoneClient. Cloudflare records
// carry fully qualified names, so sub-domains are derived relative to the
// zone name.
type CloudFlareDNS struct {
	token   string
	log     logr.Logger
	api     *cloudflare.API
	zoneIDs map[string]string
}

func WithCFToken(token string) func(*CloudFlareDNS) {
	return func(d *CloudFlareDNS) { d.token = token }
}

func WithCFLogger(log logr.Logger) func(*CloudFlareDNS) {
	return func(d *CloudFlareDNS) { d.log = log }
}

func NewCloudFlareDNS(options ...func(*CloudFlareDNS)) *CloudFlareDNS {
	dns := &CloudFlareDNS{
		log:     logr.Discard(),
		zoneIDs: map[string]string{},
	}

	for _, fn := range options {
		fn(dns)
	}

	return dns
}

func (a *CloudFlareDNS) ListRecordIDs(ctx context.Context, zone string) ([]string, error) {
	rc, err := a.zone(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}

	records, _, err := a.api.ListDNSRecords(ctx, rc, cloudflare.ListDNSRecordsParams{})
	if err != nil {
		return nil, fmt.Errorf("%w: listing records of %q: %w", ErrRemoteUnavailable, zone, err)
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}

	a.log.V(1).Info("listed zone records", "zone", zone, "count", len(ids))
	return ids, nil
}

func (a *CloudFlareDNS) GetRecord(ctx context.Context, zone, id string) (Record, error) {
	rc, err := a.zone(zone)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrRemoteUnavailable, err)
	}

	rec, err := a.api.GetDNSRecord(ctx, rc, id)
	if err != nil {
		return Record{}, fmt.Errorf("%w: fetching record %s of %q: %w", ErrRemoteUnavailable, id, zone, err)
	}

	return cfToRecord(zone, rec)
}

func (a *CloudFlareDNS) CreateRecord(ctx context.Context, zone string, rtype RecordType, subDomain, target string) error {
	rc, err := a.zone(zone)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRemoteWriteFailed, err)
	}

	params := cloudflare.CreateDNSRecordParams{
		Type:    rtype.String(),
		Name:    fqdn(zone, subDomain),
		Content: target,
	}

	a.log.V(1).Info("creating record", "zone", zone, "type", rtype, "name", params.Name, "target", target)
	if _, err = a.api.CreateDNSRecord(ctx, rc, params); err != nil {
		return fmt.Errorf("%w: creating %s record %q: %w", ErrRemoteWriteFailed, rtype, params.Name, err)
	}

	return nil
}

func (a *CloudFlareDNS) DeleteRecord(ctx context.Context, zone, id string) error {
	rc, err := a.zone(zone)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRemoteWriteFailed, err)
	}

	a.log.V(1).Info("deleting record", "zone", zone, "id", id)
	if err = a.api.DeleteDNSRecord(ctx, rc, id); err != nil {
		return fmt.Errorf("%w: deleting record %s: %w", ErrRemoteWriteFailed, id, err)
	}

	return nil
}

// RefreshZone is a no-op: Cloudflare publishes record changes as they are
// made.
func (a *CloudFlareDNS) RefreshZone(_ context.Context, zone string) error {
	a.log.V(1).Info("zone refresh not needed", "zone", zone)
	return nil
}

func (a *CloudFlareDNS) zone(zoneName string) (*cloudflare.ResourceContainer, error) {
	if a.api == nil {
		if a.token == "" {
			return nil, ErrInvalidToken
		}

		api, err := cfAPI(a.token)
		if err != nil {
			return nil, err
		}
		a.api = api
	}

	id, ok := a.zoneIDs[zoneName]
	if !ok {
		var err error
		if id, err = a.api.ZoneIDByName(zoneName); err != nil {
			return nil, fmt.Errorf("resolving zone %q: %w", zoneName, err)
		}
		a.zoneIDs[zoneName] = id
	}

	return cloudflare.ZoneIdentifier(id), nil
}

func cfToRecord(zone string, r cloudflare.DNSRecord) (Record, error) {
	if r.ID == "" || r.Type == "" || r.Name == "" {
		return Record{}, fmt.Errorf("%w: record %q lacks id, type or name", ErrMalformedRecord, r.Name)
	}

	return Record{
		ID:        r.ID,
		SubDomain: subDomainOf(zone, r.Name),
		Type:      RecordType(r.Type),
		Target:    r.Content,
	}, nil
}

func cfAPI(tok string) (*cloudflare.API, error) {
	return cloudflare.NewWithAPIToken(
		tok,
		cloudflare.UserAgent("zone-helper"))
}

// subDomainOf strips the zone suffix from a fully qualified name.
func subDomainOf(zone, name string) string {
	zone = strings.TrimSuffix(strings.ToLower(zone), ".")
	name = strings.TrimSuffix(name, ".")

	if strings.EqualFold(name, zone) {
		return ""
	}

	if len(name) > len(zone)+1 && strings.EqualFold(name[len(name)-len(zone)-1:], "."+zone) {
		return name[:len(name)-len(zone)-1]
	}

	return name
}

func fqdn(zone, subDomain string) string {
	if subDomain == "" {
		return zone
	}

	return subDomain + "." + zone
}
