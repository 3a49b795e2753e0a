package dns

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/ovh/go-ovh/ovh"
)

// OVH talks to the /domain/zone endpoints of the OVH API.
type OVH struct {
	api *ovh.Client
	log logr.Logger
}

func WithOVHClient(api *ovh.Client) func(*OVH) {
	return func(o *OVH) { o.api = api }
}

func WithOVHLogger(log logr.Logger) func(*OVH) {
	return func(o *OVH) { o.log = log }
}

func NewOVH(options ...func(*OVH)) *OVH {
	o := &OVH{log: logr.Discard()}

	for _, fn := range options {
		fn(o)
	}

	return o
}

// NewOVHAPI builds an OVH API client. When no credentials are given the
// client falls back to ovh.conf and the OVH_* environment variables.
func NewOVHAPI(endpoint, appKey, appSecret, consumerKey string) (*ovh.Client, error) {
	if appKey == "" && appSecret == "" && consumerKey == "" {
		if endpoint == "" {
			return ovh.NewDefaultClient()
		}
		return ovh.NewEndpointClient(endpoint)
	}

	if endpoint == "" {
		endpoint = ovh.OvhEU
	}

	return ovh.NewClient(endpoint, appKey, appSecret, consumerKey)
}

// ZoneAccessRules adds the rules needed by the zone record and refresh
// endpoints to a consumer key request.
func ZoneAccessRules(ck *ovh.CkRequest) {
	ck.AddRules([]string{http.MethodGet, http.MethodPost}, "/domain/zone/*/record")
	ck.AddRules([]string{http.MethodGet, http.MethodDelete}, "/domain/zone/*/record/*")
	ck.AddRule(http.MethodPost, "/domain/zone/*/refresh")
}

type ovhRecord struct {
	ID        *int64  `json:"id"`
	FieldType *string `json:"fieldType"`
	SubDomain *string `json:"subDomain"`
	Target    *string `json:"target"`
	Zone      string  `json:"zone,omitempty"`
	TTL       int     `json:"ttl,omitempty"`
}

type ovhCreateRecord struct {
	FieldType string `json:"fieldType"`
	SubDomain string `json:"subDomain"`
	Target    string `json:"target"`
}

func (o *OVH) ListRecordIDs(ctx context.Context, zone string) ([]string, error) {
	var ids []int64
	if err := o.api.GetWithContext(ctx, recordsPath(zone), &ids); err != nil {
		return nil, fmt.Errorf("%w: listing records of %q: %w", ErrRemoteUnavailable, zone, err)
	}

	res := make([]string, 0, len(ids))
	for _, id := range ids {
		res = append(res, strconv.FormatInt(id, 10))
	}

	o.log.V(1).Info("listed zone records", "zone", zone, "count", len(res))
	return res, nil
}

func (o *OVH) GetRecord(ctx context.Context, zone, id string) (Record, error) {
	var rec ovhRecord
	if err := o.api.GetWithContext(ctx, recordPath(zone, id), &rec); err != nil {
		return Record{}, fmt.Errorf("%w: fetching record %s of %q: %w", ErrRemoteUnavailable, id, zone, err)
	}

	return ovhToRecord(id, rec)
}

func (o *OVH) CreateRecord(ctx context.Context, zone string, rtype RecordType, subDomain, target string) error {
	body := ovhCreateRecord{
		FieldType: rtype.String(),
		SubDomain: subDomain,
		Target:    target,
	}

	o.log.V(1).Info("creating record", "zone", zone, "type", rtype, "subDomain", subDomain, "target", target)
	if err := o.api.PostWithContext(ctx, recordsPath(zone), body, nil); err != nil {
		return fmt.Errorf("%w: creating %s record %q: %w", ErrRemoteWriteFailed, rtype, subDomain, err)
	}

	return nil
}

func (o *OVH) DeleteRecord(ctx context.Context, zone, id string) error {
	o.log.V(1).Info("deleting record", "zone", zone, "id", id)
	if err := o.api.DeleteWithContext(ctx, recordPath(zone, id), nil); err != nil {
		return fmt.Errorf("%w: deleting record %s: %w", ErrRemoteWriteFailed, id, err)
	}

	return nil
}

func (o *OVH) RefreshZone(ctx context.Context, zone string) error {
	o.log.V(1).Info("refreshing zone", "zone", zone)
	if err := o.api.PostWithContext(ctx, "/domain/zone/"+url.PathEscape(zone)+"/refresh", nil, nil); err != nil {
		return fmt.Errorf("%w: refreshing zone %q: %w", ErrRemoteWriteFailed, zone, err)
	}

	return nil
}

func ovhToRecord(id string, r ovhRecord) (Record, error) {
	var missing []string
	if r.ID == nil {
		missing = append(missing, "id")
	}
	if r.FieldType == nil {
		missing = append(missing, "fieldType")
	}
	if r.SubDomain == nil {
		missing = append(missing, "subDomain")
	}
	if r.Target == nil {
		missing = append(missing, "target")
	}
	if len(missing) > 0 {
		return Record{}, fmt.Errorf("%w: record %s is missing %v", ErrMalformedRecord, id, missing)
	}

	return Record{
		ID:        strconv.FormatInt(*r.ID, 10),
		SubDomain: *r.SubDomain,
		Type:      RecordType(*r.FieldType),
		Target:    *r.Target,
	}, nil
}

func recordsPath(zone string) string {
	return "/domain/zone/" + url.PathEscape(zone) + "/record"
}

func recordPath(zone, id string) string {
	return recordsPath(zone) + "/" + url.PathEscape(id)
}
