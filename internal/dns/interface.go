package dns

import (
	"context"
	"errors"
)

var (
	ErrRemoteUnavailable = errors.New("remote zone unavailable")
	ErrMalformedRecord   = errors.New("malformed zone record")
	ErrRemoteWriteFailed = errors.New("remote zone write failed")
	ErrUnknownProvider   = errors.New("unknown dns provider")
)

// ZoneClient is the narrow view of a registrar API the zone engine works
// through. The client must already be authorized for the record and refresh
// endpoints of the zone.
type ZoneClient interface {
	ListRecordIDs(ctx context.Context, zone string) ([]string, error)
	GetRecord(ctx context.Context, zone, id string) (Record, error)
	CreateRecord(ctx context.Context, zone string, rtype RecordType, subDomain, target string) error
	DeleteRecord(ctx context.Context, zone, id string) error
	RefreshZone(ctx context.Context, zone string) error
}

type RecordType string

func (r RecordType) String() string { return string(r) }

const (
	RecordTypeA     = RecordType("A")
	RecordTypeAAAA  = RecordType("AAAA")
	RecordTypeCNAME = RecordType("CNAME")
	RecordTypeMX    = RecordType("MX")
	RecordTypeNS    = RecordType("NS")
	RecordTypeSRV   = RecordType("SRV")
	RecordTypeTXT   = RecordType("TXT")
)

// Record is one resource record of a zone. SubDomain is relative to the zone,
// the empty string being the apex.
type Record struct {
	ID        string     `json:"id" yaml:"id"`
	SubDomain string     `json:"subDomain" yaml:"subDomain"`
	Type      RecordType `json:"type" yaml:"type"`
	Target    string     `json:"target" yaml:"target"`
}

// Provider names accepted by the provider setting.
const (
	ProviderOVH        = "ovh"
	ProviderCloudflare = "cloudflare"
)
