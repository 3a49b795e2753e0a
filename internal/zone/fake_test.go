package zone

import (
	"context"
	"errors"

	"github.com/tempusbreve/zone-helper/internal/dns"
)

var errBoom = errors.New("boom")

type createCall struct {
	Type      dns.RecordType
	SubDomain string
	Target    string
}

// fakeClient serves a fixed list of records and counts write calls.
type fakeClient struct {
	records []dns.Record

	listErr      error
	getErr       map[string]error
	createErr    map[string]error
	deleteErr    map[string]error
	refreshErr   error
	createCalls  []createCall
	deleteCalls  []string
	refreshCalls int
	getCalls     int
}

func (c *fakeClient) ListRecordIDs(ctx context.Context, zone string) ([]string, error) {
	if c.listErr != nil {
		return nil, c.listErr
	}

	var ids []string
	for _, rec := range c.records {
		ids = append(ids, rec.ID)
	}
	return ids, nil
}

func (c *fakeClient) GetRecord(ctx context.Context, zone, id string) (dns.Record, error) {
	c.getCalls++
	if err := c.getErr[id]; err != nil {
		return dns.Record{}, err
	}

	for _, rec := range c.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return dns.Record{}, errBoom
}

func (c *fakeClient) CreateRecord(ctx context.Context, zone string, rtype dns.RecordType, subDomain, target string) error {
	c.createCalls = append(c.createCalls, createCall{Type: rtype, SubDomain: subDomain, Target: target})
	return c.createErr[subDomain+"/"+rtype.String()]
}

func (c *fakeClient) DeleteRecord(ctx context.Context, zone, id string) error {
	c.deleteCalls = append(c.deleteCalls, id)
	return c.deleteErr[id]
}

func (c *fakeClient) RefreshZone(ctx context.Context, zone string) error {
	c.refreshCalls++
	return c.refreshErr
}

func rec(id, subDomain string, rtype dns.RecordType, target string) dns.Record {
	return dns.Record{ID: id, SubDomain: subDomain, Type: rtype, Target: target}
}

func mustBuild(client *fakeClient) *Index {
	idx, err := Build(context.Background(), client, "example.com")
	if err != nil {
		panic(err)
	}
	return idx
}
