package zone

import "github.com/tempusbreve/zone-helper/internal/dns"

// Resolve returns the addresses published for hostName. When several records
// of one type exist the last one in index order wins. Unknown names resolve
// to empty strings.
func Resolve(idx *Index, hostName string) (ipv4, ipv6 string) {
	if idx == nil {
		return "", ""
	}

	for _, rec := range idx.records[hostName] {
		switch rec.Type {
		case dns.RecordTypeA:
			ipv4 = rec.Target
		case dns.RecordTypeAAAA:
			ipv6 = rec.Target
		}
	}

	return ipv4, ipv6
}
