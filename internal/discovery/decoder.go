package discovery

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/muurk/adb-autoconnect/internal/address"
)

const (
	// ServiceType is the mDNS service type for wireless debugging connect
	// endpoints (Android 11+)
	ServiceType = "_adb-tls-connect._tcp"

	// ServiceDomain is the mDNS domain
	ServiceDomain = "local."
)

// countPattern matches the "(N)" instance count adb appends to repeated names
var countPattern = regexp.MustCompile(`\((\d+)\)`)

// Decode parses an mDNS service listing into ranked, de-duplicated
// addresses.
func Decode(text string) []address.Address {
	candidates := DecodeCandidates(text)
	if len(candidates) == 0 {
		return nil
	}

	addrs := make([]address.Address, len(candidates))
	for i, c := range candidates {
		addrs[i] = c.Address
	}
	return addrs
}

// DecodeCandidates is Decode without dropping the per-line details.
func DecodeCandidates(text string) []Candidate {
	best := make(map[address.Address]Candidate)

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || !strings.Contains(line, ServiceType) {
			continue
		}

		c, ok := parseLine(line, i)
		if !ok {
			continue
		}

		if existing, seen := best[c.Address]; !seen || c.outranks(existing) {
			best[c.Address] = c
		}
	}

	candidates := make([]Candidate, 0, len(best))
	for _, c := range best {
		candidates = append(candidates, c)
	}

	slices.SortFunc(candidates, func(a, b Candidate) int {
		if a.outranks(b) {
			return -1
		}
		if b.outranks(a) {
			return 1
		}
		return 0
	})

	return candidates
}

// parseLine extracts a candidate from one service line.
func parseLine(line string, order int) (Candidate, bool) {
	c := Candidate{SourceOrder: order}

	var haveAddr, haveCount bool
	for _, token := range strings.Fields(line) {
		if !haveCount {
			if m := countPattern.FindStringSubmatch(token); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil {
					c.InstanceCount = n
					haveCount = true
				}
				continue
			}
		}

		if addr, ok := address.Parse(token); ok {
			if !haveAddr {
				c.Address = addr
				haveAddr = true
			}
			continue
		}

		if c.ServiceName == "" && !strings.Contains(token, ServiceType) {
			c.ServiceName = token
		}
	}

	return c, haveAddr
}
