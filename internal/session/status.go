package session

import (
	"bufio"
	"strings"

	"github.com/muurk/adb-autoconnect/internal/address"
)

// State is the connection state adb reports for a session.
type State int

const (
	// StateUnknown covers every keyword not listed below
	StateUnknown State = iota
	// StateConnected is reported by adb as "device"
	StateConnected
	// StateOffline is reported as "offline"
	StateOffline
	// StateUnauthorized is reported as "unauthorized"
	StateUnauthorized
)

// String returns the adb keyword for the state
func (s State) String() string {
	switch s {
	case StateConnected:
		return "device"
	case StateOffline:
		return "offline"
	case StateUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Stale reports whether a session in this state should be disconnected.
func (s State) Stale() bool {
	return s == StateOffline || s == StateUnauthorized
}

// ParseState maps an adb state keyword to a State.
func ParseState(keyword string) State {
	switch keyword {
	case "device":
		return StateConnected
	case "offline":
		return StateOffline
	case "unauthorized":
		return StateUnauthorized
	default:
		return StateUnknown
	}
}

// Record is one wireless session from an "adb devices" listing.
type Record struct {
	Address address.Address
	State   State
}

const headerPrefix = "List of"

// ParseStatus parses "adb devices" output into wireless session records.
//
// Blank lines and the "List of devices attached" header are skipped. The
// first whitespace-separated field is the serial and the second the state.
// Serials without a colon are USB or emulator devices and are dropped. A
// serial with a colon that is not a valid IPv4:port endpoint (mDNS service
// names, IPv6) is dropped too, since only validated addresses may leave the
// parser.
func ParseStatus(text string) []Record {
	var records []Record

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, headerPrefix) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		serial := fields[0]
		if !strings.Contains(serial, ":") {
			continue
		}

		addr, ok := address.Parse(serial)
		if !ok {
			continue
		}

		records = append(records, Record{
			Address: addr,
			State:   ParseState(fields[1]),
		})
	}

	return records
}

// Find returns the record for addr, if present.
func Find(records []Record, addr address.Address) (Record, bool) {
	for _, r := range records {
		if r.Address == addr {
			return r, true
		}
	}
	return Record{}, false
}
