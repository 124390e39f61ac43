package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"
)

// DefaultBrowseWindow is how long one ZeroconfSource listing listens for
// answers. It matches the poll interval so a full poll cycle stays near 2s.
const DefaultBrowseWindow = 1 * time.Second

// listingHeader mirrors the first line adb prints
const listingHeader = "List of discovered mdns services"

// ZeroconfSource browses for wireless adb services without going through
// the adb server. Each call renders the answers it collected in the
// "adb mdns services" line format.
type ZeroconfSource struct {
	// Window is the listening time per call
	Window time.Duration

	logger *zap.Logger
}

// NewZeroconfSource creates a source with the default browse window.
func NewZeroconfSource(logger *zap.Logger) *ZeroconfSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZeroconfSource{
		Window: DefaultBrowseWindow,
		logger: logger,
	}
}

// Services browses for one window and returns the rendered listing.
func (s *ZeroconfSource) Services(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Window)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return "", fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	collector := newEntryCollector(entries)

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return "", fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	snapshot := collector.snapshot()

	s.logger.Debug("zeroconf browse finished",
		zap.Int("entries", len(snapshot)),
		zap.Duration("window", s.Window),
	)

	return renderEntries(snapshot), nil
}

// entryCollector drains a browse channel until the resolver closes it.
// It keeps reading after the browse window so a late answer never blocks
// the resolver's send.
type entryCollector struct {
	mu      sync.Mutex
	entries []*zeroconf.ServiceEntry
}

func newEntryCollector(entries <-chan *zeroconf.ServiceEntry) *entryCollector {
	c := &entryCollector{}
	go func() {
		for entry := range entries {
			c.mu.Lock()
			c.entries = append(c.entries, entry)
			c.mu.Unlock()
		}
	}()
	return c
}

// snapshot returns a copy of the entries received so far.
func (c *entryCollector) snapshot() []*zeroconf.ServiceEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*zeroconf.ServiceEntry(nil), c.entries...)
}

// renderEntries formats entries as "<instance>\t<service type>\t<ip>:<port>"
// lines, one per IPv4 address. Entries without IPv4 addresses are skipped.
func renderEntries(entries []*zeroconf.ServiceEntry) string {
	var b strings.Builder
	b.WriteString(listingHeader)
	b.WriteString("\n")

	for _, entry := range entries {
		if entry == nil || entry.Port == 0 {
			continue
		}
		for _, ip := range entry.AddrIPv4 {
			fmt.Fprintf(&b, "%s\t%s.\t%s:%d\n", entry.Instance, ServiceType, ip, entry.Port)
		}
	}

	return b.String()
}
