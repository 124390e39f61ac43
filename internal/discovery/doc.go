// Package discovery finds wireless adb endpoints advertised over mDNS.
//
// Android devices with Wireless debugging enabled advertise an
// "_adb-tls-connect._tcp" service. This package turns a text listing of
// those services into a ranked list of addresses and repeats the listing
// until something shows up or a deadline passes.
//
// # Decoding
//
// Decode accepts the output of "adb mdns services". Each line that names
// the service type is split on whitespace; the first token that is a valid
// IPv4:port endpoint becomes the address and an optional "(N)" token gives
// the instance count. Duplicate addresses keep the highest count, earliest
// line first on ties. The result is ordered by count descending, then by
// position in the text.
//
// # Sources
//
// A Source produces one listing per call. SourceFunc adapts
// adb.Client.MDNSServices; ZeroconfSource browses the network directly
// with grandcat/zeroconf and renders the answers in the same line format,
// so both feed the same decoder.
//
// # Polling
//
// Poller calls the source, decodes, and returns as soon as the list is
// non-empty. Otherwise it sleeps Interval (1s by default) and tries again
// until the timeout, measured from the first call, has elapsed. The clock
// is injectable so tests run without real waiting.
//
// # Usage Example
//
//	poller := discovery.NewPoller(discovery.SourceFunc(client.MDNSServices), logger)
//	targets, err := poller.Poll(ctx, 15*time.Second)
//	if err != nil {
//	    return err
//	}
//	if len(targets) == 0 {
//	    return discovery.ErrNoTargets
//	}
package discovery
