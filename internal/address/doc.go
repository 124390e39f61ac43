// Package address validates wireless debug-bridge endpoints.
//
// An Address is a dotted-quad IPv4 address followed by a colon and a TCP
// port in the range 1-65535, for example "192.168.1.5:37123". Parse is the
// only way to obtain one; every other package treats Address values as
// already validated.
//
// Parse is a predicate, not a fallible operation: tokens that do not look
// like an endpoint simply yield ok == false. Callers scanning free-form
// text use it to pick endpoints out of surrounding noise.
package address
