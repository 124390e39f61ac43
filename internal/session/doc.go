// Package session tracks wireless adb sessions.
//
// ParseStatus turns the text printed by "adb devices" into Records. Only
// entries whose serial contains a colon (IP:port) are kept; USB devices and
// emulators are ignored. Manager builds on ParseStatus to clean up stale
// sessions and to answer "is this target connected?" both before and after
// a connect attempt.
//
// Nothing is cached: every Manager call lists sessions again, because the
// adb server's connection table can change between calls.
package session
