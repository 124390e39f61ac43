// Package connect drives "adb connect" over a ranked list of targets.
//
// Two policies are provided, both strictly sequential:
//
//   - ConnectFirst walks the list until one target is connected and
//     verified, then stops. If none succeeds it returns
//     ErrNoTargetConnected.
//   - ConnectAll visits every target and records one Outcome each,
//     never stopping early.
//
// Targets that already have a healthy session are not reconnected. A
// connect that adb reports as successful is verified against a fresh
// session listing; if the device is not there the Outcome has Kind
// KindUnverified, which counts as a failure but keeps its own message.
package connect
