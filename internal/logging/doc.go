// Package logging configures zap for adb-autoconnect and defines the
// output verbosity levels selected on the command line.
//
// # Levels
//
// The user-facing verbosity is one of four levels:
//   - silent: no output at all
//   - default: connection results and errors only
//   - info: discovery and connection progress
//   - verbose: everything, including the final adb devices listing
//
// FromFlags resolves the --silent, --verbose and --info flags with the
// priority silent > verbose > info > default.
//
// # Diagnostics
//
// Structured zap logs are separate from user-facing output and go to
// stderr. They are off unless ADB_AUTOCONNECT_LOG_LEVEL is set to debug,
// info, warn or error; --verbose turns them on at debug level. --silent
// always disables them.
//
//	logger, err := logging.New(level)
//	if err != nil {
//	    return err
//	}
//	defer logging.Sync(logger)
//
// There is no package-level logger. The *zap.Logger returned by New is
// passed to each component's constructor.
package logging
