// Package urls holds the documentation links printed in hints and
// troubleshooting output, so they can be updated in one place.
package urls
