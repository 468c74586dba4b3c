package domain

import "errors"

// ErrExportUnavailable signals a transient rendering failure. Callers may
// retry the export; the order snapshot itself is intact.
var ErrExportUnavailable = errors.New("invoice export unavailable")
