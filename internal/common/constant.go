package common

import "time"

// DocumentsRoot prefixes the display path of every stored document.
const DocumentsRoot = "/documents"

// DefaultSessionLifetime is how long a freshly issued session stays valid.
const DefaultSessionLifetime = 24 * time.Hour

// MaxDocumentBytes bounds the size of a single uploaded or fetched document.
const MaxDocumentBytes = 8 << 20
