package constant

// Archive endpoints and wire conventions.
const (
	// ArchiveBaseURL is the default archive host.
	ArchiveBaseURL = "https://archive.org"

	// SearchCallback names the JSONP wrapper requested from the search endpoint.
	SearchCallback = "archiverCallback"

	// SearchRows is deliberately oversized so one request returns a whole collection.
	SearchRows = 1_000_000
)
