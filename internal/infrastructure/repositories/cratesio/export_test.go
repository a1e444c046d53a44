package cratesio

// ParseVersions exports parseVersions for testing.
var ParseVersions = parseVersions //nolint:gochecknoglobals // test export

// TruncateTimestamp exports truncateTimestamp for testing.
var TruncateTimestamp = truncateTimestamp //nolint:gochecknoglobals // test export
