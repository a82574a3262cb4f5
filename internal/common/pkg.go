package common

// UnknownStr is the fallback string for unrecognized enum values.
const UnknownStr = "unknown"
