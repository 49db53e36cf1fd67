package services

import "errors"

var (
	ErrUnknownPlatform = errors.New("unknown platform")
	ErrParsingFailed   = errors.New("failed to parse settlement file")
	ErrStorageFailed   = errors.New("storage operation failed")
	ErrMetricsNotFound = errors.New("no metrics stored for platform")
)
