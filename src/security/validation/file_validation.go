package validation

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/username/salesfolio/backend/src/logger"
)

// ErrValidationFailed marks an upload rejected before parsing.
var ErrValidationFailed = errors.New("file validation failed")

// AllowedClientContentTypes lists the client-declared MIME types accepted for
// settlement uploads.
var AllowedClientContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"text/plain":               true,
	"application/vnd.ms-excel": true,
	"application/zip":          true,
	"application/octet-stream": true,
	"application/pdf":          false,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

// Detected types accepted by the magic-byte check. xlsx is a zip container;
// legacy xls has no signature known to http.DetectContentType.
var allowedDetectedTypes = map[string]bool{
	"text/plain":               true,
	"text/csv":                 true,
	"application/csv":          true,
	"application/zip":          true,
	"application/octet-stream": true,
}

// ValidateClientContentType checks the Content-Type header provided by the client.
func ValidateClientContentType(contentType string) error {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if allowed, exists := AllowedClientContentTypes[ct]; !exists || !allowed {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("%w: client-declared file type '%s' is not a spreadsheet", ErrValidationFailed, contentType)
	}
	return nil
}

// ValidateFileContentByMagicBytes checks the file signature and rewinds the
// reader. It returns the detected content type.
func ValidateFileContentByMagicBytes(file io.ReadSeeker) (string, error) {
	if file == nil {
		return "", fmt.Errorf("%w: file is nil", ErrValidationFailed)
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to reset file read pointer: %w", err)
	}
	if n == 0 {
		return "", fmt.Errorf("%w: file is empty", ErrValidationFailed)
	}

	detected := http.DetectContentType(buffer[:n])
	detected = strings.ToLower(strings.Split(detected, ";")[0])

	if !allowedDetectedTypes[detected] {
		logger.L.Warn("Disallowed detected file content type (magic bytes)", "detectedContentType", detected)
		return detected, fmt.Errorf("%w: detected file content type '%s' is not a spreadsheet", ErrValidationFailed, detected)
	}

	logger.L.Debug("File content type (magic bytes) validated", "detectedContentType", detected)
	return detected, nil
}
