package errors

// ValidateContent validates content before it is handed to the encoder.
//
// The rules are deliberately permissive: codes can carry arbitrary text,
// including whitespace, control characters and any Unicode, so only the
// cases no encoder can serve are rejected:
//   - Empty content
//   - Content longer than maxLen bytes, when maxLen is positive
//
// Capacity limits of a concrete code version are enforced by the encoder
// itself, not here.
func ValidateContent(content string, maxLen int) error {
	if content == "" {
		return New(ErrCodeInvalidInput, "content must not be empty")
	}

	if maxLen > 0 && len(content) > maxLen {
		return New(ErrCodeInvalidInput, "content length %d exceeds the limit of %d bytes", len(content), maxLen)
	}

	return nil
}

// ValidateQuietZone validates a quiet-zone thickness in pixels.
func ValidateQuietZone(pixels int) error {
	if pixels < 0 {
		return New(ErrCodeInvalidInput, "quiet zone must be non-negative, got %d", pixels)
	}
	return nil
}

// ValidatePNGSize validates the edge length of PNG output in pixels.
func ValidatePNGSize(pixels int) error {
	if pixels <= 0 {
		return New(ErrCodeInvalidInput, "png size must be positive, got %d", pixels)
	}
	return nil
}
