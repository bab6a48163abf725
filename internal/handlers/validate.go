package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for account fields. Post and comment content rules
// live in the blog package; these cover what the handlers parse themselves.
const (
	maxEmailLen       = 254
	minPasswordLen    = 8
	maxPasswordLen    = 200
	maxDisplayNameLen = 100
	maxBioLen         = 2_000
	maxImageBytes     = 2 << 20 // 2 MiB for avatars and cover images
)

// validateRegistration checks signup inputs and returns the first error found.
func validateRegistration(email, password, displayName string) string {
	if email == "" {
		return "Email is required."
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return "Email is too long."
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return "Email address is not valid."
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "Password must be at least 8 characters."
	}
	if utf8.RuneCountInString(password) > maxPasswordLen {
		return "Password is too long."
	}
	if displayName == "" {
		return "Display name is required."
	}
	if utf8.RuneCountInString(displayName) > maxDisplayNameLen {
		return "Display name is too long (max 100 characters)."
	}
	return ""
}

// validateBio checks the profile bio field.
func validateBio(bio string) string {
	if utf8.RuneCountInString(bio) > maxBioLen {
		return "Bio is too long (max 2,000 characters)."
	}
	return ""
}

// allowedImageTypes are the MIME types accepted for uploaded images.
var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// validateImage checks an uploaded image blob and its declared MIME type.
func validateImage(data []byte, mimeType string) string {
	if len(data) == 0 {
		return "Image data is required."
	}
	if len(data) > maxImageBytes {
		return "Image is too large (max 2 MiB)."
	}
	if !allowedImageTypes[mimeType] {
		return "Unsupported image type."
	}
	return ""
}
