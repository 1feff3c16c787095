// Package storage provides object storage access and upload validation.
package storage

import (
	"fmt"
	"strings"
)

// MaxUploadSize is the hard ceiling for any uploaded file.
const MaxUploadSize int64 = 50 * 1024 * 1024

// allowedContentTypes is the MIME allow-list for uploads. Parameters
// are stripped and the comparison is case-insensitive.
var allowedContentTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"text/plain": true,
	"text/csv":   true,
	"audio/mpeg": true,
	"audio/wav":  true,
	"video/mp4":  true,
	"video/webm": true,
}

// blockedExtensions rejects executable and server-side script files no
// matter what MIME type the client claims.
var blockedExtensions = map[string]bool{
	".exe": true, ".bat": true, ".cmd": true, ".com": true, ".msi": true,
	".scr": true, ".pif": true, ".vbs": true, ".vbe": true, ".js": true,
	".jse": true, ".wsf": true, ".wsh": true, ".ps1": true, ".sh": true,
	".bash": true, ".csh": true, ".ksh": true, ".php": true, ".asp": true,
	".aspx": true, ".jsp": true, ".py": true, ".rb": true, ".pl": true,
	".cgi": true, ".htaccess": true, ".htpasswd": true,
}

// Result is the outcome of upload validation.
type Result struct {
	Valid bool
	Error string
}

// ValidateUpload checks an upload candidate before any storage work.
// Checks run in a fixed order and stop at the first failure: size,
// MIME allow-list, extension deny-list, path traversal, NUL bytes.
func ValidateUpload(filename, mimeType string, size int64) Result {
	if size <= 0 || size > MaxUploadSize {
		return Result{Error: fmt.Sprintf("arquivo deve ter entre 1 byte e %d MB", MaxUploadSize/(1024*1024))}
	}

	if normalized := normalizeContentType(mimeType); !allowedContentTypes[normalized] {
		return Result{Error: fmt.Sprintf("tipo de arquivo não permitido: %s", normalized)}
	}

	if blockedExtensions[extensionOf(filename)] {
		return Result{Error: "extensão de arquivo não permitida"}
	}

	if strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		return Result{Error: "nome de arquivo inválido"}
	}

	if strings.ContainsRune(filename, 0) {
		return Result{Error: "nome de arquivo inválido"}
	}

	return Result{Valid: true}
}

// normalizeContentType lowers the type and drops parameters such as
// "; charset=utf-8".
func normalizeContentType(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// extensionOf returns the lower-cased extension from the last dot,
// including dotfiles like .htaccess.
func extensionOf(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(filename[idx:])
}
