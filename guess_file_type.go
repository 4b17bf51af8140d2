package intakekit

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Common MIME types
const (
	MIMETypeImageJPEG      = "image/jpeg"
	MIMETypeImagePNG       = "image/png"
	MIMETypeImageGIF       = "image/gif"
	MIMETypeImageWebP      = "image/webp"
	MIMETypeApplicationPDF = "application/pdf"
	MIMETypeApplicationZip = "application/zip"
	MIMETypeOctetStream    = "application/octet-stream"
)

// Extensions the mime package does not know on every platform
var extensionToMIME = map[string]string{
	".jpg":  MIMETypeImageJPEG,
	".jpeg": MIMETypeImageJPEG,
	".png":  MIMETypeImagePNG,
	".gif":  MIMETypeImageGIF,
	".webp": MIMETypeImageWebP,
	".heic": "image/heic",
	".avif": "image/avif",
	".svg":  "image/svg+xml",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".csv":  "text/csv",
	".pdf":  MIMETypeApplicationPDF,
	".zip":  MIMETypeApplicationZip,
	".7z":   "application/x-7z-compressed",
	".rar":  "application/vnd.rar",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// GuessContentType determines the content type of a file from its name and
// leading bytes. Content sniffing wins over the extension, except when the
// content is too generic to say anything (octet-stream or plain text that
// the extension refines).
func GuessContentType(name string, head []byte) string {
	fromExt := TypeByExtension(name)

	if len(head) > 0 {
		sniffed := baseMediaType(mimetype.Detect(head).String())
		switch {
		case sniffed == MIMETypeOctetStream && fromExt != "":
			return fromExt
		case sniffed == "text/plain" && fromExt != "":
			return fromExt
		case sniffed == MIMETypeApplicationZip && fromExt != "" && fromExt != MIMETypeApplicationZip:
			// Office formats are zip containers; trust the extension to
			// tell them apart when the sniffer stops at the container.
			return fromExt
		default:
			return sniffed
		}
	}

	if fromExt != "" {
		return fromExt
	}
	return MIMETypeOctetStream
}

// TypeByExtension returns the MIME type registered for a file name's
// extension, or an empty string when it is unknown
func TypeByExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	if contentType, ok := extensionToMIME[ext]; ok {
		return contentType
	}
	return baseMediaType(mime.TypeByExtension(ext))
}

// IsImageFile returns true if the file is an image file based on its MIME type
func IsImageFile(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "image/")
}

// baseMediaType strips parameters such as charset from a content type
func baseMediaType(contentType string) string {
	base, _, _ := strings.Cut(contentType, ";")
	return strings.TrimSpace(base)
}
