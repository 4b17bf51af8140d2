package intakekit

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// sniffLen is how many leading bytes are read for content sniffing
const sniffLen = 3072

// OpenFunc opens the content of a selected file for reading
type OpenFunc func() (io.ReadCloser, error)

// SelectedFile describes a file a user picked or dropped. The content
// source is optional; without one the file can be validated and described
// but not previewed.
type SelectedFile struct {
	// Name is the base name of the file as the user saw it
	Name string

	// Size is the file size in bytes
	Size int64

	// MIMEType is the declared or sniffed media type, possibly empty
	MIMEType string

	open OpenFunc
}

// NewFile creates a metadata-only SelectedFile
func NewFile(name string, size int64, mimeType string) SelectedFile {
	if size < 0 {
		size = 0
	}
	return SelectedFile{Name: name, Size: size, MIMEType: mimeType}
}

// WithContent returns a copy of the file that reads its bytes from open
func (f SelectedFile) WithContent(open OpenFunc) SelectedFile {
	f.open = open
	return f
}

// HasContent reports whether the file carries a content source
func (f SelectedFile) HasContent() bool {
	return f.open != nil
}

// Open opens the file content
func (f SelectedFile) Open() (io.ReadCloser, error) {
	if f.open == nil {
		return nil, &IntakeError{Op: "open", Name: f.Name, Err: ErrNoContent}
	}
	return f.open()
}

// FileFromBytes creates a SelectedFile backed by an in-memory buffer. When
// mimeType is empty the type is sniffed from data.
func FileFromBytes(name string, data []byte, mimeType string) SelectedFile {
	if mimeType == "" {
		head := data
		if len(head) > sniffLen {
			head = head[:sniffLen]
		}
		mimeType = GuessContentType(name, head)
	}
	f := NewFile(name, int64(len(data)), mimeType)
	return f.WithContent(func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// FileFromPath creates a SelectedFile from a file on disk, sniffing its type
// from the leading bytes
func FileFromPath(path string) (SelectedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return SelectedFile{}, &IntakeError{Op: "stat", Name: path, Err: err}
	}
	if info.IsDir() {
		return SelectedFile{}, &IntakeError{Op: "stat", Name: path, Err: fmt.Errorf("is a directory")}
	}

	head, err := readHead(func() (io.ReadCloser, error) { return os.Open(path) })
	if err != nil {
		return SelectedFile{}, &IntakeError{Op: "sniff", Name: path, Err: err}
	}

	name := filepath.Base(path)
	f := NewFile(name, info.Size(), GuessContentType(name, head))
	return f.WithContent(func() (io.ReadCloser, error) {
		return os.Open(path)
	}), nil
}

// FileFromHeader creates a SelectedFile from a multipart form upload. The
// declared Content-Type is kept unless it is missing or generic, in which
// case the content is sniffed.
func FileFromHeader(fh *multipart.FileHeader) (SelectedFile, error) {
	open := func() (io.ReadCloser, error) { return fh.Open() }

	mimeType := baseMediaType(fh.Header.Get("Content-Type"))
	if mimeType == "" || mimeType == MIMETypeOctetStream {
		head, err := readHead(open)
		if err != nil {
			return SelectedFile{}, &IntakeError{Op: "sniff", Name: fh.Filename, Err: err}
		}
		mimeType = GuessContentType(fh.Filename, head)
	}

	f := NewFile(filepath.Base(fh.Filename), fh.Size, mimeType)
	return f.WithContent(open), nil
}

func readHead(open OpenFunc) ([]byte, error) {
	rc, err := open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(rc, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf[:n], nil
}
