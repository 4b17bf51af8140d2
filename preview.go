package intakekit

import (
	"encoding/base64"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
)

// PreviewURLScheme prefixes every preview URL
const PreviewURLScheme = "blob:intake/"

// Previews is a registry of live preview handles, the counterpart of a
// browser's object-URL table. Handles resolve through it until released.
type Previews struct {
	mu       sync.RWMutex
	handles  map[string]*PreviewHandle
	maxBytes int64
}

// NewPreviews creates a registry. maxBytes caps how much of a file is held
// in memory for previewing; zero or negative means no cap.
func NewPreviews(maxBytes int64) *Previews {
	return &Previews{
		handles:  make(map[string]*PreviewHandle),
		maxBytes: maxBytes,
	}
}

// Acquire creates a preview handle for image files. For any other type it
// returns nil and false, and the caller shows metadata only. The caller owns
// the handle and must Release it.
func (r *Previews) Acquire(file SelectedFile) (*PreviewHandle, bool, error) {
	if !IsImageFile(file.MIMEType) {
		return nil, false, nil
	}
	if r.maxBytes > 0 && file.Size > r.maxBytes {
		return nil, false, &IntakeError{Op: "preview", Name: file.Name, Err: ErrPreviewTooLarge}
	}

	rc, err := file.Open()
	if err != nil {
		return nil, false, err
	}
	defer rc.Close()

	var src io.Reader = rc
	if r.maxBytes > 0 {
		src = io.LimitReader(rc, r.maxBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, false, &IntakeError{Op: "preview", Name: file.Name, Err: err}
	}
	if r.maxBytes > 0 && int64(len(data)) > r.maxBytes {
		return nil, false, &IntakeError{Op: "preview", Name: file.Name, Err: ErrPreviewTooLarge}
	}

	h := &PreviewHandle{
		url:      PreviewURLScheme + uuid.NewString(),
		name:     file.Name,
		mimeType: file.MIMEType,
		data:     data,
		digest:   ContentDigest(data),
		registry: r,
	}

	r.mu.Lock()
	r.handles[h.url] = h
	r.mu.Unlock()

	return h, true, nil
}

// Resolve returns the bytes and MIME type behind a live preview URL
func (r *Previews) Resolve(url string) ([]byte, string, bool) {
	r.mu.RLock()
	h, ok := r.handles[url]
	r.mu.RUnlock()
	if !ok {
		return nil, "", false
	}
	data, err := h.Bytes()
	if err != nil {
		return nil, "", false
	}
	return data, h.mimeType, true
}

// Live returns the number of handles that have not been released
func (r *Previews) Live() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}

func (r *Previews) revoke(url string) {
	r.mu.Lock()
	delete(r.handles, url)
	r.mu.Unlock()
}

// WithPreview acquires a preview for file, passes it to fn and releases it
// when fn returns. fn receives nil for files that have no preview.
func WithPreview(r *Previews, file SelectedFile, fn func(*PreviewHandle) error) error {
	h, _, err := r.Acquire(file)
	if err != nil {
		return err
	}
	if h != nil {
		defer h.Release()
	}
	return fn(h)
}

// PreviewHandle is a revocable reference to a selected image's bytes
type PreviewHandle struct {
	url      string
	name     string
	mimeType string
	data     []byte
	digest   string
	registry *Previews

	mu        sync.Mutex
	released  bool
	callbacks []func()
}

// URL returns the blob URL the handle resolves under
func (h *PreviewHandle) URL() string {
	return h.url
}

// Name returns the name of the previewed file
func (h *PreviewHandle) Name() string {
	return h.name
}

// MIMEType returns the media type of the previewed file
func (h *PreviewHandle) MIMEType() string {
	return h.mimeType
}

// Digest returns the xxHash64 of the previewed bytes
func (h *PreviewHandle) Digest() string {
	return h.digest
}

// Bytes returns the previewed content while the handle is live
func (h *PreviewHandle) Bytes() ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return nil, &IntakeError{Op: "preview", Name: h.name, Err: ErrPreviewReleased}
	}
	return h.data, nil
}

// DataURI renders the content as a data: URI usable directly as an image source
func (h *PreviewHandle) DataURI() (string, error) {
	data, err := h.Bytes()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:%s;base64,%s", h.mimeType, base64.StdEncoding.EncodeToString(data)), nil
}

// Released reports whether the handle has been released
func (h *PreviewHandle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

// OnRelease registers a callback run once when the handle is released. If
// the handle is already released the callback runs immediately.
func (h *PreviewHandle) OnRelease(callback func()) (unregister func()) {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		callback()
		return func() {}
	}
	h.callbacks = append(h.callbacks, callback)
	index := len(h.callbacks) - 1
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if index < len(h.callbacks) {
			h.callbacks[index] = nil
		}
	}
}

// Release revokes the handle's URL and drops its bytes. Safe to call more than once.
func (h *PreviewHandle) Release() {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.released = true
	h.data = nil
	callbacks := h.callbacks
	h.callbacks = nil
	h.mu.Unlock()

	h.registry.revoke(h.url)

	for _, cb := range callbacks {
		if cb != nil {
			cb()
		}
	}
}
