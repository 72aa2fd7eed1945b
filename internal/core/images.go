package core

// images.go holds uploaded profile pictures and their display handles.
//
// An Image is referenced by the draft and by records; it is never copied.
// Rendering a row needs a URL for the picture, so the ImageRegistry hands out
// an opaque handle per image. Rendering the same image again reuses its
// handle. Handles are released when the owning record is replaced or removed
// and all at once when the session ends, so repeated edits do not grow the
// registry without bound.

import (
	"errors"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ErrImageNotFound is returned for an unknown or released display handle.
var ErrImageNotFound = errors.New("image not found")

// Image is an uploaded profile picture.
type Image struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"-"`
}

// NewImage wraps uploaded bytes. The content type is sniffed for serving
// only; it plays no part in validation (see ValidateFile).
func NewImage(name string, data []byte) *Image {
	return &Image{
		Name:        name,
		ContentType: mimetype.Detect(data).String(),
		Data:        data,
	}
}

// Displayable reports whether the sniffed content is a raster image that a
// browser may render inline. SVG is excluded since it can carry script.
func (i *Image) Displayable() bool {
	if i == nil {
		return false
	}
	return strings.HasPrefix(i.ContentType, "image/") && !strings.Contains(i.ContentType, "svg")
}

// Size returns the image size in bytes.
func (i *Image) Size() int {
	if i == nil {
		return 0
	}
	return len(i.Data)
}

// ImageRegistry maps display handles to images.
type ImageRegistry struct {
	mu      sync.RWMutex
	byID    map[string]*Image
	handles map[*Image]string
}

// NewImageRegistry creates an empty registry.
func NewImageRegistry() *ImageRegistry {
	return &ImageRegistry{
		byID:    make(map[string]*Image),
		handles: make(map[*Image]string),
	}
}

// Acquire returns the display handle for img, creating one if needed.
// Returns "" for a nil image.
func (r *ImageRegistry) Acquire(img *Image) string {
	if img == nil {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.handles[img]; ok {
		return h
	}
	h := uuid.New().String()
	r.handles[img] = h
	r.byID[h] = img
	return h
}

// Lookup resolves a handle. Released handles are not found.
func (r *ImageRegistry) Lookup(handle string) (*Image, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	img, ok := r.byID[handle]
	return img, ok
}

// Release drops the handle of img, if any.
func (r *ImageRegistry) Release(img *Image) {
	if img == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.handles[img]; ok {
		delete(r.handles, img)
		delete(r.byID, h)
	}
}

// ReleaseAll drops every handle.
func (r *ImageRegistry) ReleaseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[string]*Image)
	r.handles = make(map[*Image]string)
}

// Len returns the number of live handles.
func (r *ImageRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
