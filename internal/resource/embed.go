package resource

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif" // registers GIF so recompression can identify and skip it
	_ "image/jpeg"
	"image/png"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zeebo/blake3"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// losslessFormats are decoded formats that can be re-encoded as PNG
// without losing information.
var losslessFormats = map[string]bool{
	"png":  true,
	"bmp":  true,
	"tiff": true,
}

// mustConvert are formats browsers do not render, so they are always
// converted to PNG when recompressing.
var mustConvert = map[string]bool{
	"bmp":  true,
	"tiff": true,
}

type cacheKey struct {
	sum      [32]byte
	compress bool
}

// Cache embeds local images as data URIs, keyed by content hash.
// Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]string
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]string)}
}

// Len returns the number of distinct embedded images.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Embed reads the file at path and returns it as a base64 data URI,
// optionally recompressed losslessly first.
func (c *Cache) Embed(path string, compress bool) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path resolved from the document's own sources
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRead, path, err)
	}

	key := cacheKey{sum: blake3.Sum256(data), compress: compress}

	c.mu.Lock()
	if uri, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return uri, nil
	}
	c.mu.Unlock()

	// Encoding runs outside the lock; two workers racing on the same image
	// produce identical URIs, so the second store is harmless.
	mimeType := DetectMIME(path, data)
	if compress {
		data, mimeType = Recompress(data, mimeType)
	}
	uri := DataURI(mimeType, data)

	c.mu.Lock()
	c.entries[key] = uri
	c.mu.Unlock()

	return uri, nil
}

// DataURI encodes data as a base64 data URI.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DetectMIME guesses the media type from the extension, falling back to
// content sniffing.
func DetectMIME(path string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); t != "" {
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = t[:i]
		}
		return t
	}
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return "image/svg+xml"
	}
	return http.DetectContentType(data)
}

// Recompress re-encodes lossless raster images as maximally compressed PNG.
// The original bytes are kept when they cannot be decoded, when the format
// is lossy (JPEG, WebP, GIF) or when re-encoding does not shrink a PNG.
func Recompress(data []byte, mimeType string) ([]byte, string) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil || !losslessFormats[format] {
		return data, mimeType
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return data, mimeType
	}

	if mustConvert[format] || buf.Len() < len(data) {
		return buf.Bytes(), "image/png"
	}
	return data, mimeType
}
