package raster

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// ImageCache keeps decoded page images keyed by file path.
//
// Once a page is loaded, subsequent Load calls for the same path return the
// cached image without disk I/O. Rasters are not cached: they depend on the
// binarization threshold, and building one is cheap next to decoding.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Example Usage
//
//	cache := raster.NewImageCache()
//	r, err := cache.LoadRaster("/scans/page-004.png", raster.DefaultOptions())
//	if err != nil {
//	    return err
//	}
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the decoded image at path, reading it from disk on first use.
//
// Decoding goes through imaging.Open with EXIF auto-orientation, so scans
// taken by phones come out upright. PNG, JPEG, GIF, BMP and TIFF are
// supported. Different spellings of the same path are cached separately.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// LoadRaster loads the image at path and reduces it to a Gray raster.
func (c *ImageCache) LoadRaster(path string, opts Options) (*Gray, error) {
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	r, err := FromImage(img, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build raster for %s: %w", path, err)
	}
	return r, nil
}

// Evict removes one path from the cache.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Clear removes every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// PageInfo describes a loaded page image.
type PageInfo struct {
	// Width is the page width in pixels.
	Width int `json:"width"`

	// Height is the page height in pixels.
	Height int `json:"height"`

	// Format is derived from the file extension: "png", "jpeg", "gif",
	// "bmp", "tiff" or "unknown".
	Format string `json:"format"`

	// Bilevel reports whether every pixel is pure black or pure white.
	// Such pages can be scanned with binarization disabled.
	Bilevel bool `json:"bilevel"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadInfo loads the page at path through cache and reports its metadata.
func LoadInfo(cache *ImageCache, path string) (*PageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".bmp":
		format = "bmp"
	case ".tif", ".tiff":
		format = "tiff"
	}

	bounds := img.Bounds()
	return &PageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		Bilevel:       isBilevel(img),
		FileSizeBytes: stat.Size(),
	}, nil
}

// isBilevel reports whether every pixel of img is opaque black or white.
func isBilevel(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r != g || g != bl {
				return false
			}
			if r != 0 && r != 0xffff {
				return false
			}
		}
	}
	return true
}
