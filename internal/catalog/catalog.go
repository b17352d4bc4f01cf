package catalog

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/radioedit/internal/ctxlog"
	"github.com/vk/radioedit/internal/image"
	"github.com/vk/radioedit/internal/radioerr"
)

// FileName is the name of the catalog inside the configuration directory.
const FileName = "radios"

// Radio is one known model.
type Radio struct {
	Name string
	// Signature is compared against the first bytes of an image.
	Signature []byte
	// HeaderLen is the length of the header that starts with Signature.
	HeaderLen int
	// FileSize is the exact image size, or 0 when any size is accepted.
	FileSize int
	// BlockSize is the transfer block size used when cloning the radio.
	BlockSize int
	// Line is where the radio was declared.
	Line int
}

// Matches reports whether the image starts with the radio's signature.
func (r Radio) Matches(buf *image.Buffer) bool {
	return len(r.Signature) > 0 && buf.HasPrefix(r.Signature)
}

// Catalog is an ordered, read-only list of radios.
type Catalog struct {
	radios []Radio
}

// New builds a catalog from radios in match order.
func New(radios ...Radio) (*Catalog, error) {
	c := &Catalog{}
	seen := make(map[string]bool, len(radios))
	for _, r := range radios {
		if r.Name == "" {
			return nil, fmt.Errorf("radio without a name")
		}
		if len(r.Signature) == 0 {
			return nil, fmt.Errorf("radio %q has no signature", r.Name)
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("radio %q declared twice", r.Name)
		}
		seen[r.Name] = true
		r.Signature = bytes.Clone(r.Signature)
		c.radios = append(c.radios, r)
	}
	return c, nil
}

// Load reads the catalog from dir.
func Load(ctx context.Context, dir string) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)
	path := filepath.Join(dir, FileName)

	f, err := os.Open(path)
	if err != nil {
		return nil, &radioerr.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	c, err := Parse(path, f)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded radio catalog.", "path", path, "radios", c.Len())
	return c, nil
}

// Len returns the number of radios.
func (c *Catalog) Len() int {
	return len(c.radios)
}

// Radios returns the radios in match order.
func (c *Catalog) Radios() []Radio {
	out := make([]Radio, len(c.radios))
	copy(out, c.radios)
	return out
}

// Lookup finds a radio by name.
func (c *Catalog) Lookup(name string) (Radio, bool) {
	for _, r := range c.radios {
		if r.Name == name {
			return r, true
		}
	}
	return Radio{}, false
}

// Identify returns the first radio whose signature the image starts with,
// or radioerr.ErrNotFound.
func (c *Catalog) Identify(buf *image.Buffer) (Radio, error) {
	for _, r := range c.radios {
		if r.Matches(buf) {
			return r, nil
		}
	}
	return Radio{}, radioerr.ErrNotFound
}
