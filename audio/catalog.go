package audio

import (
	"errors"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"gopkg.in/yaml.v3"
)

// Sound is an entry in the sound catalogue.
type Sound struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	File     string `yaml:"file"`
	URL      string `yaml:"url,omitempty"`
	Category string `yaml:"category"`
}

// Source returns the location the sound is streamed or downloaded from.
func (s Sound) Source(baseURL string) string {
	if s.URL != "" {
		return s.URL
	}

	return strings.TrimSuffix(baseURL, "/") + "/" + s.File
}

// Catalog lists the sounds Slumber knows about.
type Catalog struct {
	Sounds []Sound `yaml:"sounds"`
}

// ParseCatalog decodes a YAML catalogue. Entries without an id are dropped.
func ParseCatalog(b []byte) (*Catalog, error) {
	var c Catalog

	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, errCatalog.Wrap(err)
	}

	sounds := c.Sounds[:0]

	for _, s := range c.Sounds {
		if s.ID == "" {
			continue
		}

		if s.File == "" {
			s.File = s.ID + DefaultExt
		}

		if s.Name == "" {
			s.Name = s.ID
		}

		sounds = append(sounds, s)
	}

	c.Sounds = sounds

	return &c, nil
}

// LoadCatalog reads the catalogue at path, falling back to fallback when
// the file does not exist.
func LoadCatalog(path string, fallback []byte) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ParseCatalog(fallback)
	}

	if err != nil {
		return nil, errCatalog.Wrap(err)
	}

	return ParseCatalog(b)
}

// Sorted returns the sounds ordered naturally by id ("rain2" before
// "rain10").
func (c *Catalog) Sorted() []Sound {
	sounds := make([]Sound, len(c.Sounds))
	copy(sounds, c.Sounds)

	sort.SliceStable(sounds, func(i, j int) bool {
		return natural.Less(sounds[i].ID, sounds[j].ID)
	})

	return sounds
}

// Find looks up a sound by id.
func (c *Catalog) Find(id string) (Sound, error) {
	for _, s := range c.Sounds {
		if s.ID == id {
			return s, nil
		}
	}

	return Sound{}, errUnknownSound.Fmt(id)
}
