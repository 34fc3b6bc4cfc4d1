package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/TCC-Pucpr/fed-inspirasom/constants"
	"github.com/TCC-Pucpr/fed-inspirasom/midi"
	"github.com/TCC-Pucpr/fed-inspirasom/model"
	"github.com/TCC-Pucpr/fed-inspirasom/score"
	"gopkg.in/yaml.v3"
)

var ErrMusicNotFound = errors.New("music does not exist")

// Catalog is the list of playable musics stored next to their midi files.
type Catalog struct {
	dir    string
	musics []model.Music
}

// Load reads the catalog file of dir. JSON catalogs are accepted too.
func Load(dir string) (*Catalog, error) {
	path := filepath.Join(dir, constants.CatalogFile)
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not fetch music list: %w", err)
	}

	var list model.MusicList
	if err := yaml.Unmarshal(dat, &list); err != nil {
		return nil, fmt.Errorf("could not parse music list %s: %w", path, err)
	}

	seen := make(map[string]bool)
	for _, m := range list.Files {
		if m.ID == "" || m.File == "" {
			return nil, fmt.Errorf("music list %s has an entry without id or file", path)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("music list %s has duplicated id %s", path, m.ID)
		}
		seen[m.ID] = true
	}
	return &Catalog{dir: dir, musics: list.Files}, nil
}

func (c *Catalog) List() []model.Music {
	return append([]model.Music(nil), c.musics...)
}

func (c *Catalog) Find(id string) (model.Music, error) {
	for _, m := range c.musics {
		if m.ID == id {
			return m, nil
		}
	}
	return model.Music{}, fmt.Errorf("%w: %s", ErrMusicNotFound, id)
}

func (c *Catalog) Bytes(id string) (model.Music, []byte, error) {
	m, err := c.Find(id)
	if err != nil {
		return m, nil, err
	}
	dat, err := os.ReadFile(filepath.Join(c.dir, m.File))
	if err != nil {
		return m, nil, fmt.Errorf("music with id %s found, but error while loading midi file: %w", id, err)
	}
	return m, dat, nil
}

// Score loads and parses the midi file of a music.
func (c *Catalog) Score(id string) (model.Music, *score.Score, error) {
	m, dat, err := c.Bytes(id)
	if err != nil {
		return m, nil, err
	}
	s, err := midi.ReadMidiBytes(dat)
	if err != nil {
		return m, nil, fmt.Errorf("music %s: %w", id, err)
	}
	return m, s, nil
}
