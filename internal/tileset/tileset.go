// Package tileset loads the on-disk tile-adjacency format cmd/wfcsolve
// consumes: a YAML document listing tiles in the order their compiled
// index should be assigned, each with its four directional adjacency
// lists. This is purely the outer driver's input encoding of the core's
// Constraints type — the core itself never touches a filesystem.
package tileset

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gitrdm/wfccore/pkg/wfc"
)

// Tile is one entry of the on-disk tileset document.
type Tile struct {
	ID    string   `yaml:"id"`
	North []string `yaml:"north"`
	East  []string `yaml:"east"`
	South []string `yaml:"south"`
	West  []string `yaml:"west"`
}

// Document is the root of a tileset YAML file.
type Document struct {
	Tiles []Tile `yaml:"tiles"`
}

// Load reads and parses a tileset YAML file from disk, preserving the tile
// order in the document (which becomes the compiled tile index order).
// It does not compile the result; call wfc.Compile on the
// returned value to validate and build a TileTable.
func Load(path string) (wfc.Constraints, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "tileset: reading %s", path)
	}
	return Parse(raw)
}

// Parse decodes tileset YAML content already read into memory.
func Parse(raw []byte) (wfc.Constraints, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "tileset: decoding YAML")
	}
	if len(doc.Tiles) == 0 {
		return nil, errors.New("tileset: document has no tiles")
	}

	cs := make(wfc.Constraints, len(doc.Tiles))
	for i, t := range doc.Tiles {
		if t.ID == "" {
			return nil, errors.Errorf("tileset: tile at position %d has an empty id", i)
		}
		cs[i] = wfc.TileConstraint{
			ID:    t.ID,
			North: t.North,
			East:  t.East,
			South: t.South,
			West:  t.West,
		}
	}
	return cs, nil
}
