package manifest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/VaitaR/DuneQueryRepo/internal/core/domain"
	"github.com/VaitaR/DuneQueryRepo/internal/core/ports/driven"
)

// QueryIDsKey is the manifest key holding the tracked query IDs.
const QueryIDsKey = "query_ids"

// Ensure Loader implements the interface.
var _ driven.ManifestLoader = (*Loader)(nil)

// Loader reads YAML manifests from disk.
type Loader struct{}

// NewLoader creates a manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the manifest at path.
// A missing file yields domain.ErrManifestNotFound; malformed YAML or a
// query_ids value that is not a list yields domain.ErrInvalidManifest.
func (l *Loader) Load(_ context.Context, path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes manifest content.
func Parse(data []byte) (*domain.Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidManifest, err)
	}

	manifest := &domain.Manifest{}

	// Empty document
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return manifest, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return manifest, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", domain.ErrInvalidManifest)
	}

	ids := lookup(root, QueryIDsKey)
	if ids == nil || (ids.Kind == yaml.ScalarNode && ids.Tag == "!!null") {
		return manifest, nil
	}
	if ids.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: %s must be a list", domain.ErrInvalidManifest, QueryIDsKey)
	}

	for _, item := range ids.Content {
		id, ok := coerceQueryID(item)
		if !ok {
			manifest.Skipped = append(manifest.Skipped, describe(item))
			continue
		}
		manifest.QueryIDs = append(manifest.QueryIDs, id)
	}
	return manifest, nil
}

// lookup returns the value node for key in a mapping node.
func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// coerceQueryID accepts integers, integer strings and floats. Floats are
// truncated toward zero.
// Negative numbers, booleans, nulls and collections are rejected.
func coerceQueryID(n *yaml.Node) (domain.QueryID, bool) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind != yaml.ScalarNode {
		return 0, false
	}

	switch n.Tag {
	case "!!int":
		var v int64
		if err := n.Decode(&v); err != nil || v < 0 {
			return 0, false
		}
		return domain.QueryID(v), true

	case "!!str":
		v, err := strconv.ParseInt(strings.TrimSpace(n.Value), 10, 64)
		if err != nil || v < 0 {
			return 0, false
		}
		return domain.QueryID(v), true

	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return 0, false
		}
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= math.MaxInt64 {
			return 0, false
		}
		return domain.QueryID(int64(math.Trunc(f))), true

	default:
		return 0, false
	}
}

func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value
	case yaml.SequenceNode:
		return "<list>"
	case yaml.MappingNode:
		return "<mapping>"
	default:
		return "<unsupported>"
	}
}
