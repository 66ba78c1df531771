package configuration

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a single YAML document from path and returns it as a Tree.
//
// A missing file yields [ErrConfigNotFound] unless optional is set, in which
// case an empty Tree is returned. An empty document (or one holding only
// comments) yields an empty Tree. A document that fails to parse, or whose
// top level is not a mapping, yields [ErrMalformedConfig].
func LoadFile(path string, optional bool) (Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if optional {
				return Tree{}, nil
			}
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return parseYAML(path, data)
}

func parseYAML(path string, data []byte) (Tree, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Tree{}, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedConfig, path, err)
	}

	// comment-only documents decode to an empty node
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return Tree{}, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return Tree{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s: top level must be a mapping", ErrMalformedConfig, path)
	}

	var tree map[string]any
	if err := root.Decode(&tree); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedConfig, path, err)
	}

	return Tree(tree).Clone(), nil
}
