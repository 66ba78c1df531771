package configuration

import (
	"errors"
	"fmt"
	"path/filepath"
)

const (
	baseFileName   = "index.yaml"
	envFilePattern = "node.%s.yaml"
)

// Assemble reads NODE_ENV and CONFIG_DIR from the process environment, loads
// <dir>/index.yaml and the optional <dir>/node.<NODE_ENV>.yaml, merges them
// over [Defaults], validates the result and applies its env section.
func Assemble(opts ...ValidateOption) (*Config, error) {
	processEnv, err := ParseProcessEnv()
	if err != nil {
		return nil, err
	}

	return AssembleFrom(processEnv, opts...)
}

// AssembleFrom is [Assemble] with an explicit process environment.
func AssembleFrom(processEnv ProcessEnv, opts ...ValidateOption) (*Config, error) {
	cfg, err := newConfigBuilder(processEnv).
		withDefaults().
		withBase().
		withEnvironment().
		build(opts...)
	if err != nil {
		return nil, err
	}

	if err = ApplyEnv(cfg, processEnv.NodeEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MergedTree returns the merged, not yet validated tree for processEnv.
func MergedTree(processEnv ProcessEnv) (Tree, error) {
	return newConfigBuilder(processEnv).
		withDefaults().
		withBase().
		withEnvironment().
		merge()
}

type configBuilder struct {
	processEnv ProcessEnv

	defaults    Tree
	base        Tree
	environment Tree

	err error
}

func newConfigBuilder(processEnv ProcessEnv) *configBuilder {
	b := &configBuilder{processEnv: processEnv}
	if processEnv.NodeEnv == "" {
		b.err = ErrNodeEnvNotDefined
	}

	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.defaults = Defaults()
	return b
}

func (b *configBuilder) withBase() *configBuilder {
	tree, err := LoadFile(filepath.Join(b.processEnv.ConfigDir, baseFileName), false)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.base = tree
	return b
}

func (b *configBuilder) withEnvironment() *configBuilder {
	if b.processEnv.NodeEnv == "" {
		return b
	}

	name := fmt.Sprintf(envFilePattern, b.processEnv.NodeEnv)
	tree, err := LoadFile(filepath.Join(b.processEnv.ConfigDir, name), true)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.environment = tree
	return b
}

func (b *configBuilder) merge() (Tree, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	return Merge(b.defaults, b.base, b.environment), nil
}

func (b *configBuilder) build(opts ...ValidateOption) (*Config, error) {
	tree, err := b.merge()
	if err != nil {
		return nil, err
	}

	cfg, err := Validate(tree, opts...)
	if err != nil {
		return nil, err
	}
	cfg.NodeEnv = b.processEnv.NodeEnv

	return cfg, nil
}
