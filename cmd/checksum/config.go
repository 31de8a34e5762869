package main

import (
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pelletier/go-toml"
)

var configPaths = []string{
	"~/.config/savechecksum.toml",
	".savechecksum.toml",
}

// Load flag defaults from a toml file. Keys are flag names, with dashes or
// underscores (both work).
func TomlConfigLoader(r io.Reader) (kong.Resolver, error) {
	tree, err := toml.LoadReader(r)
	if err != nil {
		return nil, err
	}
	return kong.ResolverFunc(func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (interface{}, error) {
		if value := tree.Get(flag.Name); value != nil {
			return value, nil
		}
		return tree.Get(strings.ReplaceAll(flag.Name, "-", "_")), nil
	}), nil
}
