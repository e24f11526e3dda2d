package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/vspec/lang"
)

// resolve returns a [kong.ConfigurationLoader] that parses config files
// written in the vspec language itself.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve("config"), "/path/to/config")
//
// The named top-level block becomes a flat configuration map, one entry
// per field. Flag names with hyphens (e.g., "log-level") should use
// underscores in the config file (e.g., "log_level"). String values are
// quoted, booleans and numbers are not.
//
// Example vspec config file:
//
//	config {
//	  log_level = "debug"
//	  log_format = "text"
//	  log_pretty = true
//	}
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-format=text
//	--log-pretty=true
//
// Command-line flags override config file values.
func resolve(name string) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		tree, err := lang.ParseReader(context.Background(), r)
		if err != nil {
			// Malformed config file - return empty config
			return config{}, nil
		}

		blk := tree.Block(name)
		if blk == nil {
			// Block not found - return empty config
			return config{}, nil
		}

		return config(blockToMap(blk)), nil
	}
}

// config implements [kong.Resolver] for vspec language configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but vspec identifiers
	// may use underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[underscoreName]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// blockToMap flattens a block's fields to a native map representation.
func blockToMap(blk *lang.Block) map[string]any {
	result := make(map[string]any, len(blk.Fields))

	for _, f := range blk.Fields {
		native := f.Value.ToNative()

		// Kong requires numbers as strings for parsing
		if num, ok := native.(int64); ok {
			result[f.Name] = strconv.FormatInt(num, 10)
		} else {
			result[f.Name] = native
		}
	}

	return result
}
