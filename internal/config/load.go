package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// LoadFile overlays the attributes of an HCL file onto base. Attributes the
// file leaves out keep base's value. The result is validated.
//
//	height = 120
//	width  = 480
//	c3     = 1.1
//	composition = "random"
func LoadFile(path string, base Config) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}
	return decode(file.Body, path, base)
}

// Parse is LoadFile for in-memory source; filename is only used in diagnostics.
func Parse(src []byte, filename string, base Config) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}
	return decode(file.Body, filename, base)
}

func decode(body hcl.Body, filename string, base Config) (Config, error) {
	cfg := base
	if diags := gohcl.DecodeBody(body, nil, &cfg); diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode config %s: %w", filename, diags)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}
