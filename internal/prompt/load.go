package prompt

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	// Extend keeps the built-in templates and lets the file override them.
	Extend    bool       `yaml:"extend"`
	Templates []Template `yaml:"templates"`
}

// LoadCatalog reads a YAML template catalog.
//
//	extend: true
//	templates:
//	  - kind: angles
//	    description: Angles for skincare
//	    body: |
//	      Product: {productName}
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses YAML catalog data.
func ParseCatalog(data []byte) (Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	for i := range f.Templates {
		f.Templates[i].Kind = ParseKind(string(f.Templates[i].Kind))
		if strings.TrimSpace(f.Templates[i].Body) == "" {
			return Catalog{}, fmt.Errorf("template %q has an empty body", f.Templates[i].Kind)
		}
	}

	templates := f.Templates
	if f.Extend {
		templates = append(append([]Template(nil), builtinTemplates...), f.Templates...)
	}
	if len(templates) == 0 {
		return Catalog{}, fmt.Errorf("catalog has no templates")
	}
	return NewCatalog(templates...)
}
