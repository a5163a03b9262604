package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes catalog YAML. Content and offer catalogs may live in one
// file or two; Merge combines separately loaded halves.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("Parse: unmarshal catalog: %w", err)
	}
	if err := validate(&c); err != nil {
		return nil, fmt.Errorf("Parse: %w", err)
	}
	return &c, nil
}

// LoadFile reads and parses a catalog YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadFile: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("LoadFile: %s: %w", path, err)
	}
	return c, nil
}

// LoadFiles loads the education catalog and the offers catalog from two
// files and merges them, matching the split the content team maintains.
func LoadFiles(contentPath, offersPath string) (*Catalog, error) {
	content, err := LoadFile(contentPath)
	if err != nil {
		return nil, err
	}
	offers, err := LoadFile(offersPath)
	if err != nil {
		return nil, err
	}
	return Merge(content, offers), nil
}

// Merge combines two partial catalogs, preserving declared order.
func Merge(a, b *Catalog) *Catalog {
	out := &Catalog{}
	out.Education = append(out.Education, a.Education...)
	out.Education = append(out.Education, b.Education...)
	out.Offers = append(out.Offers, a.Offers...)
	out.Offers = append(out.Offers, b.Offers...)
	return out
}

func validate(c *Catalog) error {
	seen := make(map[string]bool)
	for i, item := range c.Education {
		if item.ID == "" {
			return fmt.Errorf("education item %d has no id", i)
		}
		if seen[item.ID] {
			return fmt.Errorf("duplicate catalog id %q", item.ID)
		}
		seen[item.ID] = true
		if item.Title == "" {
			return fmt.Errorf("education item %q has no title", item.ID)
		}
	}
	for i, offer := range c.Offers {
		if offer.ID == "" {
			return fmt.Errorf("partner offer %d has no id", i)
		}
		if seen[offer.ID] {
			return fmt.Errorf("duplicate catalog id %q", offer.ID)
		}
		seen[offer.ID] = true
		if offer.Title == "" {
			return fmt.Errorf("partner offer %q has no title", offer.ID)
		}
	}
	return nil
}
