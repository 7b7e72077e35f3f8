package catalog

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Match returns the assets whose id matches a glob pattern, in catalog order.
// Matching is case-insensitive; "**" also crosses the "/" found in ids like "CC/CM".
func (c *Catalog) Match(pattern string) ([]Asset, error) {
	p := strings.ToLower(pattern)
	if !doublestar.ValidatePattern(p) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	var out []Asset
	for _, a := range c.assets {
		ok, err := doublestar.Match(p, strings.ToLower(a.ID))
		if err != nil {
			return nil, fmt.Errorf("matching %q: %w", pattern, err)
		}
		if ok {
			out = append(out, a.clone())
		}
	}
	return out, nil
}
