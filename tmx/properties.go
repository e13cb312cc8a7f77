package tmx

import (
	"strconv"
	"strings"
)

// Properties holds the custom key/value metadata of a map, layer or tileset.
type Properties map[string]string

// GetString returns the value of key, or "" when absent.
func (p Properties) GetString(key string) string {
	return p[key]
}

// GetInt returns the value of key parsed as an int, or 0.
func (p Properties) GetInt(key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(p[key]))
	if err != nil {
		return 0
	}
	return v
}

// GetFloat returns the value of key parsed as a float64, or 0.
func (p Properties) GetFloat(key string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(p[key]), 64)
	if err != nil {
		return 0
	}
	return v
}

// GetBool returns the value of key parsed as a bool, or false.
func (p Properties) GetBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(p[key]))
	if err != nil {
		return false
	}
	return v
}

// Has reports whether key is set.
func (p Properties) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// loadProperties reads the <properties> child of n. A missing block yields an
// empty table. Property elements without attributes are skipped and later
// duplicates overwrite earlier ones.
func loadProperties(n *node) Properties {
	props := Properties{}
	block := n.child("properties")
	if block == nil {
		return props
	}
	for _, p := range block.children("property") {
		if len(p.Attrs) == 0 {
			continue
		}
		name := p.attrOr("name", "")
		value, ok := p.attr("value")
		if !ok {
			// multi-line string properties keep their value as text
			value = p.Text
		}
		props[name] = value
	}
	return props
}
