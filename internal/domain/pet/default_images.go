package pet

import "strings"

// DefaultImages maps each pet type to its canonical placeholder image URL.
type DefaultImages map[PetType]string

// FallbackDefaultImages is used whenever the configured or fetched table is
// missing or incomplete.
var FallbackDefaultImages = DefaultImages{
	PetTypeDog:    "https://images.unsplash.com/photo-1543466835-00a7907e9de1?w=600",
	PetTypeCat:    "https://images.unsplash.com/photo-1514888286974-6c03e2ca1dba?w=600",
	PetTypeBird:   "https://images.unsplash.com/photo-1444464666168-49d633b86797?w=600",
	PetTypeFish:   "https://images.unsplash.com/photo-1524704654690-b56c05c78a00?w=600",
	PetTypeRabbit: "https://images.unsplash.com/photo-1585110396000-c9ffd4e4b308?w=600",
}

// NewDefaultImages builds a table from string-keyed overrides layered on top
// of the fallback table. Unknown types and blank URLs are ignored.
func NewDefaultImages(overrides map[string]string) DefaultImages {
	table := FallbackDefaultImages.Clone()
	for k, url := range overrides {
		t, err := ParsePetType(normalizeTypeKey(k))
		if err != nil {
			continue
		}
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		table[t] = url
	}
	return table
}

// Clone returns an independent copy of the table.
func (d DefaultImages) Clone() DefaultImages {
	out := make(DefaultImages, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Resolve returns the default image for t, or "" if the table has none.
func (d DefaultImages) Resolve(t PetType) string {
	return d[t]
}

// IsDefault reports whether url equals any URL currently in the table.
func (d DefaultImages) IsDefault(url string) bool {
	for _, v := range d {
		if v == url {
			return true
		}
	}
	return false
}

// StringMap renders the table with string keys for the wire.
func (d DefaultImages) StringMap() map[string]string {
	out := make(map[string]string, len(d))
	for k, v := range d {
		out[string(k)] = v
	}
	return out
}

// normalizeTypeKey accepts config-style lower-case keys ("dog") as well as
// the canonical form ("Dog").
func normalizeTypeKey(k string) string {
	k = strings.TrimSpace(k)
	if k == "" {
		return k
	}
	return strings.ToUpper(k[:1]) + strings.ToLower(k[1:])
}
