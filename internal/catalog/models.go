package catalog

// Entry is one catalog item as returned by the listing endpoint. ID is
// assigned by the store in arrival order, starting at 1.
type Entry struct {
	ID   int
	Name string
	URL  string
}

// TypeSlot is one category association on a detail record.
type TypeSlot struct {
	Slot int
	Name string
}

// Detail is the full record fetched for an entry on the visible page.
type Detail struct {
	ID      int
	Name    string
	URL     string
	Types   []TypeSlot
	Artwork string
	Sprite  string
}

const defaultCategory = "normal"

// PrimaryType returns the slot-1 category, falling back to the first listed
// one and finally to "normal".
func (d *Detail) PrimaryType() string {
	for _, t := range d.Types {
		if t.Slot == 1 && t.Name != "" {
			return t.Name
		}
	}
	if len(d.Types) > 0 && d.Types[0].Name != "" {
		return d.Types[0].Name
	}
	return defaultCategory
}

// ImageURL picks the artwork, then the sprite, then the placeholder.
func (d *Detail) ImageURL(placeholder string) string {
	if d.Artwork != "" {
		return d.Artwork
	}
	if d.Sprite != "" {
		return d.Sprite
	}
	return placeholder
}

// MembershipSet holds the detail URLs that primarily belong to a category.
type MembershipSet map[string]struct{}

// NewMembershipSet builds a set from the given URLs.
func NewMembershipSet(urls ...string) MembershipSet {
	s := make(MembershipSet, len(urls))
	for _, u := range urls {
		s[u] = struct{}{}
	}
	return s
}

func (s MembershipSet) Has(url string) bool {
	_, ok := s[url]
	return ok
}

func (s MembershipSet) Len() int { return len(s) }

// AddAll merges other into s.
func (s MembershipSet) AddAll(other MembershipSet) {
	for u := range other {
		s[u] = struct{}{}
	}
}
