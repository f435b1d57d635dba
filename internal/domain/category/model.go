package category

import (
	"fmt"
	"strconv"
)

// Category groups propositions for score aggregation and display.
type Category struct {
	ID   string
	Name string
}

// Key identifies a score-aggregation bucket. It is either a concrete
// category id or the distinct "uncategorized" bucket for propositions
// without one. The zero value is the uncategorized key, so Key is safe to
// use directly as a map key.
type Key struct {
	id          string
	categorized bool
}

func KeyFor(id string) Key {
	if id == "" {
		return Uncategorized()
	}
	return Key{id: id, categorized: true}
}

func KeyForPtr(id *string) Key {
	if id == nil {
		return Uncategorized()
	}
	return KeyFor(*id)
}

func Uncategorized() Key {
	return Key{}
}

func (k Key) IsUncategorized() bool {
	return !k.categorized
}

// ID returns the category id and whether the key names a real category.
func (k Key) ID() (string, bool) {
	return k.id, k.categorized
}

func (k Key) String() string {
	if !k.categorized {
		return "uncategorized"
	}
	return k.id
}

// Keys serialize as the category id string, with null for the
// uncategorized bucket.
func (k Key) MarshalJSON() ([]byte, error) {
	if !k.categorized {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(k.id)), nil
}

func (k *Key) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*k = Uncategorized()
		return nil
	}
	id, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("unmarshal category key: %w", err)
	}
	*k = KeyFor(id)
	return nil
}
