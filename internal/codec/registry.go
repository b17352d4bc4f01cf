package codec

import (
	"fmt"
	"sort"
)

// Registry maps type names to codecs. NewRegistry returns one holding the
// built-in types; a schema parser clones it and adds its enumerations.
type Registry struct {
	types map[string]*Codec
}

// Builtins lists the types that every schema can use.
func Builtins() []*Codec {
	return []*Codec{
		{Name: "BCDFreq", Kind: KindBCDFreq},
		{Name: "IntFreq", Kind: KindRawBits},
		{Name: "Int", Kind: KindRawBits},
		{Name: "HexDigits", Kind: KindRawBits, Hex: true},
		{Name: "CheckBox", Kind: KindRawBits, Width: 1},
		{Name: "YaesuString", Kind: KindYaesuString},
		{Name: "String", Kind: KindPlainString},
		{Name: "Empty", Kind: KindEmpty},
	}
}

// NewRegistry creates a registry populated with the built-in types.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]*Codec)}
	for _, c := range Builtins() {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a codec under its name. Names are unique.
func (r *Registry) Register(c *Codec) error {
	if c.Name == "" {
		return fmt.Errorf("type name cannot be empty")
	}
	if _, exists := r.types[c.Name]; exists {
		return fmt.Errorf("type %q already defined", c.Name)
	}
	if c.Kind == KindEnum && c.Enum == nil {
		return fmt.Errorf("enum type %q has no table", c.Name)
	}
	r.types[c.Name] = c
	return nil
}

// Lookup finds a codec by type name.
func (r *Registry) Lookup(name string) (*Codec, bool) {
	c, ok := r.types[name]
	return c, ok
}

// Clone returns an independent registry with the same entries.
func (r *Registry) Clone() *Registry {
	cp := &Registry{types: make(map[string]*Codec, len(r.types))}
	for name, c := range r.types {
		cp.types[name] = c
	}
	return cp
}

// Names returns all type names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
