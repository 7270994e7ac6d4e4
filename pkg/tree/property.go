package tree

// Property describes a named, settable field of a component.
type Property struct {
	Name string
	Get  func() string
	Set  func(value string)
}

// Properties returns the component's published properties. Setting "name"
// goes through Tree.SetName, so collisions are resolved and the registry is
// updated.
func (c *Component) Properties() []Property {
	return []Property{{
		Name: "name",
		Get:  func() string { return c.name },
		Set:  func(value string) { c.tree.SetName(c, value) },
	}}
}

// Property returns the published property called name.
func (c *Component) Property(name string) (Property, bool) {
	for _, p := range c.Properties() {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}
