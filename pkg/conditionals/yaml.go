package conditionals

import "gopkg.in/yaml.v3"

// UnmarshalYAML accepts either the compact string form or the mapping form.
func (p *Predicate) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		parsed, err := Parse(node.Value)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}

	type Alias Predicate
	var aux Alias
	if err := node.Decode(&aux); err != nil {
		return err
	}
	*p = Predicate(aux)
	return p.Validate()
}
