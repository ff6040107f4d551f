package api

import "context"

// RoleBindingsGateway replaces the role binding request set of a namespace.
type RoleBindingsGateway struct {
	c *Client
}

type bindingsBody struct {
	Bindings []Binding `json:"bindings"`
}

// Replace stores bindings as the full set. A response without a bindings field echoes the submitted set.
func (g *RoleBindingsGateway) Replace(ctx context.Context, ref NamespaceRef, bindings []Binding) ([]Binding, error) {
	if bindings == nil {
		bindings = []Binding{}
	}
	var out struct {
		Bindings *[]Binding `json:"bindings"`
	}
	if err := g.c.put(ctx, namespacePath(ref, "/rolebinding_requests"), envQuery(ref.Env), bindingsBody{Bindings: bindings}, &out); err != nil {
		return nil, err
	}
	if out.Bindings == nil {
		return bindings, nil
	}
	if *out.Bindings == nil {
		return []Binding{}, nil
	}
	return *out.Bindings, nil
}
