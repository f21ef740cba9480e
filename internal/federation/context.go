package federation

import "strings"

// Context is the federation configuration of a subgraph schema.
type Context struct {
	// Version is the federation spec version, e.g. "1", "2", "2.3". empty means federation 1.
	Version string
	// LinkNamespace prefixes federation 2 directive names. empty means DefaultLinkNamespace.
	LinkNamespace string
}

func (c *Context) IsFederationV2() bool {
	if c == nil {
		return false
	}
	major := c.Version
	if idx := strings.Index(major, "."); idx != -1 {
		major = major[:idx]
	}
	return strings.TrimPrefix(major, "v") == "2"
}

func (c *Context) Namespace() string {
	if c == nil || c.LinkNamespace == "" {
		return DefaultLinkNamespace
	}
	return c.LinkNamespace
}

func (c *Context) ResolveDirectiveName(name string) string {
	return ResolveDirectiveName(name, c.IsFederationV2(), c.Namespace())
}
