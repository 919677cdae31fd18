// Package templates maps page layouts onto renderable templates. The
// registry resolves layout names, the engine executes pongo2 templates,
// and the renderer ties the two together for page builds.
package templates
