// Package naming resolves user-facing names for items and creatures.
package naming

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Resolver handles name resolution between public and internal names and
// generates display names for anything that lacks one.
type Resolver interface {
	// ResolvePublicName converts a public name to internal name
	ResolvePublicName(publicName string) (internalName string, ok bool)

	// DisplayName returns the registered display name, falling back to a
	// title-cased form of the internal name.
	DisplayName(internalName string) string

	// Register adds a name mapping.
	Register(internalName, displayName string)
}

type resolver struct {
	mu sync.RWMutex

	// Mapping: lower-cased public name -> internal_name
	publicToInternal map[string]string

	// Mapping: internal_name -> display name
	displayNames map[string]string

	titler cases.Caser
}

// NewResolver creates an empty naming resolver.
func NewResolver() Resolver {
	return &resolver{
		publicToInternal: make(map[string]string),
		displayNames:     make(map[string]string),
		titler:           cases.Title(language.English),
	}
}

// Register adds a display-name mapping for an internal name.
func (r *resolver) Register(internalName, displayName string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if displayName != "" {
		r.publicToInternal[strings.ToLower(displayName)] = internalName
		r.displayNames[internalName] = displayName
	}
}

// ResolvePublicName converts a public name to its internal name.
func (r *resolver) ResolvePublicName(publicName string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	internalName, ok := r.publicToInternal[strings.ToLower(publicName)]
	return internalName, ok
}

// DisplayName returns the registered display name. Unregistered names get
// a readable title-cased fallback: "rusty_sword" becomes "Rusty Sword".
func (r *resolver) DisplayName(internalName string) string {
	r.mu.RLock()
	display, ok := r.displayNames[internalName]
	r.mu.RUnlock()

	if ok {
		return display
	}
	return r.titler.String(strings.ReplaceAll(internalName, "_", " "))
}
