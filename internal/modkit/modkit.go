// Package modkit provides module wiring and core deps
package modkit

import "github.com/habibaehabb05/Factify/internal/modkit/module"

// Module is the common surface for API modules that can mount routes and expose ports
// aliased from the sibling package so modules exporting ports avoid import knots
type Module = module.Module

// Builder constructs a Module from shared deps and options
// modules typically expose New(deps Deps, opts ...Option) Module
type Builder func(Deps, ...Option) Module
