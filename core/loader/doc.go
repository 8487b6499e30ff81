// Package loader provides the feature loading system for the HTTP server.
//
// Each feature implements the Feature interface and registers its own routes,
// so the start command only wires dependencies and hands features to a Manager.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager keeps features in registration order:
//   - Register() adds a feature
//   - LoadAll() loads the enabled ones and reports which were loaded
package loader
