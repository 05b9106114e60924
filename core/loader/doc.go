// Package loader mounts HTTP features onto the Fiber app.
//
// A feature bundles a service with its routes and satisfies Feature:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The start command registers each feature on a Manager and calls LoadAll once the
// global middleware is installed. Disabled features are skipped, names must be unique
// and the first Load error stops loading.
package loader
