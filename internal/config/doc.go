// Package config provides configuration management for the demo service.
//
// Configuration is loaded from environment variables using the env package,
// optionally seeded from a .env file. Every value has a default, so the
// service starts with no environment at all and listens on 0.0.0.0:5000.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.GetHTTPAddr())
package config
