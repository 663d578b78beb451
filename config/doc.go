// Package config provides application configuration management.
//
// The config package handles loading and validation of the application's
// configuration from YAML files, RESUMEBOX_* environment variables and
// command line flags. It covers the server transport, the sandboxed
// workspace directory, the remote renderer and logging.
//
// Usage:
//
//	cfg, err := config.New(config.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Workspace root: %s\n", cfg.Workspace.RootDir)
package config
