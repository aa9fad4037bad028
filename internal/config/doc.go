// Package config provides configuration loading for quickpanel.
//
// The configuration file holds tunables only: where the panel is anchored,
// how long external queries and actions may take, and which launcher
// commands the header buttons and fallbacks run. It never records live
// state; every toggle the panel shows is re-read from the system.
//
// # Configuration File Location
//
//   - $XDG_CONFIG_HOME/quickpanel/config.yaml, or
//   - $HOME/.config/quickpanel/config.yaml
//
// A config.toml in the same directory is accepted as well and is decoded
// with BurntSushi/toml. When both exist the YAML file wins.
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Timeouts.Query)
//
// # Defaults
//
// A missing file is not an error: Load returns Default(). Keys omitted from
// the file keep their default values.
package config
