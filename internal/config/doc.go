// Package config loads and validates appxify configuration from TOML.
//
// Configuration resolution order: explicit --config path, then
// ~/.config/appxify/config.toml, then appxify.toml in the working
// directory. Missing files fall back to built-in defaults so the tool is
// usable with no configuration at all.
package config
