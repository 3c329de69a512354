// Package config loads hwkeys configuration from TOML files.
//
// A configuration file has four sections:
//
//	[keyboard]
//	device_id = 3
//
//	[dead_keys]
//	"´" = "\u0301"
//
//	[log]
//	level = "info"
//
//	[output]
//	format = "text"
//
// Missing files and missing sections fall back to Default. Watcher reloads
// a file when it changes on disk so the dead-key table can be updated
// without restarting.
package config
