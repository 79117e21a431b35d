// Package config loads the optional triage configuration file.
//
// # Configuration Discovery
//
// Load reads the given path, or ~/.config/triage/config.toml when the path
// is empty. A missing file yields Default(). Present but blank values fall
// back to their defaults.
//
// # Keys
//
//	api_bind         = "127.0.0.1:8000"   # triage API the TUI talks to
//	deadline_seconds = 30                 # per-submission deadline
//	log_file         = "~/.local/state/triage/triage.log"  # "-" for stderr
//	log_level        = "info"
//
//	[server]
//	addr        = ":8000"       # dev server listen address
//	model       = "tinyllama"   # Ollama model name
//	ollama_host = ""            # empty uses OLLAMA_HOST
//
// Paths starting with ~ expand to the user's home directory. Command-line
// flags override file values.
package config
