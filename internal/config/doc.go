// Package config loads issuedeck's configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/issuedeck/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. Empty or missing fields use defaults
//  5. ISSUEDECK_API_URL, ISSUEDECK_QUERY and ISSUEDECK_FAVORITES_BACKEND
//     override whatever the file says
//
// Files ending in .yaml or .yml are decoded as YAML; anything else is TOML.
//
// # Example
//
//	api_url = "https://api.github.com"
//	query = "repo:angular/components"
//	sort = "created"            # created, updated, comments
//	order = "desc"              # asc, desc
//	page_size = 50              # clamped to 1..100
//	favorites_backend = "file"  # file, sqlite
//	favorites_path = "~/.local/share/issuedeck/favorites.json"
//	log_level = "info"
//	log_path = "~/.local/share/issuedeck/issuedeck.log"
//	request_interval_ms = 0     # minimum gap between search requests
//
// Tilde expansion is performed on every path. Invalid sort, order or backend
// values are rejected rather than silently replaced.
package config
