// Package config loads avgang's TOML configuration.
//
// # Overview
//
// The config file carries the Västtrafik API credentials plus a few optional
// overrides. Everything except the credentials has a default, so a minimal file
// is two lines:
//
//	api_key = "..."
//	secret = "..."
//
// # Resolution
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/avgang/config.toml
//  3. A missing file is fine as long as AVGANG_API_KEY and AVGANG_SECRET are set
//  4. Environment credentials take precedence over the file
//
// # Optional Fields
//
//	stop_area_gid = "9021014002090000"   # Doktor Fries Torg
//	stop_name = "Doktor Fries Torg"
//	update_interval_seconds = 600
//	token_url = "https://ext-api.vasttrafik.se/token"
//	api_base_url = "https://ext-api.vasttrafik.se/pr/v4"
//	log_path = "~/.local/state/avgang/avgang.log"
//
// Blank values fall back to defaults. Tilde expansion is applied to log_path.
//
// # Error Handling
//
// Load returns ErrMissingCredentials (wrapped) when either credential is blank
// after merging file and environment. The widget refuses to start in that case.
// Read and TOML parse errors are returned wrapped with "read config" and
// "parse config".
//
// The config file holds secrets and is never written by avgang. Keep it out of
// version control.
package config
