// Package config provides configuration management for portalctl.
//
// Configuration is loaded and merged in the following order, later sources
// overriding earlier ones:
//
//  1. Default configuration (compiled in)
//  2. User configuration (~/.config/portalctl/config.yaml)
//  3. Project configuration (./.portalctl/config.yaml)
//  4. Environment variables (PORTALCTL_API_URL, PORTALCTL_API_TOKEN, PORTALCTL_LOG_LEVEL)
//
// Example file:
//
//	api:
//	  baseURL: "https://portal.example.com"
//	  token: "${PORTAL_TOKEN}"
//	console:
//	  startURL: "/apps/payments/namespaces?env=DEV"
//	  historyLimit: 100
//	logging:
//	  level: debug
//	mcp:
//	  allowWrites: false
//
// String values support ${VAR} and ${VAR:-default} expansion.
package config
