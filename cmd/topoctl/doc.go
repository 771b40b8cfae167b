// Package main provides topoctl, the Topodaily server and operations CLI.
//
// Topodaily is a role-based data-entry and reporting service for field
// survey teams. Surveyors (role "topographe") log daily topographic survey
// records; administrators manage users and see global statistics.
//
// # Quick Start
//
//	# Generate a session signing key
//	export TOPODAILY_SESSION_KEY=$(head -c 32 /dev/urandom | base64)
//
//	# Run database migrations
//	topoctl db migrate
//
//	# Start the server
//	topoctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string (or DB_HOST/DB_PORT/
//     DB_NAME/DB_USER/DB_PASSWORD)
//   - TOPODAILY_SESSION_KEY: Base64-encoded key for session token signing
//   - TOPODAILY_ADMIN_PASSWORD: Initial password for the bootstrap admin
//   - TOPODAILY_REFERENCE_FILE: Path to the location spreadsheet
//   - TOPODAILY_LOG_LEVEL: Log level (debug enables SQL logging)
//   - AUDIT_DATABASE_URL: Optional audit event database
//   - PORT: Server port (default: 8080)
package main
