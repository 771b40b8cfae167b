// Package server provides the HTTP server for the Topodaily API.
//
// This package implements the core HTTP server that handles all Topodaily
// REST API requests. It uses gorilla/mux for routing and gorilla/handlers
// for request logging.
//
// # Server Setup
//
//	srv := server.NewServer(cfg, catalog, session, db, host, port)
//	endpoints.RegisterAll(srv)
//	log.Fatal(srv.Start())
//
// # Components
//
// The Server struct holds:
//
//   - Config: runtime configuration
//   - Locations: the reference location catalog
//   - Session: session token issuing and validation
//   - Router: HTTP request router
//   - DB: database connection
//   - Stores: storage interfaces backed by GORM
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(srv)
//
// This registers all Topodaily endpoints including:
//
//   - /authn/login - session token issuance
//   - /users - signup and password management
//   - /records - survey record entry, listing, deletion and export
//   - /stats - dashboard aggregates
//   - /admin - user administration and global statistics
//   - /whoami - token introspection
package server
