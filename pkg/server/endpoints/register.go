package endpoints

import (
	"topodaily/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterAuthenticateEndpoint(srv)
	RegisterUsersEndpoints(srv)
	RegisterWhoamiEndpoint(srv)
	// Export first: /records/export must win over the /records subrouter.
	RegisterExportEndpoint(srv)
	RegisterRecordsEndpoints(srv)
	RegisterStatsEndpoints(srv)
	RegisterAdminEndpoints(srv)
	RegisterStatusEndpoints(srv)
	RegisterDocsEndpoint(srv)
}
