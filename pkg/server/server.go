package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"topodaily/pkg/audit"
	"topodaily/pkg/config"
	"topodaily/pkg/reference"
	"topodaily/pkg/server/middleware"
	"topodaily/pkg/server/store"
	gormstore "topodaily/pkg/server/store/gorm"
)

type Server struct {
	Config    *config.Config
	Locations *reference.Catalog
	Session   *middleware.SessionAuthenticator
	Router    *mux.Router
	DB        *gorm.DB
	Auditor   *audit.Logger

	UsersStore   store.UsersStore
	RecordsStore store.RecordsStore
	StatsStore   store.StatsStore
	HealthStore  store.HealthStore

	srv *http.Server
}

func NewServer(
	cfg *config.Config,
	locations *reference.Catalog,
	session *middleware.SessionAuthenticator,
	db *gorm.DB,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Config:       cfg,
		Locations:    locations,
		Session:      session,
		Router:       router,
		DB:           db,
		Auditor:      audit.DefaultLogger,
		UsersStore:   gormstore.NewUsersStore(db),
		RecordsStore: gormstore.NewRecordsStore(db),
		StatsStore:   gormstore.NewStatsStore(db),
		HealthStore:  gormstore.NewHealthStore(db),
		srv:          srv,
	}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}
