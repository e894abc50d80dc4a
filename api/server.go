package api

import (
	"context"
	"net/http"
	"time"

	"github.com/dafuqqqyunglean/assign_reviewer/api/handler"
	"github.com/dafuqqqyunglean/assign_reviewer/api/middleware"
	"github.com/dafuqqqyunglean/assign_reviewer/config"
	editorserv "github.com/dafuqqqyunglean/assign_reviewer/service/editor"
	questionnaireserv "github.com/dafuqqqyunglean/assign_reviewer/service/questionnaire"
	rosterserv "github.com/dafuqqqyunglean/assign_reviewer/service/roster"
	"github.com/gorilla/mux"
)

const (
	maxHeaderBytes = 1 << 20
	readTimeout    = 10 * time.Second
	writeTimeout   = 10 * time.Second
)

type Server struct {
	httpServer *http.Server
	router     *mux.Router
}

func NewServer(config config.Config) *Server {
	router := mux.NewRouter()

	return &Server{
		httpServer: &http.Server{
			Addr:           config.ServerPort,
			MaxHeaderBytes: maxHeaderBytes,
			ReadTimeout:    readTimeout,
			WriteTimeout:   writeTimeout,
			Handler:        withMiddleware(router),
		},
		router: router,
	}
}

// withMiddleware logs outside recovery so a panicked request still gets its log line.
func withMiddleware(next http.Handler) http.Handler {
	return middleware.LoggingMiddleware(middleware.RecoveryMiddleware(next))
}

func (s *Server) Run() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the root handler including middleware.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) HandleRoutes(rosterService rosterserv.Service, editorService editorserv.Service, questionnaireService questionnaireserv.Service) {
	s.router.HandleFunc("/topics", handler.ListTopics(rosterService)).Methods(http.MethodGet)
	s.router.HandleFunc("/topics/get", handler.GetTopic(rosterService)).Methods(http.MethodGet)
	s.router.HandleFunc("/topics/stats", handler.Stats(rosterService)).Methods(http.MethodGet)
	s.router.HandleFunc("/topics/reviewers/add", handler.AddReviewer(rosterService)).Methods(http.MethodPost)
	s.router.HandleFunc("/topics/reviewers/unsubmit", handler.Unsubmit(rosterService)).Methods(http.MethodPost)
	s.router.HandleFunc("/topics/reviewers/remove", handler.RemoveReviewer(rosterService)).Methods(http.MethodPost)
	s.router.HandleFunc("/editor/open", handler.OpenEditor(editorService)).Methods(http.MethodPost)
	s.router.HandleFunc("/editor/submit", handler.SubmitEditor(editorService)).Methods(http.MethodPost)
	s.router.HandleFunc("/editor/cancel", handler.CancelEditor(editorService)).Methods(http.MethodPost)
	s.router.HandleFunc("/questionnaires", handler.ListQuestionnaires(questionnaireService)).Methods(http.MethodGet)
	s.router.HandleFunc("/questionnaires/get", handler.GetQuestionnaire(questionnaireService)).Methods(http.MethodGet)
}
