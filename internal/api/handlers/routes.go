package handlers

import (
	"net/http"

	"github.com/deepgram/chatrelay/internal/api/middleware"
	"github.com/deepgram/chatrelay/internal/services"
	"github.com/deepgram/chatrelay/pkg/httpext"
	"github.com/gorilla/mux"
)

func RegisterRoutes(router *mux.Router, services *services.Services) {
	router.Use(middleware.Logging, middleware.Recover)

	router.NotFoundHandler = middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpext.JsonError(w, "Not Found", http.StatusNotFound)
	}))
	router.MethodNotAllowedHandler = middleware.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpext.JsonError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}))

	router.HandleFunc("/", HandleRoot).Methods("GET")
	router.HandleFunc("/healthz", HandleHealth).Methods("GET")

	router.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		HandleChat(services.GetChatService(), w, r)
	}).Methods("POST")

	router.HandleFunc("/conversations/{conversation_id}", func(w http.ResponseWriter, r *http.Request) {
		HandleGetConversation(services.GetChatService(), w, r)
	}).Methods("GET")
}

// NewRouter returns a router with every route registered
func NewRouter(services *services.Services) *mux.Router {
	router := mux.NewRouter()
	RegisterRoutes(router, services)
	return router
}
