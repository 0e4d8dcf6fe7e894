package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"intervox/internal/repository"
	"intervox/internal/service"
	"intervox/internal/transport/rest/handler"
	"intervox/internal/transport/ws"
)

// Container holds all dependencies for the router.
type Container struct {
	SessionService *service.SessionService
	EvaluationRepo repository.EvaluationRepo
	RoleRepo       repository.RoleRepo
	WSHandler      *ws.Handler
}

// NewRouter creates the API router with all endpoints.
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler(c.SessionService)
	evalHandler := handler.NewEvaluationHandler(c.EvaluationRepo)
	roleHandler := handler.NewRoleHandler(c.RoleRepo)

	r.Use(corsMiddleware)

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{room}", sessionHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/evaluations", evalHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/roles", roleHandler.List).Methods("GET", "OPTIONS")

	// Session host attach (token in query param)
	v1.HandleFunc("/ws/rooms/{room}", c.WSHandler.RoomWS).Methods("GET")

	// Fixed path the evaluation sink posts to; kept outside /v1 because
	// agents resolve it as BACKEND_HOST + path.
	r.HandleFunc("/save_evaluation", evalHandler.Save).Methods("POST", "OPTIONS")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
