package routes

import (
	"net/http"

	"inkpress/app/controllers"
	"inkpress/app/middleware"
	"inkpress/app/repositories"
	"inkpress/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// SetupRoutes wires the API routes and returns the root handler, using
// the provided Badger DB and auth service.
func SetupRoutes(db *badger.DB, auth *services.AuthService) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	postService := services.NewPostService(repositories.NewBadgerPostRepository(db))
	postController := controllers.NewPostController(postService)
	authController := controllers.NewAuthController(auth)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", authController.Login).Methods("POST")

	// Read endpoints are public.
	api.HandleFunc("/posts", postController.Index).Methods("GET")
	api.HandleFunc("/posts/{key}", postController.Show).Methods("GET")

	// Mutating endpoints require a valid admin token.
	admin := api.PathPrefix("/posts").Subrouter()
	admin.Use(middleware.RequireAuth(auth))
	admin.HandleFunc("", postController.Create).Methods("POST")
	admin.HandleFunc("/{key}", postController.Update).Methods("PUT", "PATCH")
	admin.HandleFunc("/{key}", postController.Delete).Methods("DELETE")

	router.NotFoundHandler = jsonStatusHandler(http.StatusNotFound, "Not Found")
	router.MethodNotAllowedHandler = jsonStatusHandler(http.StatusMethodNotAllowed, "Method Not Allowed")

	// CORS wraps the router so preflight requests and error responses
	// carry the headers too.
	return middleware.CORS(router)
}

func jsonStatusHandler(status int, message string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(`{"error":"` + message + `"}`))
	})
}
