package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/essalvador31/ShoppingListManager/internal/auth"
	"github.com/essalvador31/ShoppingListManager/internal/config"
	database "github.com/essalvador31/ShoppingListManager/internal/db"
	"github.com/essalvador31/ShoppingListManager/internal/shopping/application"
	"github.com/essalvador31/ShoppingListManager/internal/shopping/infrastructure"
	"github.com/essalvador31/ShoppingListManager/internal/shopping/interfaces"
	"github.com/essalvador31/ShoppingListManager/internal/user"
	"github.com/essalvador31/ShoppingListManager/internal/web"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		log.Printf("[%s] Started %s %s", requestID, r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("[%s] Completed %s in %v", requestID, r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

type Server struct {
	router      *http.ServeMux
	authService auth.Service
	authHandler *auth.Handler
	userHandler *user.Handler
	listHandler *interfaces.ListHandler
	itemHandler *interfaces.ItemHandler
	webHandler  *web.Handler
}

func NewServer(
	authService auth.Service,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	listHandler *interfaces.ListHandler,
	itemHandler *interfaces.ItemHandler,
	webHandler *web.Handler,
) *Server {
	return &Server{
		router:      http.NewServeMux(),
		authService: authService,
		authHandler: authHandler,
		userHandler: userHandler,
		listHandler: listHandler,
		itemHandler: itemHandler,
		webHandler:  webHandler,
	}
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) RegisterRoutes() {
	router := http.NewServeMux()
	protect := s.authService.JWTAccessTokenMiddleware()

	// Public routes
	router.Handle("POST /api/register", http.HandlerFunc(s.userHandler.HandleRegister))
	router.Handle("POST /api/login", http.HandlerFunc(s.authHandler.HandleLogin))
	router.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (using JWT Access Token Middleware)
	router.Handle("GET /api/dashboard", protect(http.HandlerFunc(s.listHandler.GetDashboard)))
	router.Handle("GET /api/active-list", protect(http.HandlerFunc(s.listHandler.GetActiveList)))
	router.Handle("PUT /api/lists/{listID}/rename", protect(http.HandlerFunc(s.listHandler.RenameList)))
	router.Handle("POST /api/lists/{listID}/finalize", protect(http.HandlerFunc(s.listHandler.FinalizeList)))
	router.Handle("GET /api/lists/{listID}/items", protect(http.HandlerFunc(s.listHandler.GetListItems)))
	router.Handle("POST /api/lists/{listID}/items", protect(http.HandlerFunc(s.listHandler.AddItem)))
	router.Handle("DELETE /api/lists/{listID}", protect(http.HandlerFunc(s.listHandler.DeleteList)))
	router.Handle("PUT /api/items/{itemID}", protect(http.HandlerFunc(s.itemHandler.UpdateItem)))
	router.Handle("PUT /api/items/{itemID}/toggle", protect(http.HandlerFunc(s.itemHandler.ToggleItem)))
	router.Handle("DELETE /api/items/{itemID}", protect(http.HandlerFunc(s.itemHandler.DeleteItem)))
	router.Handle("GET /api/items/suggest-price/{itemName}", protect(http.HandlerFunc(s.itemHandler.SuggestPrice)))

	// Server-rendered pages
	router.Handle("GET /{$}", http.HandlerFunc(s.webHandler.HandleHome))
	router.Handle("GET /dashboard", http.HandlerFunc(s.webHandler.HandleDashboard))
	router.Handle("GET /list", http.HandlerFunc(s.webHandler.HandleList))
	router.Handle("GET /login", http.HandlerFunc(s.webHandler.HandleLogin))
	router.Handle("GET /register", http.HandlerFunc(s.webHandler.HandleRegister))
	router.Handle("GET /list/{listID}", http.HandlerFunc(s.webHandler.HandleListDetail))
	router.Handle("GET /static/", web.StaticHandler())

	router.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = router
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	dbService, err := database.NewDBService(cfg)
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo)
	userHandler := user.NewHandler(userService)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret)
	authService := auth.NewAuthService(userService, jwtManager)
	authHandler := auth.NewHandler(authService)

	listRepo := infrastructure.NewListRepository(dbService.DB)
	itemRepo := infrastructure.NewItemRepository(dbService.DB)
	historyRepo := infrastructure.NewPriceHistoryRepository(dbService.DB)
	listService := application.NewListService(listRepo, itemRepo, historyRepo)

	listHandler := interfaces.NewListHandler(listService, respondJSON, respondError)
	itemHandler := interfaces.NewItemHandler(listService, respondJSON, respondError)
	webHandler := web.NewHandler()

	server := NewServer(authService, authHandler, userHandler, listHandler, itemHandler, webHandler)
	server.RegisterRoutes()

	log.Printf("Server starting on %s...", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, loggingMiddleware(server.router)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
