package server

import (
	"net/http"

	"Isolator/internal/auth"
	"Isolator/internal/calc/isolator"
	"Isolator/internal/calc/motion"
	"Isolator/internal/calc/premium/autodesign"
	"Isolator/internal/calc/premium/batch"
	"Isolator/internal/calc/premium/importer"
	"Isolator/internal/calc/report"
	"Isolator/internal/config"
	"Isolator/internal/httpjson"
	"Isolator/internal/logger"
	"Isolator/internal/profile"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

func CORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// New builds the full handler. authSvc is nil when accounts are disabled.
func New(cfg *config.Config, authSvc *auth.Service) http.Handler {
	r := mux.NewRouter()
	HandleList(r, cfg, authSvc)
	return CORS(cfg.CORSOrigin, logger.Middleware(r))
}

func HandleList(r *mux.Router, cfg *config.Config, authSvc *auth.Service) {
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpjson.Write(w, http.StatusOK, map[string]any{
			"status": "ok",
			"auth":   cfg.AuthMode,
		})
	}).Methods("GET")

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	isolatorH := &isolator.Handler{}
	motionH := &motion.Handler{}
	api.HandleFunc("/tools/isolator/calc", isolatorH.Calc).Methods("POST")
	api.HandleFunc("/tools/motion/frequency", motionH.Calc).Methods("POST")

	premium := api.PathPrefix("/user").Subrouter()
	if authSvc != nil {
		api.HandleFunc("/login", authSvc.LoginHandler).Methods("POST")
		api.HandleFunc("/register", authSvc.RegisterHandler).Methods("POST")
		premium.Use(authSvc.Middleware)

		profileH := &profile.ProfileHandler{Repo: authSvc.Repo}
		premium.HandleFunc("/profile", profileH.GetProfile).Methods("GET")
	}

	designH := &autodesign.Handler{}
	batchH := &batch.Handler{MaxItems: cfg.MaxBatchItems}
	importH := &importer.Handler{MaxItems: cfg.MaxBatchItems, MaxUploadMB: cfg.MaxUploadMB}
	reportH := &report.Handler{}

	premium.HandleFunc("/tools/isolator/design", designH.Isolator).Methods("POST")
	premium.HandleFunc("/tools/isolator/batch", batchH.Isolator).Methods("POST")
	premium.HandleFunc("/tools/isolator/import", importH.Isolator).Methods("POST")
	premium.HandleFunc("/tools/isolator/export", importH.Export).Methods("POST")
	premium.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
}
