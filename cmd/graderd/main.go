package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/AhmedHAlshaer/mathgrader/internal/answerkey"
	api "github.com/AhmedHAlshaer/mathgrader/internal/api/http"
	auth "github.com/AhmedHAlshaer/mathgrader/internal/auth/middleware"
	"github.com/AhmedHAlshaer/mathgrader/internal/config"
	"github.com/AhmedHAlshaer/mathgrader/internal/db"
	"github.com/AhmedHAlshaer/mathgrader/internal/docio"
	"github.com/AhmedHAlshaer/mathgrader/internal/eventlog"
	"github.com/AhmedHAlshaer/mathgrader/internal/gradestore"
	"github.com/AhmedHAlshaer/mathgrader/internal/grading"
	"github.com/AhmedHAlshaer/mathgrader/internal/rbac"
	"github.com/AhmedHAlshaer/mathgrader/internal/submission"
	"github.com/AhmedHAlshaer/mathgrader/pkg/gradebook-sync/gradebook"
	gbhttp "github.com/AhmedHAlshaer/mathgrader/pkg/gradebook-sync/httpchi"
	"github.com/AhmedHAlshaer/mathgrader/pkg/gradebook-sync/scorehttp"
	gbsql "github.com/AhmedHAlshaer/mathgrader/pkg/gradebook-sync/sqlstore"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := gradestore.NewSQLStore(dbh, cfg.DBDriver)
	events := eventlog.NewEventRepo(dbh)

	// --- Grading pipeline ---
	cache, err := answerkey.NewCache(cfg.KeyCacheDir)
	if err != nil {
		log.Fatalf("key cache: %v", err)
	}
	reader := docio.NewFSReader()
	keyParser := answerkey.NewParser(reader,
		answerkey.WithCache(cache),
		answerkey.WithCourse(cfg.Course),
	)
	subParser := submission.NewParser(reader)
	engine := grading.NewEngine(
		grading.WithComparator(grading.NewComparator(grading.WithTolerance(cfg.NumericTolerance))),
		grading.WithExtractionThreshold(cfg.ExtractionThreshold),
		grading.WithComparisonThreshold(cfg.ComparisonThreshold),
	)
	svc := api.NewService(keyParser, subParser, engine, store, events)

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret)
	users := map[string]auth.User{
		cfg.AdminUser: {Role: "admin", PasswordHash: cfg.AdminPassHash},
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, users))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("key:load")).
			Post("/keys", api.LoadKeyHandler(svc))
		pr.With(rbac.Require("key:view")).
			Get("/keys/{name}", api.GetKeyHandler(svc))

		pr.With(rbac.Require("grade:run")).
			Post("/grade", api.GradeHandler(svc))
		pr.With(rbac.Require("grade:batch")).
			Post("/grade/batch", api.GradeBatchHandler(svc))

		pr.With(rbac.RequireAny("result:view", "grade:run")).
			Get("/results/{resultID}", api.GetResultHandler(svc))
		pr.With(rbac.RequireAny("result:view", "grade:run")).
			Get("/results/{resultID}/report", api.GetReportHandler(svc))
		pr.With(rbac.RequireAny("result:view", "grade:run")).
			Get("/assignments/{assignmentID}/results", api.ListResultsHandler(svc))
		pr.With(rbac.RequireAll("result:view", "gradebook:export")).
			Get("/assignments/{assignmentID}/gradebook.csv", api.GradebookCSVHandler(svc))

		pr.With(rbac.Require("audit:view")).
			Get("/audit", api.AuditSearchHandler(dbh))

		if cfg.GradebookURL != "" {
			syncer := gradebook.New(
				&gbsql.Store{DB: dbh},
				scorehttp.New(scorehttp.Config{
					BaseURL: cfg.GradebookURL,
					Token:   cfg.GradebookToken,
					Timeout: 10 * time.Second,
				}),
				nil,
			)
			gbAPI := &gbhttp.API{Syncer: syncer}
			pr.Group(func(gr chi.Router) {
				gr.Use(rbac.Require("gradebook:export"))
				gbAPI.Routes(gr)
			})
		}
	})

	log.Printf("graderd listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("http server: %v", err)
	}
}
