package server

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"meme-backend/internal/memes"
	"meme-backend/internal/shared/config"
	"meme-backend/internal/shared/server/middleware"
	"meme-backend/internal/shared/server/respond"
	"meme-backend/internal/shared/storage/blob"
	"meme-backend/internal/shared/storage/blob/httpstore"
	localstore "meme-backend/internal/shared/storage/blob/local"
	s3store "meme-backend/internal/shared/storage/blob/s3"
	"meme-backend/internal/shared/storage/db"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	respond.Configure(cfg.LogLevel, cfg.LogTraceback)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	repo := buildRepo(cfg)
	store := buildBlobStore(cfg)
	svc := &memes.Service{Repo: repo, Blob: store}
	handler := memes.NewHandler(svc, cfg.MaxFileBytes)

	r.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})
	handler.RegisterRoutes(&r.RouterGroup)

	r.NoRoute(func(c *gin.Context) {
		respond.Abort(c, http.StatusNotFound, "Not Found", nil)
	})
	r.NoMethod(func(c *gin.Context) {
		respond.Abort(c, http.StatusMethodNotAllowed, "Method Not Allowed", nil)
	})

	return r
}

func buildRepo(cfg config.Config) memes.Repo {
	dsn := cfg.DSN()
	if dsn == "" {
		log.Printf("no database configured; using in-memory repository")
		return memes.NewMemoryRepo()
	}

	ctx := context.Background()
	dbConn, err := db.Connect(ctx, dsn, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return memes.NewMemoryRepo()
	}
	if err := db.RunMigrations(ctx, dbConn); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		return memes.NewMemoryRepo()
	}
	return &memes.PGRepo{DB: dbConn}
}

func buildBlobStore(cfg config.Config) blob.Store {
	switch cfg.BlobStoreType {
	case "s3":
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			log.Printf("failed to build s3 blob store, falling back to local: %v", err)
			return localstore.New(cfg.LocalStoreDir)
		}
		return store
	case "local":
		return localstore.New(cfg.LocalStoreDir)
	default:
		return httpstore.New(cfg.BlobBaseURL(), cfg.S3Bucket)
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
