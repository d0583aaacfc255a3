package bootstrap

import (
	"database/sql"
	"time"

	httpapi "github.com/fablecraft/fablecraft-backend/internal/api/http"
	"github.com/fablecraft/fablecraft-backend/internal/api/http/middleware"
	"github.com/fablecraft/fablecraft-backend/internal/auth"
	authmw "github.com/fablecraft/fablecraft-backend/internal/auth/middleware"
	charhttp "github.com/fablecraft/fablecraft-backend/internal/characters/http"
	charrepo "github.com/fablecraft/fablecraft-backend/internal/characters/repository"
	"github.com/fablecraft/fablecraft-backend/internal/content"
	draftdomain "github.com/fablecraft/fablecraft-backend/internal/drafts/domain"
	drafthttp "github.com/fablecraft/fablecraft-backend/internal/drafts/http"
	draftsvc "github.com/fablecraft/fablecraft-backend/internal/drafts/service"
	"github.com/fablecraft/fablecraft-backend/internal/generation"
	genhttp "github.com/fablecraft/fablecraft-backend/internal/generation/http"
	layouthttp "github.com/fablecraft/fablecraft-backend/internal/layout/http"
	layoutrepo "github.com/fablecraft/fablecraft-backend/internal/layout/repository"
	layoutsvc "github.com/fablecraft/fablecraft-backend/internal/layout/service"
	"github.com/fablecraft/fablecraft-backend/internal/media"
	"github.com/fablecraft/fablecraft-backend/internal/projects"
	"github.com/fablecraft/fablecraft-backend/internal/users"
	wbhttp "github.com/fablecraft/fablecraft-backend/internal/worldbible/http"
	wbrepo "github.com/fablecraft/fablecraft-backend/internal/worldbible/repository"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	ServiceName string
	Version     string

	DB    *pgxpool.Pool
	SQLDB *sql.DB
	Redis *redis.Client

	// Keyed by draft flow ("character", "entity"). Owned by the caller, which
	// is responsible for Close on shutdown.
	DraftManagers map[string]*draftsvc.AutosaveManager

	Generation *generation.Client
	Portraits  *media.PortraitStore
	Content    *content.Service

	// Nil unless Firebase credentials are configured.
	FirebaseAuth *fbauth.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-Id", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())

	if dep.FirebaseAuth != nil {
		api.Use(authmw.FirebaseAuthMiddleware(dep.FirebaseAuth))
	}

	userRepo := users.NewRepo(dep.DB)
	api.Use(auth.WithUser(userRepo))

	api.GET("/metrics", httpapi.MetricsHandler)

	contentHandler := content.NewHandler(dep.Content)
	contentHandler.Register(api.Group("/content"))

	projectRepo := projects.NewRepo(dep.DB)
	projectsGroup := api.Group("/projects")
	projects.Register(projectsGroup, projectRepo)

	draftHandler := drafthttp.NewHandler(dep.DraftManagers)
	draftHandler.RegisterProjectSubroutes(projectsGroup)

	characterRepo := charrepo.NewCharacterRepository(dep.SQLDB)
	characterHandler := charhttp.NewHandler(characterRepo, dep.DraftManagers[draftdomain.FlowCharacter])
	characterHandler.RegisterProjectSubroutes(projectsGroup)
	characterHandler.Register(api)

	entityRepo := wbrepo.NewRepo(dep.DB)
	entityHandler := wbhttp.NewHandler(entityRepo, dep.DraftManagers[draftdomain.FlowEntity])
	entityHandler.RegisterProjectSubroutes(projectsGroup)
	entityHandler.Register(api)

	layoutService := layoutsvc.NewService(layoutrepo.NewLayoutRepository(dep.Redis))
	layoutHandler := layouthttp.NewHandler(layoutService)
	layoutHandler.Register(api.Group("/layout"))

	if dep.Generation != nil {
		genHandler := genhttp.NewHandler(
			dep.Generation,
			projectRepo,
			characterRepo,
			entityRepo,
			dep.DraftManagers[draftdomain.FlowCharacter],
			dep.DraftManagers[draftdomain.FlowEntity],
			dep.Portraits,
		)
		genHandler.RegisterProjectSubroutes(projectsGroup)
	}

	return r
}
