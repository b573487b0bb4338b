package connection

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/l3hner/hauspilot/config"
	authcontroller "github.com/l3hner/hauspilot/controller/auth"
	"github.com/l3hner/hauspilot/controller/dashboard"
	"github.com/l3hner/hauspilot/controller/diary"
	"github.com/l3hner/hauspilot/controller/event"
	"github.com/l3hner/hauspilot/controller/expense"
	"github.com/l3hner/hauspilot/controller/project"
	"github.com/l3hner/hauspilot/controller/task"
	"github.com/l3hner/hauspilot/controller/user"
	"github.com/l3hner/hauspilot/logger"
	"github.com/l3hner/hauspilot/services"
	"github.com/l3hner/hauspilot/session"
	"github.com/l3hner/hauspilot/store"
	"github.com/l3hner/hauspilot/syncer"
)

// StartServer wires the services together and runs the HTTP server. Without
// Firebase credentials the server falls back to the in-memory store, which
// only makes sense for local development.
func StartServer() {
	log := logger.New()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	var st store.Store
	if cfg.GoogleCredentials != "" {
		client, err := FBConnection(ctx, cfg)
		if err != nil {
			log.Fatal("failed to initialize Firestore client", zap.Error(err))
		}
		defer client.Close()
		st = store.NewFirestore(client, log)
		log.Info("Firestore connection successful")
	} else {
		st = store.NewMemory()
		log.Warn("no Firebase credentials, using in-memory store")
	}

	provider := session.NewAccountProvider(st, log)
	sessions := session.NewManager(provider, st, log)
	hub := syncer.NewHub(st, log)
	go hub.Watch(provider.Changes())

	mailer := services.NewReminderMailer(st, cfg, log)
	if cfg.SMTPConfigured() {
		go mailer.Run(ctx)
	} else {
		log.Warn("SMTP not configured, event reminders are disabled")
	}

	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authDeps := authcontroller.Deps{
		Sessions: sessions,
		Provider: provider,
		Hub:      hub,
		Store:    st,
		Cfg:      cfg,
		Log:      log,
	}
	authcontroller.SignUpController(router, authDeps)
	authcontroller.SignInController(router, authDeps)
	authcontroller.SignOutController(router, authDeps)
	authcontroller.RefreshTokenController(router, authDeps)
	authcontroller.CaptchaController(router, authDeps)

	project.ProjectController(router, project.Deps{Hub: hub, Cfg: cfg, Log: log})
	task.TaskController(router, task.Deps{Hub: hub, Cfg: cfg, Log: log})
	event.EventController(router, event.Deps{Hub: hub, Cfg: cfg, Log: log})
	expense.ExpenseController(router, expense.Deps{Hub: hub, Cfg: cfg, Log: log})
	diary.DiaryController(router, diary.Deps{Hub: hub, Cfg: cfg, Log: log})
	dashboard.DashboardController(router, dashboard.Deps{Hub: hub, Cfg: cfg, Log: log})
	user.UserController(router, user.Deps{Provider: provider, Hub: hub, Store: st, Cfg: cfg, Log: log})

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
