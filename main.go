package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"chat-cloud/config"
	"chat-cloud/controller"
	"chat-cloud/models"
	"chat-cloud/renderers"
	"chat-cloud/renderers/bubbles"
	"chat-cloud/renderers/cloud"
	"chat-cloud/services"
	"chat-cloud/storage"
	"chat-cloud/web"
)

const sessionCookie = "chatcloud_session"

var (
	uploadsCounter *prometheus.CounterVec
	distinctWords  prometheus.Histogram
	sceneRenders   *prometheus.CounterVec
	activeSessions prometheus.Gauge
)

var (
	errReadFile = errors.New("could not read file")
	errNoFile   = errors.New("no file received")
)

func init() {
	uploadsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatcloud_uploads_total",
			Help: "Total number of uploaded files by result.",
		},
		[]string{"result"},
	)
	distinctWords = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chatcloud_distinct_words",
			Help:    "Distinct words per successfully aggregated file.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)
	sceneRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatcloud_scene_renders_total",
			Help: "Total number of rendered scenes by renderer.",
		},
		[]string{"kind"},
	)
	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatcloud_active_sessions",
			Help: "Stored sessions after the last sweep.",
		},
	)
	prometheus.MustRegister(uploadsCounter, distinctWords, sceneRenders, activeSessions)
}

func apiKeyAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APISecretKey == "" {
			c.Next()
			return
		}
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey != cfg.APISecretKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	sessions := storage.NewSessions(cfg.SessionTTL, cfg.DefaultKind())
	router := setupRouter(cfg, sessions, logging)

	// Setup Cron
	sweeper, err := setupSessionSweep(cfg, sessions, logging)
	if err != nil {
		logging.Fatal("Session sweep setup error", zap.Error(err))
	}
	sweeper.Start()
	defer sweeper.Stop()

	logging.Info("Starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("default_renderer", string(cfg.DefaultKind())),
		zap.Bool("repair_mojibake", cfg.RepairMojibake))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

// setupRouter verdrahtet Pipeline, Renderer und Routen.
func setupRouter(cfg *config.Config, sessions *storage.Sessions, logging *zap.Logger) *gin.Engine {
	aggregator := services.NewAggregator(
		services.NewEnglishTokenizer(),
		services.AggregateOptions{RepairMojibake: cfg.RepairMojibake},
		logging,
	)
	scenes := setupRenderers(cfg, logging)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = cfg.MaxUploadBytes()
	router.SetHTMLTemplate(web.Templates())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "chat-cloud",
			"sessions":  sessions.Len(),
			"renderers": []string{string(renderers.KindBubbles), string(renderers.KindCloud)},
		})
	})

	setupPageRoutes(router, cfg, sessions, aggregator, scenes, logging)
	setupAPIRoutes(router, cfg, sessions, aggregator, scenes, logging)
	return router
}

func setupRenderers(cfg *config.Config, logging *zap.Logger) map[renderers.Kind]renderers.Renderer {
	scenes := map[renderers.Kind]renderers.Renderer{}
	for _, r := range []renderers.Renderer{
		bubbles.New(bubbles.Options{Labels: cfg.BubbleLabels}),
		cloud.New(cloud.Options{HoverTooltip: cfg.CloudHoverTooltip}),
	} {
		scenes[r.Kind()] = r
	}
	logging.Info("Renderers configured",
		zap.Bool("bubble_labels", cfg.BubbleLabels),
		zap.Bool("cloud_hover_tooltip", cfg.CloudHoverTooltip))
	return scenes
}

// setupSessionSweep plant das Abräumen abgelaufener Sitzungen.
func setupSessionSweep(cfg *config.Config, sessions *storage.Sessions, logging *zap.Logger) (*cron.Cron, error) {
	scheduler := cron.New()
	_, err := scheduler.AddFunc(cfg.SessionSweepSchedule, func() {
		sweepSessions(sessions, logging)
	})
	if err != nil {
		return nil, fmt.Errorf("schedule session sweep %q: %w", cfg.SessionSweepSchedule, err)
	}
	return scheduler, nil
}

func sweepSessions(sessions *storage.Sessions, logging *zap.Logger) {
	removed := sessions.Sweep()
	active := sessions.Len()
	activeSessions.Set(float64(active))
	logging.Debug("Session sweep completed", zap.Int("removed", removed), zap.Int("active", active))
}

func setSessionCookie(c *gin.Context, cfg *config.Config, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, int(cfg.SessionTTL.Seconds()), "/", "", false, true)
}

// uploadPage liefert die Seite des Browsers und legt bei Bedarf eine Sitzung an.
// Nur ein Upload erzeugt Zustand, der eine Sitzung braucht.
func uploadPage(c *gin.Context, cfg *config.Config, sessions *storage.Sessions) *controller.Page {
	id, _ := c.Cookie(sessionCookie)
	id, page := sessions.Get(id)
	setSessionCookie(c, cfg, id)
	return page
}

// currentPage liefert die Seite einer bestehenden Sitzung. Ohne Sitzung gibt es
// eine leere Seite, die nicht gespeichert wird.
func currentPage(c *gin.Context, cfg *config.Config, sessions *storage.Sessions) *controller.Page {
	id, err := c.Cookie(sessionCookie)
	if err == nil {
		if page, ok := sessions.Lookup(id); ok {
			setSessionCookie(c, cfg, id)
			return page
		}
	}
	return controller.NewPage(cfg.DefaultKind())
}

// renderScene rendert die aktive Variante. Für einen leeren Zustand wird nichts gerendert.
func renderScene(view controller.View, scenes map[renderers.Kind]renderers.Renderer) (renderers.Scene, []byte, error) {
	if view.State != controller.StateLoaded {
		return renderers.Scene{}, nil, nil
	}
	r, ok := scenes[view.Kind]
	if !ok {
		return renderers.Scene{}, nil, fmt.Errorf("no renderer for %q", view.Kind)
	}
	scene := r.Render(view.Words)
	svg, err := scene.SVG()
	if err != nil {
		return renderers.Scene{}, nil, fmt.Errorf("encode scene: %w", err)
	}
	sceneRenders.WithLabelValues(string(view.Kind)).Inc()
	return scene, svg, nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// uploadError übersetzt Pipeline-Fehler in eine Meldung für die Seite.
func uploadError(filename string, err error) error {
	switch {
	case errors.Is(err, services.ErrMissingMessages):
		return fmt.Errorf("%w: %s has no messages field", services.ErrParse, filename)
	case errors.Is(err, services.ErrParse):
		return fmt.Errorf("%w: %s is not a valid JSON export", services.ErrParse, filename)
	default:
		return fmt.Errorf("%w: %s", errReadFile, filename)
	}
}

func setupPageRoutes(router *gin.Engine, cfg *config.Config, sessions *storage.Sessions, aggregator *services.Aggregator, scenes map[renderers.Kind]renderers.Renderer, log *zap.Logger) {
	router.GET("/", func(c *gin.Context) {
		view := currentPage(c, cfg, sessions).Present()
		scene, svg, err := renderScene(view, scenes)
		if err != nil {
			log.Error("Scene rendering failed", zap.String("kind", string(view.Kind)), zap.Error(err))
			c.String(http.StatusInternalServerError, "could not render scene")
			return
		}
		c.HTML(http.StatusOK, web.PageName, web.NewPageData(view, scene, svg))
	})

	// Mehrere Dateien werden in Reihenfolge verarbeitet, die letzte erfolgreiche gewinnt
	router.POST("/upload", func(c *gin.Context) {
		page := uploadPage(c, cfg, sessions)
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cfg.MaxUploadBytes())

		form, err := c.MultipartForm()
		if err != nil {
			log.Warn("Upload could not be read", zap.Error(err))
			uploadsCounter.WithLabelValues("read_error").Inc()
			page.Fail(errReadFile)
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		files := form.File["file"]
		if len(files) == 0 {
			uploadsCounter.WithLabelValues("read_error").Inc()
			page.Fail(errNoFile)
			c.Redirect(http.StatusSeeOther, "/")
			return
		}

		for _, fh := range files {
			raw, err := readUpload(fh)
			if err != nil {
				log.Warn("Uploaded file could not be read", zap.String("file", fh.Filename), zap.Error(err))
				uploadsCounter.WithLabelValues("read_error").Inc()
				page.Fail(uploadError(fh.Filename, err))
				continue
			}
			words, err := aggregator.Aggregate(raw)
			if err != nil {
				log.Warn("Uploaded file could not be parsed", zap.String("file", fh.Filename), zap.Error(err))
				uploadsCounter.WithLabelValues("parse_error").Inc()
				page.Fail(uploadError(fh.Filename, err))
				continue
			}
			page.Load(words)
			uploadsCounter.WithLabelValues("ok").Inc()
			distinctWords.Observe(float64(len(words)))
			log.Info("Upload aggregated",
				zap.String("file", fh.Filename),
				zap.Int("bytes", len(raw)),
				zap.Int("distinct_words", len(words)),
				zap.Int("total_words", models.Total(words)))
		}
		c.Redirect(http.StatusSeeOther, "/")
	})

	router.POST("/toggle", func(c *gin.Context) {
		page := currentPage(c, cfg, sessions)
		if _, err := page.Toggle(); err != nil {
			log.Debug("Toggle ignored", zap.Error(err))
		}
		c.Redirect(http.StatusSeeOther, "/")
	})

	router.GET("/scene.svg", func(c *gin.Context) {
		view := currentPage(c, cfg, sessions).View()
		if view.State != controller.StateLoaded {
			c.JSON(http.StatusNotFound, gin.H{"error": controller.ErrNotLoaded.Error()})
			return
		}
		_, svg, err := renderScene(view, scenes)
		if err != nil {
			log.Error("Scene rendering failed", zap.String("kind", string(view.Kind)), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render scene"})
			return
		}
		c.Data(http.StatusOK, "image/svg+xml", svg)
	})
}

func setupAPIRoutes(router *gin.Engine, cfg *config.Config, sessions *storage.Sessions, aggregator *services.Aggregator, scenes map[renderers.Kind]renderers.Renderer, log *zap.Logger) {
	rg := router.Group("/api")
	rg.Use(apiKeyAuthMiddleware(cfg))

	// GET - Tabelle und Zustand der eigenen Sitzung
	rg.GET("/words", func(c *gin.Context) {
		view := currentPage(c, cfg, sessions).View()
		words := view.Words
		if words == nil {
			words = []models.WordCount{}
		}
		c.JSON(http.StatusOK, gin.H{
			"state":   view.State.String(),
			"kind":    view.Kind,
			"uploads": view.Uploads,
			"words":   words,
		})
	})

	// POST - Export im Body, Antwort ist die Worttabelle
	rg.POST("/aggregate", func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cfg.MaxUploadBytes())
		raw, err := c.GetRawData()
		if err != nil {
			log.Warn("Aggregate body could not be read", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": errReadFile.Error()})
			return
		}
		words, err := aggregator.Aggregate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, words)
	})

	// POST - Worttabelle im Body, Antwort ist die Szene als SVG
	rg.POST("/render", func(c *gin.Context) {
		var req struct {
			Kind  string             `json:"kind"`
			Words []models.WordCount `json:"words" binding:"dive"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body. 'words' must be a list of {name, value} with value >= 1."})
			return
		}
		kind := cfg.DefaultKind()
		if req.Kind != "" {
			parsed, err := renderers.ParseKind(req.Kind)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			kind = parsed
		}
		svg, err := scenes[kind].Render(req.Words).SVG()
		if err != nil {
			log.Error("Scene encoding failed", zap.String("kind", string(kind)), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not render scene"})
			return
		}
		sceneRenders.WithLabelValues(string(kind)).Inc()
		c.Data(http.StatusOK, "image/svg+xml", svg)
	})
}
