// Package rest serves read-only story analysis over HTTP
package rest

import (
	stderrors "errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KirkDiggler/rpg-story/internal/entities/story"
	"github.com/KirkDiggler/rpg-story/internal/errors"
	"github.com/KirkDiggler/rpg-story/internal/orchestrators/authoring"
)

// Config holds dependencies for the HTTP router
type Config struct {
	AuthoringService authoring.Service

	// Mode is a gin mode; defaults to release
	Mode string

	// MaxBodyBytes caps posted story bodies; defaults to DefaultMaxBodyBytes
	MaxBodyBytes int64
}

// DefaultMaxBodyBytes is the posted story size limit
const DefaultMaxBodyBytes int64 = 1 << 20

// Validate ensures all required dependencies are present
func (c *Config) Validate() error {
	if c.AuthoringService == nil {
		return errors.InvalidArgument("authoring service is required")
	}
	return nil
}

type handler struct {
	authoring    authoring.Service
	maxBodyBytes int64
}

// NewRouter builds the gin engine with all routes registered
func NewRouter(cfg *Config) (*gin.Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	mode := cfg.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	h := &handler{authoring: cfg.AuthoringService, maxBodyBytes: cfg.MaxBodyBytes}
	if h.maxBodyBytes <= 0 {
		h.maxBodyBytes = DefaultMaxBodyBytes
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", h.health)

	v1 := r.Group("/v1")
	{
		v1.GET("/stories", h.listStories)
		v1.GET("/stories/:id/graph", h.storyGraph)
		v1.GET("/stories/:id/lint", h.storyLint)
		v1.POST("/graph", h.postedGraph)
		v1.POST("/lint", h.postedLint)
	}

	return r, nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// writeError renders an error with the status mapped from its code
func writeError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	body := gin.H{
		"code":  string(code),
		"error": errors.GetMessage(err),
	}
	if meta := errors.GetMeta(err); len(meta) > 0 {
		body["meta"] = meta
	}
	c.AbortWithStatusJSON(code.HTTPStatus(), body)
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) listStories(c *gin.Context) {
	out, err := h.authoring.ListStories(c.Request.Context(), &authoring.ListStoriesInput{})
	if err != nil {
		writeError(c, err)
		return
	}

	type summary struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Version int64  `json:"version"`
		Scenes  int    `json:"scenes"`
	}
	stories := make([]summary, 0, len(out.Records))
	for _, rec := range out.Records {
		stories = append(stories, summary{
			ID:      rec.Story.ID,
			Title:   rec.Story.Title,
			Version: rec.Version,
			Scenes:  len(rec.Story.Scenes),
		})
	}
	c.JSON(http.StatusOK, gin.H{"stories": stories})
}

func (h *handler) storyGraph(c *gin.Context) {
	out, err := h.authoring.DeriveGraph(c.Request.Context(), &authoring.DeriveGraphInput{StoryID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Graph)
}

func (h *handler) storyLint(c *gin.Context) {
	out, err := h.authoring.LintStory(c.Request.Context(), &authoring.LintStoryInput{StoryID: c.Param("id")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"warnings": out.Warnings})
}

func (h *handler) postedGraph(c *gin.Context) {
	s, err := h.readStory(c)
	if err != nil {
		writeError(c, err)
		return
	}
	out, err := h.authoring.DeriveGraph(c.Request.Context(), &authoring.DeriveGraphInput{Story: s})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out.Graph)
}

func (h *handler) postedLint(c *gin.Context) {
	s, err := h.readStory(c)
	if err != nil {
		writeError(c, err)
		return
	}
	out, err := h.authoring.LintStory(c.Request.Context(), &authoring.LintStoryInput{Story: s})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"warnings": out.Warnings})
}

// readStory decodes the request body as JSON, or YAML when the content
// type says so
func (h *handler) readStory(c *gin.Context) (*story.Story, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.InvalidArgumentf("story body exceeds %d bytes", tooLarge.Limit).
				WithMeta("limit_bytes", tooLarge.Limit)
		}
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read body")
	}
	if len(body) == 0 {
		return nil, errors.InvalidArgument("story body is required")
	}

	decode := story.DecodeJSON
	if strings.Contains(c.ContentType(), "yaml") {
		decode = story.DecodeYAML
	}
	s, err := decode(body)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed story")
	}
	return s, nil
}
