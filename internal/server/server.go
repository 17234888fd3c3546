// Package server exposes the packer over HTTP.
package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/piwi3910/AtlasPack/internal/project"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes caps the size of an uploaded layout document.
const maxBodyBytes = 32 << 20

// Server packs layout documents posted to it. Each request is an
// independent run.
type Server struct {
	// Defaults fills order and page budget for documents that leave them unset.
	Defaults model.AppConfig
	Log      logrus.FieldLogger
}

// New returns a server using the given defaults and logger. A nil logger
// discards output.
func New(defaults model.AppConfig, log logrus.FieldLogger) *Server {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Server{Defaults: defaults, Log: log}
}

// Handler builds the gin router:
//
//	POST /pack     layout document in, packed document out
//	GET  /catalog  candidate page sizes in the order they are tried
//	GET  /healthz  liveness
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests)
	r.POST("/pack", s.handlePack)
	r.GET("/catalog", handleCatalog)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.Log.WithField("addr", addr).Info("serving")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) logRequests(c *gin.Context) {
	c.Next()
	s.Log.WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"status": c.Writer.Status(),
	}).Debug("request")
}

func (s *Server) handlePack(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	doc, err := project.Decode(c.Request.Body)
	if err != nil {
		status := http.StatusUnprocessableEntity
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	cfg := doc.Config
	s.Defaults.ApplyToLayout(&cfg)

	opt := engine.New(cfg)
	opt.Log = s.Log
	res, err := opt.Pack(doc.Rects)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if err := doc.Apply(res); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", buf.Bytes())
}

func handleCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, engine.Catalog())
}
