package server

import (
	"net/http"

	"Moodgraph/config"
	"Moodgraph/middleware"
	"Moodgraph/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewGinEngine 初始化路由
func NewGinEngine(conf *config.Config, h *Handlers) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.PrometheusMiddleware())
	r.Use(response.ErrorMiddleware())

	// 本地存储时由服务进程直接伺服上传目录
	if conf.Oss == nil || conf.Oss.Bucket == "" {
		dir := "uploads"
		if conf.Upload != nil && conf.Upload.Dir != "" {
			dir = conf.Upload.Dir
		}
		r.Static("/uploads", dir)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "success"})
	})

	h.Board.RegisterRouter(r)
	h.Note.RegisterRouter(r)
	h.Generate.RegisterRouter(r)
	h.Websocket.RegisterRouter(r)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}
