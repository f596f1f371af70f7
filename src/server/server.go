package server

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	app "galleryserv/src/app"
	cfg "galleryserv/src/configuration"
)

func RunServer(config *cfg.Properties) {
	// Create Gin router
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	pprof.Register(router)

	store, err := app.NewMinioMediaStore(
		config.S3.Host,
		config.S3.AccessKey,
		config.S3.SecretKey,
		config.S3.Bucket,
		config.S3.UseSSL,
		config.Gallery.URLExpiry)
	if err != nil {
		log.Fatalf("could not connect to media store: %v", err)
	}
	gallery := app.NewGallery(store,
		config.Gallery.Folder,
		config.Gallery.MaxResults,
		config.Gallery.PlaceholderWidth)

	handler := NewHandler(config, store, gallery)

	router.SetFuncMap(template.FuncMap{
		// dataURL: the blur placeholder is a data: URI the html/template
		// URL filter would otherwise reject.
		"dataURL": func(s string) template.URL { return template.URL(s) },
	})
	router.LoadHTMLGlob("templates/*.html")
	router.Static("/static", "./static")

	// Register Routes
	router.GET("/health", handler.GetHealth)
	router.GET("/", handler.GetGallery)
	router.GET("/p/:id", handler.GetPhoto)
	router.GET("/api/images", handler.GetImageList)
	// Any method so the handler can answer 405 itself.
	router.Any("/api/upload", handler.UploadImage)

	router.NoRoute(func(ctx *gin.Context) { ctx.JSON(http.StatusNotFound, gin.H{}) })
	// Start the server
	router.Run(fmt.Sprintf(":%s", config.Server.Port))
}
