package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shinyyama/catalog-backend/internal/handler"
	"github.com/shinyyama/catalog-backend/internal/repository"
	"github.com/shinyyama/catalog-backend/internal/service"
	"gorm.io/gorm"
)

type Server struct {
	e            *echo.Echo
	productRepo  repository.ProductRepository
	imageRepo    repository.ProductImageRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
}

type Options struct {
	GitSHA    string
	BuildTime string
	// CORSHostSuffixes lists the origin hosts (and their subdomains) allowed
	// besides loopback.
	CORSHostSuffixes []string
}

// New wires the API. db may be nil; requests then answer 503 until SetDB is called.
func New(db *gorm.DB, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
		AllowOriginFunc:  originMatcher(opts.CORSHostSuffixes),
	}))

	s := &Server{
		e:            e,
		productRepo:  repository.NewProductRepository(db),
		imageRepo:    repository.NewProductImageRepository(db),
		categoryRepo: repository.NewCategoryRepository(db),
		userRepo:     repository.NewUserRepository(db),
	}

	productHandler := handler.NewProductHandler(service.NewProductService(s.productRepo, s.imageRepo))
	catalogHandler := handler.NewCatalogHandler(service.NewCatalogService(s.categoryRepo, s.userRepo))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    opts.GitSHA,
			"build_time": opts.BuildTime,
		})
	})

	api := e.Group("/api")
	api.GET("/products", productHandler.List)
	api.POST("/products", productHandler.Create)
	api.GET("/products/:id", productHandler.Get)
	api.PUT("/products/:id", productHandler.Update)
	api.DELETE("/products/:id", productHandler.Delete)
	api.POST("/products/:id/images", productHandler.AddImage)
	api.GET("/categories", catalogHandler.ListCategories)
	api.POST("/categories", catalogHandler.CreateCategory)
	api.POST("/users", catalogHandler.CreateUser)

	return s
}

// originMatcher accepts http(s) origins on loopback or on one of suffixes.
func originMatcher(suffixes []string) func(origin string) (bool, error) {
	return func(origin string) (bool, error) {
		u, err := url.Parse(origin)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return false, nil
		}
		host := strings.ToLower(u.Hostname())
		switch host {
		case "localhost", "127.0.0.1", "::1":
			return true, nil
		}
		for _, suffix := range suffixes {
			suffix = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(suffix), "."))
			if suffix == "" {
				continue
			}
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return true, nil
			}
		}
		return false, nil
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) SetDB(db *gorm.DB) {
	s.productRepo.SetDB(db)
	s.imageRepo.SetDB(db)
	s.categoryRepo.SetDB(db)
	s.userRepo.SetDB(db)
}
