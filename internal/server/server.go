package server

import (
	"context"
	"net/http"
	"video-paywall-demo/internal/handler"
	appmw "video-paywall-demo/internal/middleware"
	"video-paywall-demo/internal/repository"
	"video-paywall-demo/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Services is everything the HTTP layer calls into.
type Services struct {
	Auth     service.AuthService
	Catalog  service.CatalogService
	Comment  service.CommentService
	Media    service.MediaService
	Ledger   service.LedgerService
	Checkout service.CheckoutService
	Items    repository.ItemRepository
}

type Server struct {
	echo            *echo.Echo
	authService     service.AuthService
	userHandler     *handler.UserHandler
	itemHandler     *handler.ItemHandler
	videoHandler    *handler.VideoHandler
	commentHandler  *handler.CommentHandler
	checkoutHandler *handler.CheckoutHandler
}

func NewServer(log *zap.Logger, bodyLimit string, svc Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(log)

	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if bodyLimit != "" {
		e.Use(middleware.BodyLimit(bodyLimit))
	}

	s := &Server{
		echo:            e,
		authService:     svc.Auth,
		userHandler:     handler.NewUserHandler(svc.Auth),
		itemHandler:     handler.NewItemHandler(svc.Items),
		videoHandler:    handler.NewVideoHandler(svc.Catalog, svc.Media, svc.Ledger),
		commentHandler:  handler.NewCommentHandler(svc.Comment),
		checkoutHandler: handler.NewCheckoutHandler(svc.Checkout),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	auth := appmw.AuthMiddleware(s.authService)

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api.POST("/register", s.userHandler.Register)
	api.POST("/login", s.userHandler.Login)
	api.GET("/videos", s.videoHandler.List)
	api.GET("/search", s.videoHandler.Search)
	api.POST("/upload", s.videoHandler.Upload)
	api.GET("/purchases", s.videoHandler.Purchases, auth)

	// -------- items --------
	items := s.echo.Group("/items")
	items.GET("", s.itemHandler.List)
	items.POST("", s.itemHandler.Create)
	items.GET("/:index", s.itemHandler.Get)
	items.PUT("/:index", s.itemHandler.Update)
	items.DELETE("/:index", s.itemHandler.Delete)

	// -------- media --------
	s.echo.GET("/videos/:filename", s.videoHandler.Serve)
	s.echo.GET("/video/:video_id", s.videoHandler.Watch, auth)

	// -------- comments --------
	s.echo.GET("/comments/:video_id", s.commentHandler.List)
	s.echo.POST("/comments/:video_id", s.commentHandler.Add)

	// -------- paystack --------
	paystack := s.echo.Group("/paystack")
	paystack.POST("/init", s.checkoutHandler.InitPaystack)
	paystack.GET("/callback", s.checkoutHandler.PaystackCallback)
	paystack.POST("/webhook", s.checkoutHandler.PaystackWebhook)

	// -------- braintree --------
	braintree := s.echo.Group("/braintree")
	braintree.POST("/init", s.checkoutHandler.InitBraintree)
	braintree.POST("/checkout", s.checkoutHandler.BraintreeCheckout)
	braintree.GET("/verify", s.checkoutHandler.BraintreeVerify)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			log.Info("request", fields...)
			return nil
		},
	})
}
