// Package router wires the HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/config"
	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/engine"
	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/handler"
	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/middleware"
	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/model"
	"github.com/ObedVictorJesusVelardeOchoa/plazaplus-estacionamiento-inteligente/internal/store"
)

// Register attaches every route of the API. The health check and the auth
// endpoints are public; everything else requires a valid staff token. When
// rdb is nil the rate limiter passes every request through.
func Register(e *echo.Echo, cfg config.Config, eng *engine.Engine, users *store.UserStore, rdb *redis.Client) {
	e.Use(middleware.RateLimit(rdb, config.LoadRateLimitConfig()))

	e.GET("/healthz", handler.Health)

	a := handler.NewAuthHandler(cfg, users)
	pub := e.Group("/v1/auth")
	pub.POST("/register", a.Register)
	pub.POST("/login", a.Login)

	// Both staff roles may operate the facility; registration endpoints
	// above stay open so the first admin can be created.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(cfg.JWTSecret))
	auth.Use(middleware.RequireRole(model.RoleAdmin, model.RoleOperator))
	auth.GET("/me", a.Me)

	ch := handler.NewClientHandler(eng)
	auth.POST("/clients", ch.Create)
	auth.GET("/clients", ch.List)
	auth.GET("/clients/:id", ch.Get)
	auth.GET("/clients/:id/vehicles", ch.Vehicles)

	vh := handler.NewVehicleHandler(eng)
	auth.POST("/vehicles", vh.Create)
	auth.GET("/vehicles", vh.List)
	auth.GET("/vehicles/:plate", vh.Get)

	sh := handler.NewStayHandler(eng)
	auth.POST("/stays/check-in", sh.CheckIn)
	auth.POST("/stays/check-out", sh.CheckOut)
	auth.POST("/stays/pay", sh.Pay)
	auth.GET("/stays/active", sh.Active)
	auth.GET("/stays/history", sh.History)
	auth.GET("/stays/waiting", sh.Waiting)
	auth.GET("/slots", sh.Slots)
	auth.GET("/stats", sh.Stats)
}
