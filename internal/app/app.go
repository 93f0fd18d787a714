package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/internal/config"
	httpx "github.com/samarthnaik-lab/expert-claims-backend-sub001/internal/http"
	"github.com/samarthnaik-lab/expert-claims-backend-sub001/internal/http/handlers"
	"github.com/samarthnaik-lab/expert-claims-backend-sub001/internal/http/middleware"
	"github.com/samarthnaik-lab/expert-claims-backend-sub001/internal/infrastructure/auth"
	"github.com/samarthnaik-lab/expert-claims-backend-sub001/internal/infrastructure/database"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := database.Ping(context.Background(), c.RedisClient); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(c.DB, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	seedPolicies(cas)

	authH := handlers.NewAuthHandlers(c.LoginSvc, c.SessionSvc, c.Resolver, c.SessionRepo, c.CustomerRepo)
	authMW := middleware.NewAuthMW(c.SessionSvc)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(authH, authMW, casbinMW)

	stopSweep := startSessionSweeper(c, cfg.SweepInterval)
	defer stopSweep()

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// startSessionSweeper periodically marks overdue sessions inactive. The
// sweep has no ordering dependency on live traffic.
func startSessionSweeper(c *Container, every time.Duration) func() {
	ticker := time.NewTicker(every)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				n, err := c.SessionSvc.SweepExpired(ctx)
				cancel()
				if err != nil {
					log.Printf("session sweep: %v", err)
				} else if n > 0 {
					log.Printf("session sweep: expired %d sessions", n)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}

func seedPolicies(cas *auth.CasbinService) {
	policies, _ := cas.E.GetPolicy()
	if len(policies) > 0 {
		return
	}
	if _, err := cas.E.AddPolicy("role_admin", "/admin/*", "(GET|POST|PUT|DELETE)"); err != nil {
		log.Printf("casbin: adding admin policy failed: %v", err)
	}
	for _, role := range []string{"role_admin", "role_employee", "role_customer", "role_partner"} {
		if _, err := cas.E.AddPolicy(role, "/auth/me", "GET"); err != nil {
			log.Printf("casbin: adding %s policy failed: %v", role, err)
		}
	}
	if err := cas.E.SavePolicy(); err != nil {
		log.Printf("casbin: seeding default policies failed: %v", err)
		return
	}
	log.Println("casbin: seeded default policies")
}
