package app

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
	"github.com/samarthnaik-lab/expert-claims-backend-sub001/internal/config"
	"github.com/samarthnaik-lab/expert-claims-backend-sub001/internal/infrastructure/auth"
	"github.com/samarthnaik-lab/expert-claims-backend-sub001/internal/infrastructure/database"
	"github.com/samarthnaik-lab/expert-claims-backend-sub001/internal/infrastructure/notifications"
	"github.com/samarthnaik-lab/expert-claims-backend-sub001/internal/infrastructure/repositories"
	"github.com/samarthnaik-lab/expert-claims-backend-sub001/internal/services"
)

// providerTimeout bounds every call to the external OTP provider.
const providerTimeout = 10 * time.Second

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client

	UserRepo      domain.UserRepository
	CustomerRepo  domain.CustomerRepository
	ChallengeRepo domain.ChallengeRepository
	SessionRepo   domain.SessionRepository

	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	Provider    domain.OTPProvider
	Validator   domain.CredentialValidator
	OTPSvc      domain.OTPService
	SessionSvc  domain.SessionService
	Resolver    domain.PhoneResolver
	LoginSvc    domain.LoginService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	c.DB = db
	c.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.CustomerRepo = repositories.NewCustomerRepository(c.DB)
	c.ChallengeRepo = repositories.NewChallengeRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.DB)
}

func (c *Container) initServices() error {
	c.PasswordSvc = auth.NewPasswordService()

	tokenSvc, err := auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.SessionTTL)
	if err != nil {
		return err
	}
	c.TokenSvc = tokenSvc

	c.Provider = notifications.NewTwilioVerifyService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioVerifySID,
		providerTimeout,
	)

	c.Validator = services.NewCredentialValidator(
		c.UserRepo, c.PasswordSvc, c.Config.LockMaxAttempts, c.Config.LockDuration,
	)

	c.OTPSvc = services.NewOTPService(c.Provider, c.ChallengeRepo, c.RedisClient, services.OTPConfig{
		TTL:          c.Config.OTP_TTL,
		MaxAttempts:  c.Config.OTP_MaxAttempts,
		ResendWindow: c.Config.OTP_ResendWindow,
		CountryCode:  c.Config.CountryCode,
	})

	c.SessionSvc = services.NewSessionService(c.SessionRepo, c.TokenSvc)
	c.Resolver = services.NewPhoneResolver(c.UserRepo, c.CustomerRepo, c.Config.CountryCode, c.Config.AllowSuffixMatch)
	c.LoginSvc = services.NewLoginService(c.Validator, c.OTPSvc, c.SessionSvc, c.Resolver)

	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
