package bootstrap

import (
	"fmt"

	"notez-be/internal/access"
	"notez-be/internal/config"
	"notez-be/internal/controller"
	"notez-be/internal/pkg/logger"
	"notez-be/internal/pkg/sessionauth"
	"notez-be/internal/service"
	"notez-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const activityTopic = "note_activity"

type Container struct {
	// Controllers
	NoteController   controller.INoteController
	OAuthController  controller.IOAuthController
	MediaController  controller.IMediaController
	HealthController controller.IHealthController

	Sessions *sessionauth.Manager
	Logger   logger.ILogger

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	pubSub *gochannel.GoChannel
}

func NewContainer(cfg *config.Config, infra *Infrastructure) (*Container, error) {
	sysLogger := infra.Logger

	// 1. Access
	ids, err := config.LoadAllowList(cfg.Access.AllowedUsersFile, cfg.Access.AllowedUsers)
	if err != nil {
		return nil, fmt.Errorf("load allow-list: %w", err)
	}
	gate := access.NewGate(access.NewAllowList(ids...))
	sysLogger.Info("Bootstrap", "allow-list loaded", map[string]interface{}{
		"users": gate.Size(),
	})

	// 2. Sessions
	store := session.New(session.Config{
		Storage:        infra.SessionStorage,
		Expiration:     cfg.Session.Expiration,
		KeyLookup:      "cookie:" + cfg.Session.CookieName,
		CookieSecure:   cfg.Session.CookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	sessions := sessionauth.NewManager(store, cfg.Session.LoginTTL)

	// 3. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NopLogger{},
	)
	localBus := events.NewLocalBus(pubSub, activityTopic)
	publisher := events.MultiPublisher(append([]events.Publisher{localBus}, infra.Publishers...))

	consumerService := service.NewConsumerService(localBus, infra.ActivityLogger, sysLogger)

	// 4. Services
	noteService := service.NewNoteService(infra.Notes, publisher, sysLogger, service.NoteServiceOptions{
		StoreTimeout:     cfg.Database.StoreTimeout,
		EnforceOwnership: cfg.Access.EnforceOwnership,
		BaseURL:          cfg.App.BaseURL,
	})
	oauthService := service.NewOAuthService(
		service.DefaultProviders(cfg.OAuth, cfg.App.BaseURL),
		cfg.Session.StateSecret,
		sysLogger,
	)
	if len(oauthService.Providers()) == 0 {
		sysLogger.Warn("Bootstrap", "no OAuth provider configured, nobody can log in", nil)
	}
	mediaService := service.NewMediaService(infra.Media, sysLogger)

	// 5. Controllers
	return &Container{
		NoteController:   controller.NewNoteController(noteService, gate),
		OAuthController:  controller.NewOAuthController(oauthService, sessions, sysLogger),
		MediaController:  controller.NewMediaController(mediaService),
		HealthController: controller.NewHealthController(cfg.Database.Driver),

		Sessions: sessions,
		Logger:   sysLogger,

		ConsumerService: consumerService,

		pubSub: pubSub,
	}, nil
}

// Close stops the in-process event bus.
func (c *Container) Close() error {
	return c.pubSub.Close()
}
