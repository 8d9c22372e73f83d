package router

import (
	"github.com/devlaunch/bootcamper/internal/application"
	"github.com/devlaunch/bootcamper/internal/container"
	"github.com/devlaunch/bootcamper/internal/infrastructure/mongodb"
	"github.com/devlaunch/bootcamper/internal/infrastructure/search"
	"github.com/devlaunch/bootcamper/internal/infrastructure/storage"
	handlers "github.com/devlaunch/bootcamper/internal/interface/http"
	"github.com/devlaunch/bootcamper/internal/router/modules"
	"github.com/devlaunch/bootcamper/pkg/geocode"
	"github.com/devlaunch/bootcamper/pkg/helpers"
)

// InitModules builds repositories, services and handlers from the container
// singletons and registers every feature module with the router registry.
// Called once during application startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetMongo()

	users := mongodb.NewUserRepository(db)
	bootcamps := mongodb.NewBootcampRepository(db)
	courses := mongodb.NewCourseRepository(db)

	geocoder := geocode.NewMapQuest(cfg.GeocoderBaseURL, cfg.GeocoderAPIKey)
	index := search.NewBootcampIndex(container.GetES(), cfg.ESBootcampsIndex, logger)

	var photos storage.PhotoStore
	if cfg.GCSBucket != "" && container.GetGCS() != nil {
		photos = storage.NewGCSPhotoStore(container.GetGCS(), cfg.GCSBucket)
	} else {
		photos = storage.NewLocalPhotoStore(cfg.FileUploadPath)
	}

	jwt := container.GetJWT()
	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)

	var pub application.Publisher
	if rp := container.GetRabbitPub(); rp != nil {
		pub = rp
	}

	authSvc := application.NewAuthService(users, jwt, pub, logger, cfg.ResetTokenTTL, cfg.MailSendEnabled)
	bootcampSvc := application.NewBootcampService(bootcamps, courses, geocoder, index, photos, cfg.MaxFileUpload, logger)
	courseSvc := application.NewCourseService(courses, bootcamps, logger)

	authHandler := handlers.NewAuthHandler(authSvc, jwt, cookies, logger)
	bootcampHandler := handlers.NewBootcampHandler(bootcampSvc, logger)
	courseHandler := handlers.NewCourseHandler(courseSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, jwt, users))
	r.Add(modules.NewBootcampModule(bootcampHandler, courseHandler, jwt, users))
	r.Add(modules.NewCourseModule(courseHandler, jwt, users))
}
