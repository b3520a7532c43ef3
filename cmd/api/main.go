package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/simagang/simagang-backend-go/internal/config"
	appHTTP "github.com/simagang/simagang-backend-go/internal/handler/http"
	"github.com/simagang/simagang-backend-go/internal/pkg/clock"
	"github.com/simagang/simagang-backend-go/internal/pkg/database"
	"github.com/simagang/simagang-backend-go/internal/pkg/jwt"
	"github.com/simagang/simagang-backend-go/internal/pkg/storage"
	"github.com/simagang/simagang-backend-go/internal/repository/postgresql"
	authService "github.com/simagang/simagang-backend-go/internal/service/auth"
	dashboardService "github.com/simagang/simagang-backend-go/internal/service/dashboard"
	"github.com/simagang/simagang-backend-go/internal/service/file"
	internshipService "github.com/simagang/simagang-backend-go/internal/service/internship"
	logbookService "github.com/simagang/simagang-backend-go/internal/service/logbook"
	permissionService "github.com/simagang/simagang-backend-go/internal/service/permission"
	presenceService "github.com/simagang/simagang-backend-go/internal/service/presence"
	userService "github.com/simagang/simagang-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	internshipRepo := postgresql.NewInternshipRepository(db)
	permissionRepo := postgresql.NewPermissionRepository(db)
	logbookRepo := postgresql.NewLogbookRepository(db)
	presenceRepo := postgresql.NewPresenceRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	case "s3":
		fileStorage, err = storage.NewS3Storage(context.Background(), storage.S3Config{
			Region:          cfg.Storage.AWSRegion,
			Bucket:          cfg.Storage.AWSS3Bucket,
			AccessKeyID:     cfg.Storage.AWSAccessKeyID,
			SecretAccessKey: cfg.Storage.AWSSecretAccessKey,
			Endpoint:        cfg.Storage.AWSEndpointURL,
		})
		if err != nil {
			log.Fatal("Failed to initialize s3 storage:", err)
		}
	default:
		log.Fatal("Unsupported storage types: ", cfg.Storage.Type)
	}

	clk := clock.New()
	fileService := file.NewFileService(fileStorage)

	authSvc := authService.NewAuthService(userRepo, jwtService, clk, authService.LockoutPolicy{
		MaxFailures:  cfg.Lockout.MaxFailures,
		LockDuration: cfg.Lockout.LockDuration,
	})
	userSvc := userService.NewUserService(userRepo)
	internshipSvc := internshipService.NewInternshipService(internshipRepo, userRepo, clk)
	permissionSvc := permissionService.NewPermissionService(permissionRepo, internshipRepo, fileService, clk)
	logbookSvc := logbookService.NewLogbookService(logbookRepo, internshipRepo, clk)
	presenceSvc := presenceService.NewPresenceService(presenceRepo, internshipRepo, permissionRepo, fileService, clk, presenceService.Policy{
		OfficeLatitude:  cfg.Office.Latitude,
		OfficeLongitude: cfg.Office.Longitude,
		RadiusMeters:    cfg.Office.RadiusMeters,
		LateCutoff:      cfg.Attendance.LateCutoff,
	})
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, internshipSvc, presenceSvc, logbookSvc, clk)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, authSvc),
		User:       appHTTP.NewUserHandler(userSvc),
		Internship: appHTTP.NewInternshipHandler(internshipSvc),
		Permission: appHTTP.NewPermissionHandler(permissionSvc),
		Logbook:    appHTTP.NewLogbookHandler(logbookSvc),
		Presence:   appHTTP.NewPresenceHandler(presenceSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	}

	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
