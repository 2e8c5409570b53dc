package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/httplog/v3"

	"github.com/presensi-kampus/presensi-backend-go/internal/config"
	appHTTP "github.com/presensi-kampus/presensi-backend-go/internal/handler/http"
	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/database"
	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/jwt"
	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/storage"
	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/webpush"
	"github.com/presensi-kampus/presensi-backend-go/internal/repository/postgresql"
	attendanceService "github.com/presensi-kampus/presensi-backend-go/internal/service/attendance"
	authService "github.com/presensi-kampus/presensi-backend-go/internal/service/auth"
	clarificationService "github.com/presensi-kampus/presensi-backend-go/internal/service/clarification"
	"github.com/presensi-kampus/presensi-backend-go/internal/service/file"
	leaveService "github.com/presensi-kampus/presensi-backend-go/internal/service/leave"
	notificationService "github.com/presensi-kampus/presensi-backend-go/internal/service/notification"
	reportService "github.com/presensi-kampus/presensi-backend-go/internal/service/report"
	userService "github.com/presensi-kampus/presensi-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "presensi-backend"),
		slog.String("env", cfg.App.Env),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	clarificationRepo := postgresql.NewClarificationRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}
	fileSvc := file.NewFileService(fileStorage)

	pushSender := webpush.NewSender(cfg.WebPush.PublicKey, cfg.WebPush.PrivateKey, cfg.WebPush.Subscriber)
	notificationSvc := notificationService.NewNotificationService(userRepo, pushSender, logger)

	authSvc := authService.NewAuthService(userRepo, jwtService)
	userSvc := userService.NewUserService(userRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, attendanceRepo, userRepo, fileSvc, notificationSvc)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, clarificationRepo, userRepo, leaveSvc)
	clarificationSvc := clarificationService.NewClarificationService(db, clarificationRepo, attendanceRepo, userRepo, fileSvc, notificationSvc)
	reportSvc := reportService.NewReportService(attendanceRepo, clarificationRepo, userRepo)

	router := appHTTP.NewRouter(jwtService, logger, appHTTP.Handlers{
		Auth:          appHTTP.NewAuthHandler(authSvc),
		Attendance:    appHTTP.NewAttendanceHandler(attendanceSvc),
		Clarification: appHTTP.NewClarificationHandler(clarificationSvc, fileSvc),
		Leave:         appHTTP.NewLeaveHandler(leaveSvc),
		User:          appHTTP.NewUserHandler(userSvc),
		Report:        appHTTP.NewReportHandler(reportSvc),
		Notification:  appHTTP.NewNotificationHandler(notificationSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("server listening", "addr", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server failed:", err)
	}
}
