package main

import (
	"log"

	"github.com/vbonduro/aclaudit/internal/auth"
	"github.com/vbonduro/aclaudit/internal/config"
	"github.com/vbonduro/aclaudit/internal/db"
	"github.com/vbonduro/aclaudit/internal/logging"
	"github.com/vbonduro/aclaudit/internal/photostore/local"
	"github.com/vbonduro/aclaudit/internal/service"
	"github.com/vbonduro/aclaudit/internal/store"
	"github.com/vbonduro/aclaudit/internal/web"
	"github.com/vbonduro/aclaudit/internal/web/templates"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	if cfg.DBPath == "" {
		logger.Warn("DB_PATH not set, audit data is kept in memory only")
	}
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	sessionStore := store.NewSessionStore(database)
	entryStore := store.NewEntryStore(database)

	photoStg, err := local.NewDiskStore(cfg.PhotoPath)
	if err != nil {
		logger.Error("failed to initialize photo store", "error", err)
		return
	}

	auditService := service.NewAuditService(sessionStore, entryStore, auth.NewChecker(cfg.AuditPassword), photoStg, logger)
	server := web.NewServer(auditService, templates.FS, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
