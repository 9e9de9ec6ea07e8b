package cli

import (
	"fmt"
	"io"
	"time"

	"brainshift/internal/config"
	"brainshift/internal/database"
	"brainshift/internal/logger"
	"brainshift/internal/repository"
	"brainshift/internal/service"
	"brainshift/internal/timeutil"
	"brainshift/internal/util"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"
)

// app is everything a command needs, built once from config.
type app struct {
	cfg       *config.Config
	log       hclog.Logger
	accessLog io.Writer
	db        *gorm.DB
	loc       *time.Location

	sessions *service.SessionService
	streaks  *service.StreakService
	audit    *repository.AuditRepository
	cipher   *util.Cipher
}

func bootstrap(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, accessLog, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	loc, err := timeutil.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, err
	}

	db, err := database.Init(cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	locks := util.NewKeyedMutex()
	streaks := service.NewStreakService(repository.NewStreakRepository(db), loc, locks, log)
	sessions := service.NewSessionService(repository.NewSessionRepository(db), streaks, locks, log)

	cipher := util.NewCipher(cfg.Security.EncryptionKey)
	if !cipher.Enabled() {
		log.Warn("security.encryption_key is empty, activity log is stored in plain text")
	}

	return &app{
		cfg:       cfg,
		log:       log,
		accessLog: accessLog,
		db:        db,
		loc:       loc,
		sessions:  sessions,
		streaks:   streaks,
		audit:     repository.NewAuditRepository(db),
		cipher:    cipher,
	}, nil
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.log.Warn("close database", "error", err)
	}
}
