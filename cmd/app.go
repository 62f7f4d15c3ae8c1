package cmd

import (
	"fmt"

	"github.com/user/jobboard/internal/browser"
	"github.com/user/jobboard/internal/config"
	"github.com/user/jobboard/internal/loader"
	"github.com/user/jobboard/internal/logging"
	"github.com/user/jobboard/internal/session"
	"go.uber.org/zap"
)

// app bundles what every command needs for one session.
type app struct {
	logger  *zap.Logger
	session *session.Session
}

func newApp(cfg *config.Config, console bool) (*app, error) {
	logger, err := logging.New(cfg.Log, console)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("starting session",
		zap.String("endpoint", cfg.Source.Endpoint),
		zap.Bool("token_set", cfg.Source.Token != ""),
		zap.Duration("timeout", cfg.Source.Timeout),
		zap.Stringer("others_policy", cfg.Policy()))

	l := loader.New(loader.OptionsFromConfig(cfg.Source), logger.Named("loader"))
	sess := session.New(l, browser.Navigator{}, logger.Named("session"), session.Options{
		Policy:    cfg.Policy(),
		SubmitURL: cfg.SubmitURL,
	})

	return &app{logger: logger, session: sess}, nil
}

func (a *app) Close() {
	_ = a.logger.Sync()
}
