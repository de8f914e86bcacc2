package bootstrap

import (
	"rentdesk/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		func(cfg config.Config) config.MailConfig { return cfg.Mail },
		func(cfg config.Config) config.JobsConfig { return cfg.Jobs },
	),
)
