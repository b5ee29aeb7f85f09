package main

import (
	"VendorChat/ai/gpt"
	"VendorChat/bot"
	"VendorChat/entity"
	"VendorChat/impl/core"
	"VendorChat/internal/cache"
	"VendorChat/internal/config"
	"VendorChat/internal/database"
	"VendorChat/internal/http-server/api"
	"VendorChat/internal/lib/logger"
	"VendorChat/internal/lib/sl"
	"VendorChat/internal/service/directory"
	"VendorChat/internal/service/profile"
	"VendorChat/internal/service/schedule"
	"VendorChat/internal/service/sms"
	"VendorChat/internal/ws"
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var tgBot *bot.TgBot
	if conf.Telegram.Enabled {
		var err error
		tgBot, err = bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelWarn)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram bot initialized")

			go func() {
				if err := tgBot.Start(); err != nil {
					lg.Error("telegram bot error", sl.Err(err))
				}
			}()
			defer tgBot.Stop()
		}
	}

	lg.Info("starting vendorchat", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	vendors, err := directory.Load(conf.Data.VendorsPath)
	if err != nil {
		lg.With(
			slog.String("path", conf.Data.VendorsPath),
			sl.Err(err),
		).Error("load vendor directory")
		os.Exit(1)
	}
	lg.With(slog.Int("vendors", len(vendors))).Info("vendor directory loaded")

	handler := core.New(lg)
	handler.SetAuthKey(conf.Listen.ApiKey)
	handler.SetPromptPath(conf.Data.PromptPath)
	handler.SetVendors(vendors)

	profileService := profile.NewProfileService(lg, *entity.NewUser(conf.User.Name, conf.User.Phone))

	db, err := repository.NewMongoClient(conf, lg)
	if err != nil {
		lg.With(
			sl.Err(err),
		).Error("mongo client")
	}
	if db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err = db.Ping(pingCtx); err != nil {
			lg.Error("mongo ping", sl.Err(err))
		}
		cancel()

		profileService.SetRepository(ctx, db)
		handler.SetRepository(db)
		lg.With(
			slog.String("host", conf.Mongo.Host),
			slog.String("port", conf.Mongo.Port),
			slog.String("user", conf.Mongo.User),
			slog.String("database", conf.Mongo.Database),
		).Info("mongo client initialized")
	}
	handler.SetProfileService(profileService)

	scheduleService := schedule.NewService(lg)
	redis, err := cache.NewRedis(conf)
	if err != nil {
		lg.With(
			slog.String("addr", conf.Redis.Addr),
			sl.Err(err),
		).Error("redis cache")
	}
	if redis != nil {
		defer redis.Close()
		scheduleService.SetCache(redis, time.Duration(conf.Redis.TTLMinutes)*time.Minute)
		lg.With(slog.String("addr", conf.Redis.Addr)).Info("schedule cache enabled")
	}
	if conf.Calendar.Enabled {
		calendar, err := schedule.NewCalendarProvider(ctx, conf.Calendar.CredentialsFile, conf.Calendar.Calendars,
			conf.Calendar.WorkdayStart, conf.Calendar.WorkdayEnd)
		if err != nil {
			lg.Error("google calendar", sl.Err(err))
		} else {
			scheduleService.SetCalendar(calendar)
			lg.With(slog.Int("calendars", len(conf.Calendar.Calendars))).Info("google calendar enabled")
		}
	}
	handler.SetScheduleService(scheduleService)

	smsSender := sms.NewSender(conf, lg)
	handler.SetSmsSender(smsSender)
	lg.With(slog.String("provider", smsSender.ProviderID())).Info("sms sender initialized")

	assistant := gpt.NewAssistant(conf, lg)
	assistant.SetToolHandler(handler)
	handler.SetAssistant(assistant)
	lg.With(
		slog.String("model", conf.OpenAI.Model),
		sl.Secret("openai_key", conf.OpenAI.ApiKey),
	).Info("assistant initialized")

	hub := ws.NewHub(lg)
	go hub.Run(ctx)
	handler.SetMessageService(hub)

	if tgBot != nil {
		tgBot.SetAdminService(handler)
		handler.SetNotifier(tgBot)
	}

	// *** blocking start with http server ***
	err = api.New(ctx, conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Info("service stopped")
}
