package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studio-backend/access"
	"studio-backend/config"
	"studio-backend/controllers"
	"studio-backend/routes"
	"studio-backend/services"
	"studio-backend/session"
	"studio-backend/store"
	"studio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const sessionIdleTimeout = 12 * time.Hour

func main() {
	genSecret := flag.Bool("gen-secret", false, "print a random JWT_SECRET and exit")
	flag.Parse()
	if *genSecret {
		fmt.Println(utils.GenerateJWTSecret())
		return
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := store.New(db)
	replica := store.NewReplica()
	if err := replica.Start(ctx, st); err != nil {
		log.Fatalf("replica: %v", err)
	}

	sender, err := newSender(cfg)
	if err != nil {
		log.Fatalf("messaging: %v", err)
	}
	reminders := services.NewReminderService(st, sender, cfg.Studio.Name, cfg.Studio.Location)
	if err := reminders.StartScheduler(cfg.Reminders.Cron); err != nil {
		log.Fatalf("reminders: %v", err)
	}
	defer reminders.Stop()

	sessions := session.NewRegistry()
	go pruneSessions(ctx, sessions)

	deps := &controllers.Deps{
		Store:      st,
		Replica:    replica,
		Gate:       newGate(cfg, st),
		Sessions:   sessions,
		Reminders:  reminders,
		Dispatcher: services.NewReportDispatcher(st, sender, cfg.Twilio.ReportTo),
		Studio:     cfg.Studio,
		JWT:        cfg.JWT,
	}

	r := routes.SetupRouter(cfg, deps)
	printRoutes(r)

	srv := &http.Server{Addr: ":" + cfg.App.Port, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("%s listening on :%s", cfg.Studio.Name, cfg.App.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server: %v", err)
	}
}

func newGate(cfg *config.Config, st *store.Store) access.Gate {
	if cfg.App.PinGate == config.PinGateBcrypt {
		return access.NewHashedPinGate(st, 0)
	}
	return access.NewPlainPinGate(st)
}

// newSender prefers Twilio, then Telegram, and falls back to the log.
func newSender(cfg *config.Config) (services.Sender, error) {
	switch {
	case cfg.Twilio.Enabled():
		log.Println("[NOTIFY] using Twilio WhatsApp")
		return services.NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.WhatsAppNumber, cfg.Studio.CountryCode), nil
	case cfg.Telegram.Enabled():
		log.Println("[NOTIFY] using Telegram")
		return services.NewTelegramSender(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	default:
		log.Println("[NOTIFY] no messaging credentials, messages are only logged")
		return services.LogSender{}, nil
	}
}

func pruneSessions(ctx context.Context, sessions *session.Registry) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := sessions.Prune(now.Add(-sessionIdleTimeout)); n > 0 {
				log.Printf("[SESSION] pruned %d idle sessions", n)
			}
		}
	}
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
