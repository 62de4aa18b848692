package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/skylinetravels/flightbooking/config"
	"github.com/skylinetravels/flightbooking/internal/auth"
	"github.com/skylinetravels/flightbooking/internal/bootstrap"
	"github.com/skylinetravels/flightbooking/internal/cache"
	"github.com/skylinetravels/flightbooking/internal/service/destinations"
	"github.com/skylinetravels/flightbooking/internal/service/flights"
	"github.com/skylinetravels/flightbooking/internal/service/users"
)

const usage = `usage: admin <command>

commands:
  create-admin [email] [password] [name]   create an admin or promote an existing user
  seed                                     replace flights and destinations with the sample catalogue
`

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes one command and returns the process exit code, so deferred
// cleanup always happens before exit.
func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", os.Getenv("CONFIG_PATH"), "path to config.yaml")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() == 0 || !knownCommand(fs.Arg(0)) {
		fs.Usage()
		return exitUsage
	}
	if *configPath == "" {
		*configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return exitError
	}
	logger := bootstrap.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("open store", "driver", cfg.Database.Driver, "error", err)
		return exitError
	}
	defer store.Close()

	command := fs.Arg(0)
	switch command {
	case "create-admin":
		userService := users.NewUserService(store.Users, auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()), cfg.Auth.BcryptCost, logger)
		err = createAdmin(ctx, userService, fs.Args()[1:])
	case "seed":
		var (
			flightCache      flights.FlightCache
			destinationCache destinations.DestinationCache
		)
		if cfg.Redis.Addr != "" {
			redisCache := cache.NewRedisCache(cfg.Redis, cfg.Cache.FlightsTTL())
			defer redisCache.Close()
			if err := redisCache.Ping(ctx); err == nil {
				flightCache, destinationCache = redisCache, redisCache
			}
		}
		err = seed(ctx, store, flightCache, destinationCache, logger)
	}
	if err != nil {
		logger.Error(command+" failed", "error", err)
		return exitError
	}
	return exitOK
}

func knownCommand(name string) bool {
	return name == "create-admin" || name == "seed"
}

func createAdmin(ctx context.Context, service *users.UserService, args []string) error {
	input := users.RegisterInput{
		Email:    argOr(args, 0, "admin@skylinetravels.com"),
		Password: argOr(args, 1, "admin123"),
		Name:     argOr(args, 2, "Admin User"),
	}

	_, created, err := service.CreateAdmin(ctx, input)
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("Admin user %s created\n", input.Email)
		fmt.Printf("Password: %s\nChange it after the first login.\n", input.Password)
	} else {
		fmt.Printf("User %s promoted to admin\n", input.Email)
	}
	return nil
}

func argOr(args []string, i int, fallback string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return fallback
}

