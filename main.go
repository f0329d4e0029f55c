package main

import (
	"context"
	"errors"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path"
	"strconv"
	"syscall"
	"time"

	"github.com/Skyxo/killer/api"
	"github.com/Skyxo/killer/pkg"
	"github.com/Skyxo/killer/pkg/audit"
	"github.com/Skyxo/killer/pkg/game"
	"github.com/Skyxo/killer/pkg/graph"
	"github.com/Skyxo/killer/pkg/locale"
	"github.com/Skyxo/killer/pkg/metrics"
	"github.com/Skyxo/killer/pkg/photo"
	"github.com/Skyxo/killer/pkg/player"
	"github.com/Skyxo/killer/pkg/redis"
	"github.com/Skyxo/killer/pkg/storage"
	"github.com/Skyxo/killer/pkg/visibility"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const (
	DefaultPort   = "5000"
	DefaultURL    = "http://localhost:5000"
	DefaultGameID = "killer"
)

func main() {
	err := killerMainWrapper()
	if err != nil {
		log.Println("Program exited with the following error:")
		log.Println(err)
		os.Exit(1)
	}
}

func killerMainWrapper() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using the environment only")
	}

	logPath := os.Getenv("LOG_PATH")
	if logPath == "" {
		logPath = "./"
	}
	if os.Getenv("DISABLE_LOG_FILE") == "" {
		file, err := os.Create(path.Join(logPath, "logs.txt"))
		if err != nil {
			return err
		}
		defer file.Close()
		log.SetOutput(io.MultiWriter(os.Stdout, file))
	}
	log.Println(pkg.Version + "-" + pkg.Commit)

	port := os.Getenv("API_PORT")
	if port == "" {
		port = DefaultPort
	}
	url := os.Getenv("API_SERVER_URL")
	if url == "" {
		log.Printf("[Info] No valid API_SERVER_URL provided. Defaulting to %s\n", DefaultURL)
		url = DefaultURL
	}
	gameID := os.Getenv("GAME_ID")
	if gameID == "" {
		gameID = DefaultGameID
	}
	sessionTTL, err := durationFromEnv("SESSION_TTL", redis.DefaultSessionTTL)
	if err != nil {
		return err
	}
	auditInterval, err := durationFromEnv("AUDIT_INTERVAL", audit.DefaultInterval)
	if err != nil {
		return err
	}
	photoTTL, err := durationFromEnv("PHOTO_URL_TTL", photo.DefaultURLTTL)
	if err != nil {
		return err
	}

	locale.InitLang(os.Getenv("LOCALE_PATH"), os.Getenv("BOT_LANG"))

	var redisDriver redis.Driver
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		return errors.New("no REDIS_ADDR specified; exiting")
	}
	err = redisDriver.Init(redis.RedisParameters{
		Addr:     redisAddr,
		Username: "",
		Password: os.Getenv("REDIS_PASS"),
		GameID:   gameID,
	})
	if err != nil {
		return err
	}
	defer redisDriver.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := redisDriver.Ping(ctx); err != nil {
		log.Println("[Redis] ping failed:", err)
	}
	redisDriver.SetVersionAndCommit(ctx, pkg.Version, pkg.Commit)

	psql := storage.PsqlInterface{}
	pAddr := os.Getenv("POSTGRES_ADDR")
	if pAddr == "" {
		return errors.New("no POSTGRES_ADDR specified; exiting")
	}
	pUser := os.Getenv("POSTGRES_USER")
	if pUser == "" {
		return errors.New("no POSTGRES_USER specified; exiting")
	}
	pPass := os.Getenv("POSTGRES_PASS")
	if pPass == "" {
		return errors.New("no POSTGRES_PASS specified; exiting")
	}
	err = psql.Init(storage.ConstructPsqlConnectURL(pAddr, pUser, pPass))
	if err != nil {
		return err
	}
	defer psql.Close()

	if err := psql.LoadAndExecFromFile("./storage/postgres.sql"); err != nil {
		log.Println("Exiting with fatal error when attempting to execute postgres.sql:")
		return err
	}

	if seed := os.Getenv("SEED_CSV"); seed != "" {
		file, err := os.Open(seed)
		if err != nil {
			return err
		}
		_, err = psql.SeedFromCSV(ctx, file, rand.New(rand.NewSource(time.Now().UnixNano())))
		file.Close()
		if err != nil {
			return err
		}
	}

	players, err := psql.LoadPlayers(ctx)
	if err != nil {
		return err
	}
	reg, err := player.NewRegistry(players...)
	if err != nil {
		return err
	}
	g, err := graph.New(reg)
	if err != nil {
		return err
	}

	node := uuid.NewString()
	departures := metrics.NewDepartureObserver()
	session := game.NewSession(g,
		game.WithStore(&psql),
		game.WithLocker(&redisDriver, &psql),
		game.WithObserver(departures.Observe),
		game.WithObserver(func(d *game.Departure, snap *game.Snapshot) {
			if err := redisDriver.PublishDeparture(context.Background(), node, d); err != nil {
				log.Println("[Redis] publishing departure:", err)
			}
			if d.GameOver {
				log.Printf("[Game] %s wins after %d departures\n", d.Winner, snap.Departures)
			}
		}),
	)
	listenCtx, stopListening := context.WithCancel(context.Background())
	defer stopListening()
	go redisDriver.ListenDepartures(listenCtx, node, func(ev redis.DepartureEvent) {
		if err := session.Reload(listenCtx); err != nil {
			log.Printf("[Game] reloading after departure of %s on node %s: %v\n", ev.Departure.Subject, ev.Node, err)
		}
	})

	counts := session.Snapshot().Counts()
	log.Printf("[Game] %s loaded: %d alive, %d dead, %d gave up, %d admins\n",
		gameID, counts.Alive, counts.Dead, counts.GaveUp, counts.Admins)

	var photos visibility.PhotoResolver = photo.Static{BaseURL: os.Getenv("PHOTO_BASE_URL")}
	if accountID := os.Getenv("R2_ACCOUNT_ID"); accountID != "" {
		signer, err := photo.NewR2Signer(ctx, photo.R2Parameters{
			AccountID:       accountID,
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			AccessKeySecret: os.Getenv("R2_ACCESS_KEY_SECRET"),
			Bucket:          os.Getenv("R2_BUCKET_NAME"),
			URLTTL:          photoTTL,
		})
		if err != nil {
			return err
		}
		photos = signer
		log.Println("[Photo] serving photos from R2 bucket", os.Getenv("R2_BUCKET_NAME"))
	}

	auditor := audit.NewAuditor(session, true)
	if err := auditor.Start(auditInterval); err != nil {
		return err
	}
	defer auditor.Stop()

	collector := metrics.NewCollector(session, &redisDriver, redis.MetricTypeStrings, gameID)

	killerApi := api.NewApi(session, &redisDriver, visibility.NewFilter(photos), api.Options{
		URL:        url,
		SessionTTL: sessionTTL,
		Recorder:   &redisDriver,
		Guard:      &redisDriver,
		Cache:      &redisDriver,
		Exporter:   &psql,
		Auditor:    auditor,
		Info: func(ctx context.Context) redis.Info {
			return redisDriver.GetInfo(ctx, psql.Pool)
		},
		Metrics:  metrics.Handler(collector, departures.Collector()),
		PhotoDir: os.Getenv("PHOTO_DIR"),
	})

	go func() {
		log.Printf("[API] listening on :%s\n", port)
		if err := killerApi.StartServer(port); err != nil {
			log.Fatal(err)
		}
	}()

	log.Println("Killer is now running.  Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	log.Printf("Received Sigterm or Kill signal. Killer will terminate in 1 second")
	time.Sleep(time.Second)
	return nil
}

// durationFromEnv accepts Go durations ("90m") as well as a bare number of seconds
func durationFromEnv(name string, def time.Duration) (time.Duration, error) {
	str := os.Getenv(name)
	if str == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(str); err == nil {
		if secs <= 0 {
			return 0, errors.New(name + " must be positive")
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		return 0, errors.New("error parsing " + name + ": \"" + str + "\"; expected a duration like 1h or 90m")
	}
	if d <= 0 {
		return 0, errors.New(name + " must be positive")
	}
	return d, nil
}
