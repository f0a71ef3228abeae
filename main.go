package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"pkbm_backend/internals/configs"
	database "pkbm_backend/internals/databases"
	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	paymentService "pkbm_backend/internals/features/finance/payments/service"
	middlewares "pkbm_backend/internals/middlewares"
	routes "pkbm_backend/internals/route"
	routeDetails "pkbm_backend/internals/route/details"
	"pkbm_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	ledger := configs.LoadLedgerConfig()

	policy, err := paymentService.ParseOverpaymentPolicy(ledger.OverpaymentPolicy)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard (selaras dengan statement_timeout di DB)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()

	// 🛠️ dev/staging: AUTO_MIGRATE=true & RUN_SEEDS=true
	if ledger.AutoMigrate {
		if err := seeds.Migrate(database.DB); err != nil {
			log.Fatalf("❌ AutoMigrate gagal: %v", err)
		}
	}
	if ledger.RunSeeds {
		seeds.RunAllSeeds(database.DB)
	}
	database.WarmUpQueries()

	// 📅 tahun ajaran aktif: dari config, kalau kosong dari tabel
	activeID := ledger.ActiveAcademicYearID
	if activeID == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		activeID, err = yearService.ResolveActive(ctx, database.DB)
		cancel()
		if err != nil {
			log.Printf("[WARN] Tahun ajaran aktif belum bisa dibaca: %v", err)
		}
	}
	if activeID == nil {
		log.Println("[WARN] Tahun ajaran aktif belum diset, generate tagihan wajib menyertakan academic_year_id")
	}

	// ✅ MIDTRANS
	paymentService.InitMidtrans(ledger.MidtransServerKey, ledger.MidtransUseProd)
	if ledger.MidtransServerKey == "" {
		log.Println("[WARN] MIDTRANS_SERVER_KEY kosong: Snap & webhook notifikasi dibalas 503")
	}

	routes.SetupRoutes(app, routeDetails.Deps{
		DB:          database.DB,
		Active:      yearService.NewActiveYear(activeID),
		Policy:      policy,
		DueDays:     ledger.BillingDueDays,
		RecentLimit: ledger.RecentTransactionsLimit,
		Midtrans:    paymentService.NewMidtransService(database.DB, &paymentService.SnapClient, ledger.MidtransServerKey),
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
