package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"fulfillment/cmd"
	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/packagerepo"
	"fulfillment/internal/adapters/out/postgres/piecerepo"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/adapters/out/postgres/slotrepo"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := mustOpenDatabase(configs)
	mustMigrate(db)

	planner := mustCreatePlanner()
	app, err := cmd.NewCompositionRoot(configs, db, planner)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := jobs.NewJobManager(
		app.ShipmentUoWFactory(),
		app.CreateMintArrivalTokenCommandHandler(),
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		HMACSecret:          goDotEnvVariable("HMAC_SECRET"),
		PublicBaseURL:       goDotEnvVariable("PUBLIC_BASE_URL"),
		ArrivalTokenTTLDays: goDotEnvIntVariable("ARRIVAL_TOKEN_TTL_DAYS", 3),
		ScanLinkTTLHours:    goDotEnvIntVariable("SCAN_LINK_TTL_HOURS", 24),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvIntVariable(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid integer value for %s", key)
	}
	return value
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func mustMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.LineItemDTO{},
		&piecerepo.PieceDTO{},
		&packagerepo.PackageDTO{},
		&packagerepo.PackagePieceDTO{},
		&slotrepo.ShelfSlotDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.ContainerDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func mustCreatePlanner() packing.Planner {
	// Warehouse packing rules; densities are liters of crate volume per kg.
	policy, err := packing.NewPolicy(20.0, 12, map[string]float64{
		"tomato":   0.95,
		"avocado":  1.10,
		"cucumber": 0.90,
		"pepper":   1.25,
		"grape":    0.85,
	})
	if err != nil {
		log.Fatalf("Failed to create packing policy: %v", err)
	}
	return packing.NewPlanner(policy)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreateRegisterOrderCommandHandler(),
		app.CreatePackOrderCommandHandler(),
		app.CreateCreateShelfSlotCommandHandler(),
		app.CreateStagePackageCommandHandler(),
		app.CreateMovePackageCommandHandler(),
		app.CreateUnstagePackageCommandHandler(),
		app.CreateCreateShipmentCommandHandler(),
		app.CreateDispatchShipmentCommandHandler(),
		app.CreateRecordScanCommandHandler(),
		app.CreateMintArrivalTokenCommandHandler(),
		app.CreateConfirmArrivalCommandHandler(),
		app.CreateGetShipmentProgressQueryHandler(),
		app.CreateGetFreeSlotsQueryHandler(),
		app.CreateGetPackingPlanQueryHandler(),
		app.ScanTokenService(),
		app.ScanLinkTTL(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
