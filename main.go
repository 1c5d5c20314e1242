package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"paysheet/adapters/postgres"
	"paysheet/app"
	"paysheet/internal/config"
	"paysheet/internal/migration"
	"paysheet/ui"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("[Main] %v", err)
	}
}

func run() error {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.URL)
	if err != nil {
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		return err
	}
	log.Printf("[Main] schema migrated to version %s", runner.Version())

	companyRepo := postgres.NewCompanyRepository(db)
	employeeRepo := postgres.NewEmployeeRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)

	companies := app.NewCompanyService(companyRepo)
	employees := app.NewEmployeeService(companyRepo, employeeRepo)
	attendance := app.NewAttendanceService(companyRepo, employeeRepo, attendanceRepo)

	httpApp := ui.NewApp(ui.Config{Port: cfg.Server.Port}, companies, employees, attendance)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(httpApp.Start)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		log.Printf("[Main] shutting down")
		return httpApp.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
