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

	"mealweek/internal/clipper"
	"mealweek/internal/config"
	"mealweek/internal/database"
	"mealweek/internal/identity"
	"mealweek/internal/metrics"
	"mealweek/internal/plan"
	"mealweek/internal/recipe"
	"mealweek/internal/server"
	"mealweek/internal/shopping"
	"mealweek/internal/storage"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	recipeRepo := recipe.NewRepository(db.SQL)
	listRepo := shopping.NewRepository(db.SQL)
	planRepo := plan.NewRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)
	svc := shopping.NewService(db.SQL, listRepo, planRepo, recipeRepo, metricsStore)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "serve":
		serve(cfg, recipeRepo, svc)
	case "import":
		if err := importRecipes(ctx, cfg, recipeRepo); err != nil {
			log.Fatalf("Import failed: %v", err)
		}
	case "export":
		exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
		userID := exportCmd.String("user", "", "User whose recipes to export")
		exportCmd.Parse(os.Args[2:])
		if *userID == "" {
			log.Fatal("export requires -user")
		}
		if err := exportRecipes(ctx, cfg, recipeRepo, *userID); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
	case "token":
		tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)
		userID := tokenCmd.String("user", "", "User id to issue a token for")
		tokenCmd.Parse(os.Args[2:])
		if *userID == "" {
			log.Fatal("token requires -user")
		}
		token, err := identity.NewVerifier(cfg.JWTSecret).Issue(*userID)
		if err != nil {
			log.Fatalf("Failed to issue token: %v", err)
		}
		fmt.Println(token)
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(*days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old sync records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func serve(cfg *config.Config, recipeRepo *recipe.Repository, svc *shopping.Service) {
	verifier := identity.NewVerifier(cfg.JWTSecret)
	clip := clipper.NewClipper(recipeRepo)
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.NewServer(verifier, recipeRepo, svc, clip).Router(),
	}

	go func() {
		log.Printf("API server listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

// importRecipes loads every JSON recipe file from the recipe directory into
// the catalog. Files must already carry a user_id; surviving ids are upserted.
func importRecipes(ctx context.Context, cfg *config.Config, repo *recipe.Repository) error {
	store, err := storage.NewRecipeStore(cfg.RecipeDir)
	if err != nil {
		return err
	}
	recipes, err := store.ListAll()
	if err != nil {
		return err
	}
	imported := 0
	for _, rec := range recipes {
		if rec.ID == "" || rec.UserID == "" {
			log.Printf("Skipping recipe %q: missing id or user_id", rec.Title)
			continue
		}
		if err := repo.Save(ctx, rec); err != nil {
			return fmt.Errorf("failed to import recipe %s: %w", rec.ID, err)
		}
		imported++
	}
	fmt.Printf("Imported %d recipes from %s.\n", imported, cfg.RecipeDir)
	return nil
}

// exportRecipes writes a user's catalog out as one JSON file per recipe.
func exportRecipes(ctx context.Context, cfg *config.Config, repo *recipe.Repository, userID string) error {
	store, err := storage.NewRecipeStore(cfg.RecipeDir)
	if err != nil {
		return err
	}
	recipes, err := repo.List(ctx, userID)
	if err != nil {
		return err
	}
	for _, rec := range recipes {
		if err := store.Save(rec); err != nil {
			return fmt.Errorf("failed to export recipe %s: %w", rec.ID, err)
		}
	}
	fmt.Printf("Exported %d recipes to %s.\n", len(recipes), cfg.RecipeDir)
	return nil
}

func printUsage() {
	fmt.Println("Usage: mealweek <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  serve              Run the JSON API server")
	fmt.Println("  import             Import JSON recipe files into the catalog")
	fmt.Println("  export             Export a user's catalog as JSON files (-user)")
	fmt.Println("  token              Issue an API token for a user (-user)")
	fmt.Println("  metrics-cleanup    Remove old sync records (-days)")
}
