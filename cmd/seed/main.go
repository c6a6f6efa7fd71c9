package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/joho/godotenv"
	"github.com/mroshb/friends_api/internal/config"
	"github.com/mroshb/friends_api/internal/database"
	"github.com/mroshb/friends_api/internal/repositories"
	"github.com/mroshb/friends_api/internal/seed"
	"github.com/mroshb/friends_api/internal/services"
	"github.com/mroshb/friends_api/pkg/logger"
	"github.com/xuri/excelize/v2"
)

func main() {
	path := flag.String("file", "seed.xlsx", "workbook with users, posts and friendships sheets")
	inspect := flag.Bool("inspect", false, "print the first rows of every sheet and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	logger.Init()
	defer logger.Sync()

	f, err := excelize.OpenFile(*path)
	if err != nil {
		logger.Fatal("Failed to open workbook", err)
	}
	defer f.Close()

	if *inspect {
		preview, err := seed.Inspect(f, 6)
		if err != nil {
			logger.Fatal("Failed to read workbook", err)
		}
		sheets := make([]string, 0, len(preview))
		for name := range preview {
			sheets = append(sheets, name)
		}
		sort.Strings(sheets)
		for _, name := range sheets {
			fmt.Printf("Sheet %s:\n", name)
			for i, row := range preview[name] {
				fmt.Printf("  Row %d: %v\n", i, row)
			}
		}
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	userRepo := repositories.NewUserRepository(db)
	friendRepo := repositories.NewFriendRepository(db)
	friends := services.NewFriendService(friendRepo, userRepo, services.SystemClock)

	importer := seed.NewImporter(
		userRepo,
		services.NewUserService(userRepo, friends, cfg.JWTSecret),
		services.NewPostService(repositories.NewPostRepository(db), userRepo, friendRepo),
		friends,
	)

	res, err := importer.Import(context.Background(), f)
	if err != nil {
		logger.Fatal("Import failed", err)
	}

	logger.Info("Import finished",
		"users", res.Users,
		"posts", res.Posts,
		"friendships", res.Friendships,
		"skipped", res.Skipped,
	)
}
