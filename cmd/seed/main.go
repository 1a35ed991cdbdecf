package main

import (
	"log"
	"log/slog"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/config"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/database"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/repository"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/service"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	slog.Info("Starting database seeding...")

	db, err := database.NewMySQLConnection(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userRepo := repository.NewUserRepository(db)
	channelRepo := repository.NewChannelRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	channelService := service.NewChannelService(channelRepo, messageRepo)

	slog.Info("Creating initial users...")

	seedUsers := []struct {
		username  string
		firstName string
		email     string
		password  string
	}{
		{"admin", "Admin", "admin@instacord.dev", "123456"},
		{"alice", "Alice", "alice@instacord.dev", "123456"},
		{"bob", "Bob", "bob@instacord.dev", "123456"},
		{"charlie", "Charlie", "charlie@instacord.dev", "123456"},
	}

	var memberIDs []uint
	for _, data := range seedUsers {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(data.password), bcrypt.DefaultCost)
		user := &models.User{
			Username:  data.username,
			FirstName: data.firstName,
			Email:     data.email,
			Password:  string(hashed),
		}
		if err := userRepo.Create(user); err != nil {
			slog.Warn("User might already exist", "username", data.username, "error", err)
			if existing, findErr := userRepo.FindByEmail(data.email); findErr == nil {
				memberIDs = append(memberIDs, existing.ID)
			}
			continue
		}
		slog.Info("Created user", "username", data.username, "id", user.ID)
		memberIDs = append(memberIDs, user.ID)
	}

	if len(memberIDs) == 0 {
		slog.Warn("No users available for channel seeding")
		return
	}

	slog.Info("Creating initial channels...")
	ownerID := memberIDs[0]
	for _, name := range []string{"general", "random", "development"} {
		channel, err := channelService.Create(ownerID, &models.CreateChannelRequest{
			Name:      name,
			Type:      models.ChannelTypeGroup,
			MemberIDs: memberIDs,
		})
		if err != nil {
			slog.Warn("Channel might already exist", "name", name, "error", err)
			continue
		}
		slog.Info("Created channel", "name", name, "id", channel.ID)
	}

	slog.Info("Seeding complete")
}
