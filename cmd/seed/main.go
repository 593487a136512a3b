package main

import (
	"context"
	stderrors "errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"kivutrips/internal/config"
	"kivutrips/internal/db"
	"kivutrips/internal/errors"
	"kivutrips/internal/model"
	"kivutrips/internal/repository"
)

const defaultAdminEmail = "admin@example.com"

// fixtureActivities is the development catalog.
var fixtureActivities = []model.Activity{
	{
		Name:        "Mountain Hiking",
		Type:        model.TypeAdventure,
		Image:       "https://images.unsplash.com/photo-1551632811-561732d1e306?q=80&w=1470&auto=format&fit=crop",
		Description: "Experience the thrill of hiking in the beautiful mountains.",
		Location:    "Musanze",
		FullAddress: "Volcanoes National Park, Musanze, Rwanda",
		Latitude:    "-1.4833",
		Longitude:   "29.6333",
		Contact:     "info@mountainhiking.com",
		Phone:       "+250 784 123 456",
		Featured:    true,
	},
	{
		Name:        "Luxury Resort",
		Type:        model.TypeHotel,
		Image:       "https://images.unsplash.com/photo-1566073771259-6a8506099945?q=80&w=1470&auto=format&fit=crop",
		Description: "Relax and unwind at our luxury resort with stunning views.",
		Location:    "Kigali",
		FullAddress: "KG 9 Ave, Kigali, Rwanda",
		Latitude:    "-1.9441",
		Longitude:   "30.0619",
		Contact:     "reservations@luxuryresort.com",
		Phone:       "+250 784 987 654",
		Featured:    true,
	},
	{
		Name:        "Lakeside Restaurant",
		Type:        model.TypeRestaurant,
		Image:       "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?q=80&w=1470&auto=format&fit=crop",
		Description: "Enjoy delicious meals with a beautiful view of the lake.",
		Location:    "Kibuye",
		FullAddress: "Lake Kivu, Kibuye, Rwanda",
		Latitude:    "-2.0600",
		Longitude:   "29.3500",
		Contact:     "info@lakesiderestaurant.com",
		Phone:       "+250 784 456 789",
		Featured:    false,
	},
}

func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.StoreDriver == config.DriverMemory {
		log.Fatal("STORE_DRIVER=memory keeps no state between processes; seed mysql or mongo instead")
	}

	userRepo, activityRepo, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("store init: %v", err)
	}
	log.Printf("Connected to %s store", cfg.StoreDriver)

	ctx := context.Background()

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	created, skipped, err := seedActivities(ctx, activityRepo)
	if err != nil {
		log.Fatalf("Failed to seed activities: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New activities created: %d", created)
	log.Printf("  - Existing activities skipped: %d", skipped)
}

// seedAdmin creates the admin account unless it already exists.
func seedAdmin(ctx context.Context, repo repository.UserRepository) error {
	email := envOr("SEED_ADMIN_EMAIL", defaultAdminEmail)

	if _, err := repo.FindByEmail(ctx, email); err == nil {
		log.Printf("Admin user %s already present", email)
		return nil
	} else if !stderrors.Is(err, errors.ErrUserNotFound) {
		return err
	}

	password := envOr("SEED_ADMIN_PASSWORD", "admin123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		LastName:     "User",
		Role:         model.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Created admin user %s", email)
	return nil
}

// seedActivities inserts fixture listings that are not already present,
// matching on name.
func seedActivities(ctx context.Context, repo repository.ActivityRepository) (created, skipped int, err error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, 0, err
	}
	byName := make(map[string]bool, len(existing))
	for _, activity := range existing {
		byName[activity.Name] = true
	}

	for _, fixture := range fixtureActivities {
		if byName[fixture.Name] {
			skipped++
			continue
		}
		activity := fixture
		if err := repo.Create(ctx, &activity); err != nil {
			return created, skipped, err
		}
		created++
	}
	return created, skipped, nil
}

func buildRepositories(cfg *config.Config) (repository.UserRepository, repository.ActivityRepository, error) {
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := gormDB.AutoMigrate(&model.User{}, &model.Activity{}); err != nil {
			return nil, nil, err
		}
		return repository.NewUserRepository(gormDB), repository.NewActivityRepository(gormDB), nil

	case config.DriverMongo:
		client, err := db.NewMongo(cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		database := client.Database(cfg.MongoDB)
		if err := repository.EnsureMongoIndexes(context.Background(), database); err != nil {
			return nil, nil, err
		}
		return repository.NewMongoUserRepository(database), repository.NewMongoActivityRepository(database), nil
	}
	return nil, nil, stderrors.New("unsupported store driver")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
