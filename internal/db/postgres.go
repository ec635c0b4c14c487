package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wayfarer-travel/wayfarer-backend/internal/logger"
	"github.com/wayfarer-travel/wayfarer-backend/internal/types"
	"github.com/wayfarer-travel/wayfarer-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "wayfarer", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

// AutoMigrateAll migrates the schema and wires the ownership cascades:
// deleting a user or a tour removes its dependent bookings, reviews and
// wishlist items at the storage level.
func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Tour{},
		&types.Booking{},
		&types.Review{},
		&types.WishlistItem{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	cascades := []struct {
		constraint string
		statement  string
	}{
		{"fk_bookings_user_id", `ALTER TABLE "bookings" ADD CONSTRAINT "fk_bookings_user_id" FOREIGN KEY ("user_id") REFERENCES "users"("id") ON DELETE CASCADE`},
		{"fk_bookings_tour_id", `ALTER TABLE "bookings" ADD CONSTRAINT "fk_bookings_tour_id" FOREIGN KEY ("tour_id") REFERENCES "tours"("id") ON DELETE CASCADE`},
		{"fk_reviews_user_id", `ALTER TABLE "reviews" ADD CONSTRAINT "fk_reviews_user_id" FOREIGN KEY ("user_id") REFERENCES "users"("id") ON DELETE CASCADE`},
		{"fk_reviews_tour_id", `ALTER TABLE "reviews" ADD CONSTRAINT "fk_reviews_tour_id" FOREIGN KEY ("tour_id") REFERENCES "tours"("id") ON DELETE CASCADE`},
		{"fk_wishlist_items_user_id", `ALTER TABLE "wishlist_items" ADD CONSTRAINT "fk_wishlist_items_user_id" FOREIGN KEY ("user_id") REFERENCES "users"("id") ON DELETE CASCADE`},
		{"fk_wishlist_items_tour_id", `ALTER TABLE "wishlist_items" ADD CONSTRAINT "fk_wishlist_items_tour_id" FOREIGN KEY ("tour_id") REFERENCES "tours"("id") ON DELETE CASCADE`},
	}
	for _, c := range cascades {
		if err := s.db.Exec(fmt.Sprintf(`ALTER TABLE %s DROP CONSTRAINT IF EXISTS %q`, tableOf(c.statement), c.constraint)).Error; err != nil {
			return fmt.Errorf("failed to reset %s: %w", c.constraint, err)
		}
		if err := s.db.Exec(c.statement).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", c.constraint, err)
		}
	}
	return nil
}

func tableOf(stmt string) string {
	var table string
	_, _ = fmt.Sscanf(stmt, "ALTER TABLE %s", &table)
	return table
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
