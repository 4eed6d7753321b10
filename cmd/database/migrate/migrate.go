package migration

import (
	"Hostel-Food-Ordering/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	models := []struct {
		name  string
		model any
	}{
		{"university", &entities.University{}},
		{"user", &entities.User{}},
		{"menu item", &entities.MenuItem{}},
		{"menu variant", &entities.MenuVariant{}},
		{"menu availability", &entities.MenuAvailability{}},
		{"order", &entities.Order{}},
		{"order item", &entities.OrderItem{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Printf("Error migrating %s database: %v", m.name, err)
			return err
		}
	}

	fmt.Println("Database migration complete")
	return nil
}
