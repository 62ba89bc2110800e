package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"rental-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "rental_db")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)
	return dsn, nil
}

// SeedDatabase inserts a demo property, its units and an inventory catalogue
// so the checkout flow is exercisable on a fresh database. Idempotent.
func SeedDatabase() {
	var propCount int64
	DB.Model(&models.Property{}).Count(&propCount)
	if propCount == 0 {
		prop := models.Property{
			Name:    "Riverside Residence",
			Address: "12 Riverside Road",
			City:    "Chiang Mai",
			Owner:   "Riverside Holdings",
		}
		if err := DB.Create(&prop).Error; err != nil {
			log.Printf("warning: failed to seed property: %v", err)
		} else {
			units := []models.Unit{
				{PropertyID: prop.ID, Name: "A-101", Type: "Studio", Status: models.UnitAvailable, Rent: decimal.NewFromInt(8500), Bedrooms: 1, Bathrooms: 1, MaxGuests: 2},
				{PropertyID: prop.ID, Name: "A-102", Type: "One-Bedroom", Status: models.UnitAvailable, Rent: decimal.NewFromInt(12000), Bedrooms: 1, Bathrooms: 1, MaxGuests: 3},
				{PropertyID: prop.ID, Name: "B-201", Type: "Two-Bedroom", Status: models.UnitAvailable, Rent: decimal.NewFromInt(18000), Bedrooms: 2, Bathrooms: 2, MaxGuests: 5},
			}
			if err := DB.Create(&units).Error; err != nil {
				log.Printf("warning: failed to seed units: %v", err)
			} else {
				log.Println("Property and units seeded")
			}
		}
	}

	var itemCount int64
	DB.Model(&models.InventoryItem{}).Count(&itemCount)
	if itemCount == 0 {
		items := []models.InventoryItem{
			{ItemName: "Television 43\"", Category: "electronics", Quantity: 4, AssignableOnBooking: true},
			{ItemName: "Sofa", Category: "furniture", Quantity: 3, AssignableOnBooking: true},
			{ItemName: "Microwave", Category: "appliance", Quantity: 5, AssignableOnBooking: true},
			{ItemName: "Spare Key Set", Category: "access", Quantity: 10, AssignableOnBooking: false},
		}
		if err := DB.Create(&items).Error; err != nil {
			log.Printf("warning: failed to seed inventory items: %v", err)
		} else {
			log.Println("Inventory catalogue seeded")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Info,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Property{},
		&models.Unit{},
		&models.Guest{},
		&models.Booking{},
		&models.InventoryItem{},
		&models.InventoryAssignment{},
		&models.InventoryMovement{},
		&models.CheckoutReport{},
		&models.CheckoutItem{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
