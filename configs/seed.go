package configs

import (
	"errors"
	"fmt"

	"tapr/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the dashboard account on first start.
func SeedAdmin(db *gorm.DB, cfg *Config, log logrus.FieldLogger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Info("skip seeding admin: ADMIN_EMAIL/ADMIN_PASSWORD not set")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.WithField("email", cfg.AdminEmail).Info("admin already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := entity.User{
		Email:    cfg.AdminEmail,
		Name:     "Admin",
		Password: string(hash),
		Role:     entity.RoleAdmin,
	}
	return db.Create(&admin).Error
}

const demoVenueSlug = "copper-head-beer-workshop"

// SeedDemo loads the demo venue, its menu and staff once.
func SeedDemo(db *gorm.DB, cfg *Config, log logrus.FieldLogger) error {
	var existing entity.Venue
	err := db.Where("slug = ?", demoVenueSlug).First(&existing).Error
	if err == nil {
		log.Info("demo data already present, skipping seed")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user := entity.User{Email: "nessa@tapr.app", Name: "Nessa Verve", Password: string(hash), Role: entity.RoleCustomer}
		if err := tx.Where(entity.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
			return err
		}

		venue := entity.Venue{
			Model:      entity.Model{ID: "v1"},
			Slug:       demoVenueSlug,
			Name:       "Copper Head. Beer Workshop",
			Categories: []string{"Bar", "Brewery", "Gastropub"},
			Phone:      "+1 416-928-0018",
			Address:    "17 St Nicholas St",
			City:       "Toronto, ON M4Y 3G4, Canada",
			Lat:        43.6665,
			Lng:        -79.3864,
			OpenTime:   "12:00",
			CloseTime:  "00:00",
			Bio:        "Relaxed, family-owned venue doling out pub grub & local brews plus brunch & open-mike nights.",
			LogoText:   "CH",
		}
		if err := tx.Create(&venue).Error; err != nil {
			return err
		}

		items := []entity.MenuItem{
			{Name: "Bruschetta Feta", Description: "With tomatoes, basil and cottage feta", Price: 11.0, Category: "Starter", Weight: "100g"},
			{Name: "Mushroom Soup", Description: "Creamy wild mushroom with truffle oil and sourdough", Price: 9.5, Category: "Starter", Weight: "250ml"},
			{Name: "Fish & Chips", Description: "Beer-battered cod with thick-cut fries and tartar sauce", Price: 18.0, Category: "Main", Weight: "350g"},
			{Name: "Copper Burger", Description: "House-made patty, cheddar, pickles, house sauce, brioche bun", Price: 16.5, Category: "Main", Weight: "300g"},
			{Name: "Vice City", Description: "Pisco, Lemon, Melon syrup, Pear liquor, Sugar, Cardamon bitter", Price: 12.99, Category: "Cocktail"},
			{Name: "Spiced Orange Cake", Description: "Gold Rum, Aperol, Cointreau, Orange, Lemon, Sugar, Cinnamon", Price: 10.95, Category: "Cocktail"},
			{Name: "Copper Head IPA", Description: "House-brewed India Pale Ale, 6.2% ABV, citrus and pine notes", Price: 8.0, Category: "Beer", Weight: "473ml"},
			{Name: "Sparkling Ginger Lemonade", Description: "Fresh ginger, lemon, honey, sparkling water", Price: 6.5, Category: "Non-alcoholic", Weight: "350ml"},
		}
		for i := range items {
			items[i].VenueID = venue.ID
			items[i].IsAvailable = true
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		categories := []entity.MenuCategory{
			{Slug: "starter", Name: "Starter", NameFa: "پیش‌غذا"},
			{Slug: "main", Name: "Main", NameFa: "غذای اصلی"},
			{Slug: "cocktail", Name: "Cocktail", NameFa: "کوکتل"},
			{Slug: "beer", Name: "Beer", NameFa: "آبجو"},
			{Slug: "non-alcoholic", Name: "Non-alcoholic", NameFa: "بدون الکل"},
		}
		for i := range categories {
			categories[i].VenueID = venue.ID
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}

		staff := []entity.Staff{
			{Model: entity.Model{ID: "s1"}, Name: "Nessa Verve", Role: "Head Server", Rating: 4.9},
			{Model: entity.Model{ID: "s2"}, Name: "James Miller", Role: "Bartender", Rating: 4.8},
			{Model: entity.Model{ID: "s3"}, Name: "Sophie Chen", Role: "Server", Rating: 4.7},
		}
		for i := range staff {
			staff[i].VenueID = venue.ID
		}
		if err := tx.Create(&staff).Error; err != nil {
			return err
		}

		log.WithFields(logrus.Fields{
			"venue":           venue.Slug,
			"menu_items":      len(items),
			"menu_categories": len(categories),
			"staff":           len(staff),
		}).Info("demo data seeded")
		return nil
	})
}
