package gateway

import (
	"context"

	"sporton/internal/models"

	"github.com/rs/zerolog/log"
)

// SeedData is the static reference data served when storage starts empty.
type SeedData struct {
	Categories []models.Category
	Products   []models.Product
	Banks      []models.BankAccount
}

// DefaultSeed returns the storefront demo catalog and payee banks.
func DefaultSeed() SeedData {
	const holder = "PT SportsOn Indonesia"
	return SeedData{
		Categories: []models.Category{
			{ID: "cat1", Name: "Football"},
			{ID: "cat2", Name: "Running"},
			{ID: "cat3", Name: "Training"},
			{ID: "cat4", Name: "Basketball"},
			{ID: "cat5", Name: "Tennis"},
			{ID: "cat6", Name: "Outdoor"},
		},
		Products: []models.Product{
			{ID: "1", Name: "SportsOn HyperSoccer v2", CategoryID: "cat1", Price: 458000,
				Image:       "https://images.unsplash.com/photo-1543353071-873f17a7a088",
				Description: "Engineered for the player who demands precision, power, and speed on the pitch."},
			{ID: "2", Name: "ProRunner Elite X", CategoryID: "cat2", Price: 520000,
				Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff",
				Description: "Advanced cushioning and lightweight materials for long distance runs."},
			{ID: "3", Name: "Speed Trainer Pro", CategoryID: "cat3", Price: 380000,
				Image:       "https://images.unsplash.com/photo-1606107557195-0e29a4b5b4aa",
				Description: "Support and stability for high-intensity workouts."},
			{ID: "4", Name: "Basketball Elite", CategoryID: "cat4", Price: 650000,
				Image:       "https://images.unsplash.com/photo-1595950653106-6c9ebd614d3a",
				Description: "Ankle support and grip for quick cuts and jumps."},
			{ID: "5", Name: "Tennis Master Pro", CategoryID: "cat5", Price: 475000,
				Image:       "https://images.unsplash.com/photo-1622279457486-62dcc4a431d6",
				Description: "Agility and grip for intense matches."},
			{ID: "6", Name: "Gym Flex 360", CategoryID: "cat3", Price: 425000,
				Image:       "https://images.unsplash.com/photo-1515396800500-83f80f297a3e",
				Description: "All-purpose training shoes for gym, CrossFit and general fitness."},
			{ID: "7", Name: "Street Runner X", CategoryID: "cat2", Price: 395000,
				Image:       "https://images.unsplash.com/photo-1460353581641-37baddab0fa2",
				Description: "Urban running shoes for running and casual wear."},
			{ID: "8", Name: "Soccer King Pro", CategoryID: "cat1", Price: 525000,
				Image:       "https://images.unsplash.com/photo-1511886929837-354d827aae26",
				Description: "Professional-grade soccer cleats with enhanced ball control."},
		},
		Banks: []models.BankAccount{
			{ID: "bank1", BankName: "BCA", AccountNumber: "1234567890", AccountHolder: holder},
			{ID: "bank2", BankName: "Mandiri", AccountNumber: "0987654321", AccountHolder: holder},
			{ID: "bank3", BankName: "BNI", AccountNumber: "5555666677", AccountHolder: holder},
			{ID: "bank4", BankName: "BRI", AccountNumber: "8888999900", AccountHolder: holder},
		},
	}
}

// Seed writes each seed collection that is currently empty. Collections that already
// hold data are left untouched.
func Seed(ctx context.Context, gw Gateway, data SeedData) error {
	var categories []models.Category
	if err := gw.Read(ctx, CollectionCategories, &categories); err != nil {
		return err
	}
	if len(categories) == 0 {
		if err := gw.Write(ctx, CollectionCategories, data.Categories); err != nil {
			return err
		}
		log.Info().Int("count", len(data.Categories)).Msg("seeded categories")
	}

	var products []models.Product
	if err := gw.Read(ctx, CollectionProducts, &products); err != nil {
		return err
	}
	if len(products) == 0 {
		if err := gw.Write(ctx, CollectionProducts, data.Products); err != nil {
			return err
		}
		log.Info().Int("count", len(data.Products)).Msg("seeded products")
	}

	var banks []models.BankAccount
	if err := gw.Read(ctx, CollectionBanks, &banks); err != nil {
		return err
	}
	if len(banks) == 0 {
		if err := gw.Write(ctx, CollectionBanks, data.Banks); err != nil {
			return err
		}
		log.Info().Int("count", len(data.Banks)).Msg("seeded banks")
	}
	return nil
}
