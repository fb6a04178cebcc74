package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tablehost/sop-backend/config"
	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/internal/app/repository"
	"github.com/tablehost/sop-backend/internal/db"
	"github.com/tablehost/sop-backend/pkg/redis"
	"github.com/xuri/excelize/v2"
)

// Imports translations from an XLSX workbook. Expected columns:
// key | en | fr | category | context (optional)
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	translationRepo := repository.NewTranslationRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	translations, err := readTranslationsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total translation rows to import: %d\n", len(translations))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 100
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := translationRepo.BulkUpsert(translations, batchSize); err != nil {
		log.Fatal("Failed to bulk upsert translations:", err)
	}

	// Drop cached payloads so running servers pick up the new strings
	if err := redis.Init(&cfg.Redis); err == nil {
		ctx := context.Background()
		for _, locale := range []string{"en", "fr"} {
			if err := redis.InvalidateLocale(ctx, locale); err != nil {
				fmt.Printf("Warning: cache invalidation failed for %s: %v\n", locale, err)
			}
		}
		redis.Close()
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total translation rows imported: %d\n", len(translations))
}

func readTranslationsFromXLSX(filePath string) ([]model.Translation, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows found (need a header and at least one row)")
	}

	var translations []model.Translation
	skipped := 0

	// Row 0 is the header
	for i, row := range rows[1:] {
		key := cell(row, 0)
		en := cell(row, 1)
		fr := cell(row, 2)
		category := cell(row, 3)
		context := cell(row, 4)

		if key == "" || (en == "" && fr == "") {
			skipped++
			continue
		}

		if en != "" {
			translations = append(translations, model.Translation{
				Locale:   "en",
				Key:      key,
				Value:    en,
				Category: category,
				Context:  context,
			})
		}
		if fr != "" {
			translations = append(translations, model.Translation{
				Locale:   "fr",
				Key:      key,
				Value:    fr,
				Category: category,
				Context:  context,
			})
		}

		if (i+1)%500 == 0 {
			fmt.Printf("Parsed %d rows...\n", i+1)
		}
	}

	if skipped > 0 {
		fmt.Printf("Skipped %d incomplete rows\n", skipped)
	}
	return translations, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
