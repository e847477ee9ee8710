package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"shell-assistant-be/internal/model"
	"shell-assistant-be/pkg/database"
	"shell-assistant-be/pkg/docs"
	"shell-assistant-be/pkg/vocab"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Assistant Seeder...")

	if err := db.AutoMigrate(&model.HelpDoc{}, &model.DocAlias{}, &model.TermSnapshot{}); err != nil {
		log.Fatal("Error: Migration failed:", err)
	}

	seedHelpDocs(db)
	seedAliases(db)
	seedTermSnapshot(db)

	log.Println("✅ Success: Assistant seeding completed.")
}

// seedHelpDocs is idempotent: a doc whose content hash already matches is
// left untouched, including its version.
func seedHelpDocs(db *gorm.DB) {
	log.Println("Seeding Help Docs...")

	helpDocs := []model.HelpDoc{
		{
			Slug:     "workspace",
			Category: "panels",
			Title:    "Workspace",
			Content:  "The workspace is your main working area. It holds every open panel and remembers the layout between sessions. Use the workspace switcher to move between saved layouts.",
		},
		{
			Slug:     "links-panel",
			Category: "panels",
			Title:    "Links Panel",
			Content:  "The links panel collects references attached to the current item. Multiple links panels can be open at once; each carries a badge letter to tell them apart.",
		},
		{
			Slug:     "settings",
			Category: "panels",
			Title:    "Settings",
			Content:  "Settings control appearance, notifications and account preferences. Changes apply immediately and sync across devices.",
		},
		{
			Slug:     "badges",
			Category: "concepts",
			Title:    "Panel Badges",
			Content:  "When several instances of the same panel are open, each gets a single-letter badge. Commands can name the badge to pick a specific instance.",
		},
		{
			Slug:     "shortcuts",
			Category: "concepts",
			Title:    "Keyboard Shortcuts",
			Content:  "Most panels can be opened, closed and focused from the keyboard. The shortcut overlay lists every binding for the current layout.",
		},
	}

	created, unchanged := 0, 0
	for i := range helpDocs {
		d := &helpDocs[i]
		d.ContentHash = docs.ContentHash(d.Content)
		d.Version = 1

		var existing model.HelpDoc
		err := db.Where("slug = ?", d.Slug).First(&existing).Error
		if err == nil {
			if existing.ContentHash == d.ContentHash {
				unchanged++
				continue
			}
			existing.Category = d.Category
			existing.Title = d.Title
			existing.Content = d.Content
			existing.ContentHash = d.ContentHash
			existing.Version++
			if err := db.Save(&existing).Error; err != nil {
				log.Fatalf("Error: Failed to update doc %s: %v", d.Slug, err)
			}
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("Error: Failed to check doc %s: %v", d.Slug, err)
		}

		d.Id = uuid.New()
		if err := db.Create(d).Error; err != nil {
			log.Fatalf("Error: Failed to create doc %s: %v", d.Slug, err)
		}
		created++
	}
	log.Printf("Help docs: %d created, %d unchanged", created, unchanged)
}

func seedAliases(db *gorm.DB) {
	log.Println("Seeding Doc Aliases...")

	aliases := []model.DocAlias{
		{Surface: "prefs", Canonical: "settings", TargetSlug: "settings", Boost: 2},
		{Surface: "preferences", Canonical: "settings", TargetSlug: "settings", Boost: 2},
		{Surface: "hotkeys", Canonical: "keyboard shortcuts", TargetSlug: "shortcuts", Boost: 2},
		{Surface: "letters", Canonical: "panel badges", TargetSlug: "badges", Boost: 1},
	}

	for i := range aliases {
		aliases[i].Id = uuid.New()
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "surface"}},
			DoUpdates: clause.AssignmentColumns([]string{"canonical", "target_slug", "boost"}),
		}).Create(&aliases[i]).Error
		if err != nil {
			log.Fatalf("Error: Failed to seed alias %s: %v", aliases[i].Surface, err)
		}
	}
	log.Printf("Doc aliases: %d seeded", len(aliases))
}

func seedTermSnapshot(db *gorm.DB) {
	log.Println("Seeding Term Snapshot...")

	terms := []vocab.KnownTerm{
		{Term: "workspace", Kind: vocab.KindPanel, PanelID: "workspace"},
		{Term: "settings", Kind: vocab.KindPanel, PanelID: "settings"},
		{Term: "links", Kind: vocab.KindPanel, PanelID: "links-a", Badge: "a"},
		{Term: "links", Kind: vocab.KindPanel, PanelID: "links-d", Badge: "d"},
		{Term: "badges", Kind: vocab.KindConcept},
		{Term: "shortcuts", Kind: vocab.KindConcept},
	}

	hash := vocab.HashTerms(terms)

	var existing model.TermSnapshot
	err := db.Order("captured_at DESC").First(&existing).Error
	if err == nil && existing.Hash == hash {
		log.Println("Term snapshot unchanged, skipping")
		return
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		log.Fatalf("Error: Failed to check term snapshot: %v", err)
	}

	raw, err := json.Marshal(terms)
	if err != nil {
		log.Fatalf("Error: Failed to encode terms: %v", err)
	}

	snap := model.TermSnapshot{
		Id:         uuid.New(),
		Version:    time.Now().UTC().Format("20060102150405"),
		Hash:       hash,
		Terms:      datatypes.JSON(raw),
		CapturedAt: time.Now(),
	}
	if err := db.Create(&snap).Error; err != nil {
		log.Fatalf("Error: Failed to create term snapshot: %v", err)
	}
	log.Printf("Term snapshot %s seeded (%d terms)", snap.Version, len(terms))
}
