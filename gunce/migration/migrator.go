// Package migration imports user profiles from the old platform's MongoDB
// into the profiles table. It runs once per environment, from the migrate
// CLI, and is safe to re-run: rows upsert on user_id.
package migration

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gunceblog/gunce-backend/gunce/database/models"
	"github.com/gunceblog/gunce-backend/gunce/economy/leveling"
	"github.com/gunceblog/gunce-backend/gunce/logger"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type Migrator struct {
	pgDB       *bun.DB
	calculator *leveling.Calculator

	dataDir      string
	profilesPath string
	batchSize    int
	sleepBetween time.Duration
	insertSingle bool

	// Optional direct Mongo access
	mongoDB  *mongo.Database
	collName string

	stats MigrationStats
}

func NewMigrator(pgDB *bun.DB, dataDir string) *Migrator {
	return &Migrator{
		pgDB:         pgDB,
		calculator:   leveling.NewCalculator(nil),
		dataDir:      dataDir,
		profilesPath: filepath.Join(dataDir, "profiles.bson"),
		batchSize:    1000,
		collName:     "profiles",
		stats: MigrationStats{
			Tables:    make(map[string]*TableStats),
			StartTime: time.Now(),
		},
	}
}

// SetBatchSize overrides the default batch size for inserts (useful for poolers/timeouts)
func (m *Migrator) SetBatchSize(size int) {
	if size > 0 {
		m.batchSize = size
	}
}

// SetSleepBetween sets an optional sleep between batch inserts (milliseconds)
func (m *Migrator) SetSleepBetween(ms int) {
	if ms > 0 {
		m.sleepBetween = time.Duration(ms) * time.Millisecond
	}
}

// SetInsertMode sets insert mode: "batch" (default) or "single"
func (m *Migrator) SetInsertMode(mode string) {
	m.insertSingle = mode == "single"
}

// UseMongo enables direct-from-Mongo migration mode
func (m *Migrator) UseMongo(client *mongo.Client, dbName string) {
	if client != nil && dbName != "" {
		m.mongoDB = client.Database(dbName)
	}
}

// SetCollectionName overrides the legacy profile collection name
func (m *Migrator) SetCollectionName(name string) {
	if name != "" {
		m.collName = name
	}
}

// MigrateAll imports legacy profiles from the BSON dump in the data
// directory.
func (m *Migrator) MigrateAll(ctx context.Context) error {
	logProgress("Starting BSON profile migration")
	logProgress(fmt.Sprintf("Data directory: %s", m.dataDir))

	m.stats.StartTime = time.Now()

	if err := m.MigrateProfiles(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	m.stats.EndTime = time.Now()
	if err := m.generateMigrationReport(); err != nil {
		slog.Error("Failed to generate migration report", "error", err)
	}

	logProgress("Migration completed successfully!")
	m.logFinalStats()
	return nil
}

// MigrateAllFromMongo imports legacy profiles directly from a live MongoDB
func (m *Migrator) MigrateAllFromMongo(ctx context.Context) error {
	if m.mongoDB == nil {
		return fmt.Errorf("mongoDB not configured; call UseMongo first")
	}

	logProgress("Starting direct MongoDB migration")
	m.stats.StartTime = time.Now()

	if err := m.MigrateProfilesFromMongo(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	m.stats.EndTime = time.Now()
	if err := m.generateMigrationReport(); err != nil {
		slog.Error("Failed to generate migration report", "error", err)
	}

	logProgress("Direct Mongo migration completed successfully!")
	m.logFinalStats()
	return nil
}

// MigrateProfilesFromMongo streams the legacy collection and upserts in
// batches.
func (m *Migrator) MigrateProfilesFromMongo(ctx context.Context) error {
	col := m.mongoDB.Collection(m.collName)
	cur, err := col.Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", m.collName, err)
	}
	defer cur.Close(ctx)

	var legacy []LegacyProfile
	for cur.Next(ctx) {
		var lp LegacyProfile
		if err := cur.Decode(&lp); err == nil {
			legacy = append(legacy, lp)
		}
	}
	if err := cur.Err(); err != nil {
		return err
	}
	return m.processProfiles(ctx, legacy)
}

// MigrateProfiles reads the mongodump BSON file document by document.
// Each document is a little-endian int32 length followed by the body.
func (m *Migrator) MigrateProfiles(ctx context.Context) error {
	slog.Info("Starting profile migration",
		"profilesPath", m.profilesPath,
		"batchSize", m.batchSize)

	file, err := os.Open(m.profilesPath)
	if err != nil {
		slog.Error("Failed to open profiles BSON file", "error", err)
		return fmt.Errorf("failed to open profiles BSON file: %w", err)
	}
	defer file.Close()

	var legacy []LegacyProfile

	reader := bufio.NewReader(file)
	for {
		lengthBytes := make([]byte, 4)
		_, err := io.ReadFull(reader, lengthBytes)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read document length: %w", err)
		}

		length := int32(binary.LittleEndian.Uint32(lengthBytes))
		if length <= 0 {
			return fmt.Errorf("invalid document length: %d", length)
		}

		docBytes := make([]byte, length-4)
		if _, err := io.ReadFull(reader, docBytes); err != nil {
			return fmt.Errorf("failed to read document bytes: %w", err)
		}

		fullDocBytes := append(lengthBytes, docBytes...)

		var lp LegacyProfile
		if err := bson.Unmarshal(fullDocBytes, &lp); err != nil {
			return fmt.Errorf("failed to decode profile BSON: %w", err)
		}
		legacy = append(legacy, lp)
	}

	slog.Info("Loaded profiles from BSON file", "count", len(legacy))
	return m.processProfiles(ctx, legacy)
}

func (m *Migrator) processProfiles(ctx context.Context, legacy []LegacyProfile) error {
	table := m.tableStats("profiles")
	table.Processed = len(legacy)

	// Deduplicate on user_id, keeping the latest record
	byUserID := make(map[string]*models.Profile)
	duplicateCount := 0
	for _, lp := range legacy {
		profile := m.convertProfile(lp)

		if profile.UserID == "" {
			table.Skipped++
			table.SkippedRecords = append(table.SkippedRecords, SkippedRecord{
				Reason:    "empty_user_id",
				Data:      lp.ID.Hex(),
				Timestamp: time.Now(),
			})
			continue
		}

		if _, exists := byUserID[profile.UserID]; exists {
			duplicateCount++
			logProgress(fmt.Sprintf("Duplicate user ID found: %s (keeping latest record)", profile.UserID))
		}
		byUserID[profile.UserID] = profile
	}

	var profiles []*models.Profile
	for _, p := range byUserID {
		profiles = append(profiles, p)
	}

	total := len(profiles)
	for i := 0; i < total; i += m.batchSize {
		end := i + m.batchSize
		if end > total {
			end = total
		}
		batch := profiles[i:end]

		slog.Info("Inserting batch of profiles",
			"batchSize", len(batch),
			"progress", fmt.Sprintf("%d/%d", end, total))

		if err := m.batchInsertProfiles(ctx, batch); err != nil {
			table.Errors += len(batch)
			return err
		}
		table.Successful += len(batch)

		if m.sleepBetween > 0 {
			time.Sleep(m.sleepBetween)
		}
	}

	logProgress(fmt.Sprintf("Profile migration completed: %d total input records, %d unique profiles imported, %d duplicate user IDs handled, %d skipped",
		len(legacy), total, duplicateCount, table.Skipped))
	return nil
}

func (m *Migrator) batchInsertProfiles(ctx context.Context, profiles []*models.Profile) error {
	startTime := time.Now()

	if m.insertSingle {
		for i, p := range profiles {
			if _, err := m.upsertQuery(p).Exec(ctx); err != nil {
				logProgress(fmt.Sprintf("Insert profile %d/%d failed: %v", i+1, len(profiles), err))
				return fmt.Errorf("failed to insert profile %s: %w", p.UserID, err)
			}
		}
		logProgress(fmt.Sprintf("Single inserts of profiles completed: %d (took %s)", len(profiles), time.Since(startTime)))
		return nil
	}

	_, err := m.upsertQuery(&profiles).Exec(ctx)
	if err != nil {
		// Retry individually so one bad row does not sink the batch
		for _, p := range profiles {
			if _, singleErr := m.upsertQuery(p).Exec(ctx); singleErr != nil {
				slog.Error("Failed to insert profile individually", "user_id", p.UserID, "error", singleErr)
			}
		}
		slog.Error("Batch insert of profiles failed",
			"error", err,
			"duration", time.Since(startTime))
		return fmt.Errorf("batch insert failed: %w", err)
	}

	slog.Info("Batch insert of profiles completed",
		"count", len(profiles),
		"duration", time.Since(startTime))
	return nil
}

func (m *Migrator) upsertQuery(model interface{}) *bun.InsertQuery {
	return m.pgDB.NewInsert().
		Model(model).
		On("CONFLICT (user_id) DO UPDATE").
		Set("username = EXCLUDED.username").
		Set("experience = EXCLUDED.experience").
		Set("level = EXCLUDED.level").
		Set("gems = EXCLUDED.gems").
		Set("badges = EXCLUDED.badges").
		Set("owned_frames = EXCLUDED.owned_frames").
		Set("selected_frame = EXCLUDED.selected_frame").
		Set("last_daily_reward = EXCLUDED.last_daily_reward").
		Set("updated_at = EXCLUDED.updated_at")
}

func (m *Migrator) tableStats(name string) *TableStats {
	if m.stats.Tables == nil {
		m.stats.Tables = make(map[string]*TableStats)
	}
	if _, ok := m.stats.Tables[name]; !ok {
		m.stats.Tables[name] = &TableStats{TableName: name}
	}
	return m.stats.Tables[name]
}

func (m *Migrator) generateMigrationReport() error {
	for _, t := range m.stats.Tables {
		m.stats.TotalProcessed += t.Processed
		m.stats.TotalSkipped += t.Skipped
		m.stats.TotalErrors += t.Errors
	}

	data, err := json.MarshalIndent(m.stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal migration stats: %w", err)
	}

	reportPath := fmt.Sprintf("migration_report_%s.json", m.stats.EndTime.Format("20060102_150405"))
	if err := os.WriteFile(reportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write migration report: %w", err)
	}

	logProgress(fmt.Sprintf("Migration report written to %s", reportPath))
	return nil
}

func (m *Migrator) logFinalStats() {
	slog.Info("Migration statistics",
		"duration", m.stats.EndTime.Sub(m.stats.StartTime).String(),
		"processed", m.stats.TotalProcessed,
		"skipped", m.stats.TotalSkipped,
		"errors", m.stats.TotalErrors)
}

func logProgress(msg string) {
	logger.LogSystem(msg, slog.String("operation", "migration"))
}
