package services

import (
	"time"

	"github.com/loreweave/loreweave/pkg/internal/database"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// DoAutoDatabaseCleanup hard-deletes rows that were soft-deleted longer ago
// than the retention window, then sweeps the join rows they orphaned.
func DoAutoDatabaseCleanup() {
	retention := viper.GetInt("maintenance.retention_days")
	if retention <= 0 {
		retention = 30
	}
	deadline := time.Now().AddDate(0, 0, -retention)

	log.Debug().Time("deadline", deadline).Msg("Now cleaning up entire database...")

	var count int64
	for _, model := range database.AutoMaintainRange {
		tx := database.C.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at <= ?", deadline).
			Delete(model)
		if tx.Error != nil {
			log.Error().Err(tx.Error).Msg("An error occurred when running auto maintain...")
			continue
		}
		count += tx.RowsAffected
	}

	for _, stmt := range []string{
		"DELETE FROM post_authors WHERE post_id NOT IN (SELECT id FROM posts)",
		"DELETE FROM post_authors WHERE profile_id NOT IN (SELECT id FROM profiles)",
		"DELETE FROM post_editors WHERE post_id NOT IN (SELECT id FROM posts)",
		"DELETE FROM profile_editors WHERE profile_id NOT IN (SELECT id FROM profiles)",
		"DELETE FROM collection_posts WHERE collection_id NOT IN (SELECT id FROM collections)",
		"DELETE FROM collection_posts WHERE post_id NOT IN (SELECT id FROM posts)",
		"DELETE FROM collection_editors WHERE collection_id NOT IN (SELECT id FROM collections)",
	} {
		if tx := database.C.Exec(stmt); tx.Error != nil {
			log.Error().Err(tx.Error).Msg("An error occurred when sweeping orphan join rows...")
		} else {
			count += tx.RowsAffected
		}
	}

	log.Debug().Int64("affected", count).Msg("Clean up entire database accomplished.")
}
