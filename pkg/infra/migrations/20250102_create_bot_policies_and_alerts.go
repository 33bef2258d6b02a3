package migrations

import (
	"github.com/NeuralTrust/BotTracker/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250102_create_bot_policies_and_alerts",
		Name: "Create bot_policies and alert_rules tables",

		Up: func(db *gorm.DB) error {
			// user_id NULL is a global policy; NULLS NOT DISTINCT keeps one global row per bot.
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS bot_policies (
					id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id     UUID REFERENCES users(id) ON DELETE CASCADE,
					bot_name    TEXT NOT NULL,
					action      TEXT NOT NULL CHECK (action IN ('allow', 'block')),
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_bot_policies_user_bot
					ON bot_policies (user_id, bot_name) NULLS NOT DISTINCT;
			`).Error; err != nil {
				return err
			}

			return db.Exec(`
				CREATE TABLE IF NOT EXISTS alert_rules (
					id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id      UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					alert_type   TEXT NOT NULL CHECK (alert_type IN ('email', 'webhook', 'log')),
					destination  TEXT NOT NULL DEFAULT '',
					threshold    INTEGER NOT NULL DEFAULT 10 CHECK (threshold > 0),
					is_active    BOOLEAN NOT NULL DEFAULT TRUE,
					created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_alert_rules_user_id ON alert_rules (user_id);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`
				DROP TABLE IF EXISTS alert_rules;
				DROP TABLE IF EXISTS bot_policies;
			`).Error
		},
	})
}
