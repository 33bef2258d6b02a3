package migrations

import (
	"github.com/NeuralTrust/BotTracker/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250103_create_blog_posts",
		Name: "Create blog_posts table",

		Up: func(db *gorm.DB) error {
			return db.Exec(`
				CREATE TABLE IF NOT EXISTS blog_posts (
					id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					author_id   UUID REFERENCES users(id) ON DELETE SET NULL,
					title       TEXT NOT NULL,
					slug        TEXT NOT NULL,
					excerpt     TEXT NOT NULL DEFAULT '',
					content     TEXT NOT NULL,
					tags        JSONB NOT NULL DEFAULT '[]'::jsonb,
					published   BOOLEAN NOT NULL DEFAULT FALSE,
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_blog_posts_slug ON blog_posts (slug);
				CREATE INDEX IF NOT EXISTS idx_blog_posts_published ON blog_posts (published, created_at DESC);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP TABLE IF EXISTS blog_posts;`).Error
		},
	})
}
