package database

const imageSchema = `
CREATE TABLE seasonal_images (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	start_month INTEGER NOT NULL DEFAULT 1,
	start_day INTEGER NOT NULL DEFAULT 1,
	end_month INTEGER NOT NULL DEFAULT 1,
	end_day INTEGER NOT NULL DEFAULT 1,
	image_path TEXT NOT NULL DEFAULT '',
	enabled BOOLEAN NOT NULL DEFAULT 1,
	position TEXT NOT NULL DEFAULT 'top-right',
	priority INTEGER NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX idx_seasonal_images_enabled ON seasonal_images(enabled);
CREATE INDEX idx_seasonal_images_priority ON seasonal_images(priority);

-- Sample Christmas configuration
INSERT INTO seasonal_images (start_month, start_day, end_month, end_day, image_path, enabled, position, priority, description)
VALUES (12, 20, 12, 26, 'christmas_hat.png', 1, 'top-right', 1, 'Christmas Hat');
`

// imageMigrations contains incremental schema changes
// Each migration is applied in order based on the current user_version
// imageMigrations[0] is empty because version 0 uses the base schema
var imageMigrations = []string{
	"",
}
