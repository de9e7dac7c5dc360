// Package migrations creates the storefront schema on startup. Statements are
// idempotent (CREATE TABLE IF NOT EXISTS) so repeated boots are safe.
package migrations

import "database/sql"

var statements = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id INT AUTO_INCREMENT PRIMARY KEY,
		order_number VARCHAR(40) NOT NULL UNIQUE,
		customer_name VARCHAR(120) NOT NULL,
		customer_phone VARCHAR(30) NOT NULL,
		customer_email VARCHAR(120),
		delivery_address VARCHAR(255) NOT NULL,
		delivery_fee DOUBLE NOT NULL DEFAULT 0,
		subtotal DOUBLE NOT NULL DEFAULT 0,
		total DOUBLE NOT NULL DEFAULT 0,
		notes VARCHAR(500),
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		payment_method VARCHAR(30) NOT NULL DEFAULT 'cash_on_delivery',
		transaction_code VARCHAR(60),
		phone_normalized VARCHAR(20) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_orders_phone (phone_normalized),
		INDEX idx_orders_created (created_at)
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id INT AUTO_INCREMENT PRIMARY KEY,
		order_id INT NOT NULL,
		product_id VARCHAR(40) NOT NULL,
		name VARCHAR(200) NOT NULL,
		unit_price DOUBLE NOT NULL,
		quantity INT NOT NULL,
		variation VARCHAR(120),
		image_url VARCHAR(500),
		FOREIGN KEY (order_id) REFERENCES orders(id)
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(120) NOT NULL,
		slug VARCHAR(140) NOT NULL UNIQUE,
		image_url VARCHAR(500),
		active BOOLEAN NOT NULL DEFAULT TRUE,
		sort_order INT NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		slug VARCHAR(220) NOT NULL UNIQUE,
		description TEXT,
		price DOUBLE NOT NULL,
		original_price DOUBLE NOT NULL DEFAULT 0,
		category_id INT NOT NULL,
		in_stock BOOLEAN NOT NULL DEFAULT TRUE,
		is_featured BOOLEAN NOT NULL DEFAULT FALSE,
		is_new BOOLEAN NOT NULL DEFAULT FALSE,
		is_offer BOOLEAN NOT NULL DEFAULT FALSE,
		item_condition VARCHAR(10) NOT NULL DEFAULT 'new',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_products_category (category_id)
	)`,
	`CREATE TABLE IF NOT EXISTS product_images (
		id INT AUTO_INCREMENT PRIMARY KEY,
		product_id INT NOT NULL,
		url VARCHAR(500) NOT NULL,
		sort_order INT NOT NULL DEFAULT 0,
		FOREIGN KEY (product_id) REFERENCES products(id)
	)`,
	`CREATE TABLE IF NOT EXISTS product_variations (
		id INT AUTO_INCREMENT PRIMARY KEY,
		product_id INT NOT NULL,
		label VARCHAR(60) NOT NULL,
		value VARCHAR(120) NOT NULL,
		sort_order INT NOT NULL DEFAULT 0,
		FOREIGN KEY (product_id) REFERENCES products(id)
	)`,
	`CREATE TABLE IF NOT EXISTS delivery_locations (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(120) NOT NULL,
		fee DOUBLE NOT NULL DEFAULT 0,
		estimated_time VARCHAR(60),
		active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS offers (
		id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		description TEXT,
		image_url VARCHAR(500),
		link_url VARCHAR(500),
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS banners (
		id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		subtitle VARCHAR(300),
		image_url VARCHAR(500) NOT NULL,
		link_url VARCHAR(500),
		active BOOLEAN NOT NULL DEFAULT TRUE,
		sort_order INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS policies (
		id INT AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		slug VARCHAR(220) NOT NULL UNIQUE,
		content MEDIUMTEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS newsletter_subscribers (
		id INT AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(120) NOT NULL UNIQUE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS admin_users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(120) NOT NULL,
		email VARCHAR(120) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS admin_sessions (
		id VARCHAR(40) PRIMARY KEY,
		admin_id INT NOT NULL,
		user_agent VARCHAR(300),
		ip VARCHAR(60),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		expires_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS page_views (
		id INT AUTO_INCREMENT PRIMARY KEY,
		page VARCHAR(300) NOT NULL,
		referrer VARCHAR(500),
		device VARCHAR(30),
		browser VARCHAR(60),
		country VARCHAR(60),
		session_id VARCHAR(60),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_page_views_created (created_at)
	)`,
}

// AutoMigrate runs every schema statement in order.
func AutoMigrate(db *sql.DB) error {
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
