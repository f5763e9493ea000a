package config

import (
	"log"
	"os"
)

type Config struct {
	Port       string
	DBDSN      string
	CatalogURL string
	OrderURL   string
	LogFile    string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "bookbarn.db"
	} // sqlite file in project root
	catalog := os.Getenv("CATALOG_URL")
	if catalog == "" {
		catalog = "http://localhost:9091"
	}
	order := os.Getenv("ORDER_URL")
	if order == "" {
		order = "http://localhost:9092"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./bookbarn.log"
	}

	cfg := Config{Port: port, DBDSN: dsn, CatalogURL: catalog, OrderURL: order, LogFile: logFile}
	log.Printf("[config] PORT=%s DB_DSN=%s CATALOG_URL=%s ORDER_URL=%s LOG_FILE=%s",
		cfg.Port, cfg.DBDSN, cfg.CatalogURL, cfg.OrderURL, cfg.LogFile)
	return cfg
}
