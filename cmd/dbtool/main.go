package main

import (
	"context"
	"flag"
	"log"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// dbtool creates the geocode and route cache tables ahead of deployment.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dialect := flag.String("dialect", config.Get("CACHE_BACKEND", "postgres"), "sqlite or postgres")
	flag.Parse()

	var dsn string
	switch db.Dialect(*dialect) {
	case db.Postgres:
		dsn = config.Get("DATABASE_URL", "")
		if dsn == "" {
			log.Fatal("DATABASE_URL is required")
		}
	case db.SQLite:
		dsn = config.Get("DB_PATH", "data/app.db")
	default:
		log.Fatalf("unsupported dialect %q", *dialect)
	}

	if err := initSchema(db.Dialect(*dialect), dsn); err != nil {
		log.Fatal(err)
	}
}

func initSchema(dialect db.Dialect, dsn string) error {
	open := db.Open
	if dialect == db.SQLite {
		open = db.OpenSQLite
	}

	conn, err := open(dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	log.Printf("Initializing database schema dialect=%s...", dialect)
	if err := db.InitSchema(context.Background(), conn, dialect); err != nil {
		return err
	}
	log.Println("Schema ready.")

	return nil
}
