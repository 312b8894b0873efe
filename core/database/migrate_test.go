package database

import "testing"

func TestMigrationFilesEmbedded(t *testing.T) {
	files := MigrationFiles()
	if len(files) == 0 {
		t.Fatal("expected embedded up migrations")
	}
	if files[0] != "000001_ip_entries.up.sql" {
		t.Fatalf("first migration = %s", files[0])
	}
}

func TestConfigURLs(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "u", Password: "p", Name: "ips", SSLMode: "disable"}
	if got := URL(cfg); got != "postgres://u:p@db:5432/ips?sslmode=disable" {
		t.Fatalf("url = %s", got)
	}
	if got := DSN(cfg); got != "user=u password=p host=db port=5432 dbname=ips sslmode=disable" {
		t.Fatalf("dsn = %s", got)
	}
}
