package db

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	gormlogger "gorm.io/gorm/logger"

	"github.com/lumenarts/gallery-api/pkg/config"
	"github.com/lumenarts/gallery-api/pkg/db/dbtest"
	"github.com/lumenarts/gallery-api/pkg/logger"
)

func TestPingAndClose(t *testing.T) {
	client := Wrap(dbtest.OpenSQLite(t))
	ctx := context.Background()

	if err := client.Ping(ctx); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
	if _, err := client.SQL(); err != nil {
		t.Fatalf("unexpected sql handle error: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := client.Ping(ctx); err == nil {
		t.Fatal("expected ping to fail after close")
	}
}

func TestNewRequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{DSN: " "}, nil); err == nil {
		t.Fatal("expected error without DSN")
	}
}

func TestQueryLoggerDisabledWithoutThreshold(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}})
	if got := newQueryLogger(context.Background(), logg, 0); got != gormlogger.Discard {
		t.Fatal("expected discard logger for zero threshold")
	}
	if got := newQueryLogger(context.Background(), nil, time.Second); got != gormlogger.Discard {
		t.Fatal("expected discard logger without a logger")
	}
}

func TestQueryWriterLogsThroughLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: buf})

	queryWriter{ctx: context.Background(), logg: logg}.Printf("SLOW SQL >= %v\n", 250*time.Millisecond)

	out := buf.String()
	if !strings.Contains(out, `"component":"gorm"`) || !strings.Contains(out, "SLOW SQL >= 250ms") {
		t.Fatalf("unexpected log entry: %s", out)
	}
	if !strings.Contains(out, `"level":"warn"`) {
		t.Fatalf("expected warn level: %s", out)
	}
}
