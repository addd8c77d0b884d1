package sink

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/redis/go-redis/v9"

	"dayboard/internal/snapshot"
)

// BridgeConfig selects and configures the shared-region bridge.
type BridgeConfig struct {
	// Kind is "none", "file" or "redis".
	Kind string

	// File bridge: directory the widget process watches.
	Dir string

	// Redis bridge.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// NewBridge builds the shared-region sink for the configured platform.
// An unconfigured bridge is a valid state, not an error: the no-op sink
// is returned and the fallback store carries the snapshots alone.
func NewBridge(cfg BridgeConfig) (Sink, error) {
	switch cfg.Kind {
	case "", "none":
		return &NoopBridge{}, nil
	case "file":
		return NewFileBridge(cfg.Dir)
	case "redis":
		return NewRedisBridge(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), nil
	default:
		return nil, fmt.Errorf("unknown bridge kind %q", cfg.Kind)
	}
}

// NoopBridge stands in when no shared region is available. It warns once
// and then silently accepts every write.
type NoopBridge struct {
	warnOnce sync.Once
}

func (b *NoopBridge) Store(ctx context.Context, kind snapshot.Kind, _ []byte) error {
	b.warnOnce.Do(func() {
		slog.WarnContext(ctx, "No shared-region bridge configured, widgets read the fallback store only",
			"widget_kind", kind.String())
	})
	return nil
}

func (b *NoopBridge) Name() string {
	return "noop"
}

// FileBridge mirrors snapshots into a shared directory as <kind>.json.
// The write is atomic (temp file + rename) so the widget process never
// observes a torn payload.
type FileBridge struct {
	dir string
}

func NewFileBridge(dir string) (*FileBridge, error) {
	if dir == "" {
		return nil, fmt.Errorf("file bridge requires a directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create bridge directory: %w", err)
	}
	return &FileBridge{dir: dir}, nil
}

func (b *FileBridge) Store(_ context.Context, kind snapshot.Kind, payload []byte) error {
	final := filepath.Join(b.dir, kind.String()+".json")

	tmp, err := os.CreateTemp(b.dir, kind.String()+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp snapshot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp snapshot file: %w", err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("publish snapshot file: %w", err)
	}
	return nil
}

func (b *FileBridge) Name() string {
	return "file"
}

// RedisBridge mirrors snapshots into a shared Redis the widget process
// reads. Keys match the fallback store's naming.
// snapshotKey is the shared-region key for a kind's snapshot.
func snapshotKey(kind snapshot.Kind) []byte {
	return []byte("widget:snapshot:" + kind.String())
}

type RedisBridge struct {
	client *redis.Client
}

func NewRedisBridge(addr, password string, db int) *RedisBridge {
	return &RedisBridge{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (b *RedisBridge) Store(ctx context.Context, kind snapshot.Kind, payload []byte) error {
	if err := b.client.Set(ctx, string(snapshotKey(kind)), payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set snapshot %s: %w", kind, err)
	}
	return nil
}

func (b *RedisBridge) Name() string {
	return "redis"
}

func (b *RedisBridge) Close() error {
	return b.client.Close()
}
