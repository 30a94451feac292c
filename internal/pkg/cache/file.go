package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// FileClient guarda cada chave em um arquivo próprio dentro de um diretório,
// no papel do "local storage" do navegador: o blob sobrevive a reinícios do processo.
// Expirações são ignoradas; a chave existe até ser removida.
type FileClient struct {
	dir string
	mu  sync.Mutex // Protege escritas concorrentes no sistema de arquivos
}

// NewFileClient garante que o diretório exista e retorna o cliente.
func NewFileClient(dir string) (*FileClient, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create dir %s: %w", dir, err)
	}
	return &FileClient{dir: dir}, nil
}

func (c *FileClient) path(key string) string {
	return filepath.Join(c.dir, url.PathEscape(key)+".json")
}

func (c *FileClient) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.read(key)
}

// Set grava em um arquivo temporário e renomeia, para nunca deixar um blob pela metade.
func (c *FileClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.write(key, stringify(value))
}

func (c *FileClient) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.Remove(c.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (c *FileClient) GetInt(ctx context.Context, key string) (int, error) {
	val, err := c.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(val)
}

func (c *FileClient) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := "0"
	val, err := c.read(key)
	switch {
	case err == nil:
		current = val
	case !errors.Is(err, ErrCacheMiss):
		return 0, err
	}

	n, err := strconv.ParseInt(current, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cache: value at %q is not an integer: %w", key, err)
	}
	n++
	if err := c.write(key, strconv.FormatInt(n, 10)); err != nil {
		return 0, err
	}
	return n, nil
}

func (c *FileClient) read(key string) (string, error) {
	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *FileClient) write(key, value string) error {
	target := c.path(key)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}
