package secrets

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/crypto/argon2"
)

// per-user preference store (file, 0600) with AES-GCM sealed values.
// Not a replacement for OS keychains but keeps session state out of plain text.

const fileName = "secure_flags.json"

type secretFile struct {
	Salt   string            `json:"salt"`   // base64, generated on first write
	Values map[string]string `json:"values"` // key -> base64(nonce|ciphertext)
}

// Store is an encrypted key-value file. Values are bound to their key, so a
// ciphertext copied under another key fails to open.
type Store struct {
	mu         sync.Mutex
	path       string
	passphrase string

	// key derived from cachedSalt
	cachedSalt string
	cachedKey  []byte
}

// Open returns a store backed by path. An empty path uses DefaultPath.
func Open(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil { // restrict directory
		return nil, err
	}
	user := os.Getenv("USER")
	return &Store{path: path, passphrase: fmt.Sprintf("notewise-%s-%s", runtime.GOOS, user)}, nil
}

func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "notewise", fileName), nil
}

// Get returns the value stored under key. A value that cannot be opened, for
// example after the passphrase changed or the file was edited, reads as absent.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sf, err := load(s.path)
	if err != nil {
		return "", false, err
	}
	enc, ok := sf.Values[key]
	if !ok {
		return "", false, nil
	}
	pt, err := s.open(sf, key, enc)
	if err != nil {
		slog.Warn("secrets: ignoring unreadable value", "key", key, "err", err)
		return "", false, nil
	}
	return string(pt), true, nil
}

func (s *Store) open(sf secretFile, key, enc string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	pt, err := s.decrypt(sf, key, raw)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	return pt, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sf, err := load(s.path)
	if err != nil {
		return err
	}
	if _, err := base64.StdEncoding.DecodeString(sf.Salt); err != nil || sf.Salt == "" {
		// Nothing sealed under a missing or broken salt can be opened again.
		sf.Values = nil
		salt := make([]byte, 16)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return err
		}
		sf.Salt = base64.StdEncoding.EncodeToString(salt)
	}
	if sf.Values == nil {
		sf.Values = map[string]string{}
	}
	ct, err := s.encrypt(sf, key, []byte(value))
	if err != nil {
		return err
	}
	sf.Values[key] = base64.StdEncoding.EncodeToString(ct)
	return save(s.path, sf)
}

func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sf, err := load(s.path)
	if err != nil {
		return err
	}
	if _, ok := sf.Values[key]; !ok {
		return nil
	}
	delete(sf.Values, key)
	return save(s.path, sf)
}

func load(path string) (secretFile, error) {
	var sf secretFile
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return secretFile{}, nil
		}
		return sf, err
	}
	if err := json.Unmarshal(data, &sf); err != nil {
		slog.Warn("secrets: ignoring corrupt store", "path", path, "err", err)
		return secretFile{}, nil
	}
	return sf, nil
}

func save(path string, sf secretFile) error {
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *Store) key(sf secretFile) ([]byte, error) {
	if s.cachedKey != nil && s.cachedSalt == sf.Salt {
		return s.cachedKey, nil
	}
	salt, err := base64.StdEncoding.DecodeString(sf.Salt)
	if err != nil {
		return nil, fmt.Errorf("secrets: bad salt: %w", err)
	}
	s.cachedSalt = sf.Salt
	s.cachedKey = argon2.IDKey([]byte(s.passphrase), salt, 1, 64*1024, 4, 32)
	return s.cachedKey, nil
}

func (s *Store) gcm(sf secretFile) (cipher.AEAD, error) {
	key, err := s.key(sf)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (s *Store) encrypt(sf secretFile, name string, plain []byte) ([]byte, error) {
	gcm, err := s.gcm(sf)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, []byte(name)), nil
}

func (s *Store) decrypt(sf secretFile, name string, ciphertext []byte) ([]byte, error) {
	gcm, err := s.gcm(sf)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	body := ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, []byte(name))
}
