// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/go-arcade/confhub/internal/engine/model"
	"github.com/go-arcade/confhub/internal/engine/repo"
	"github.com/go-arcade/confhub/pkg/cache"
	"github.com/go-arcade/confhub/pkg/errs"
	"github.com/go-arcade/confhub/pkg/log"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/hkdf"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/01/15
 * @file: service_secret.go
 * @description: secret service
 */

// SecretResolver maps a secret name to its current value.
type SecretResolver interface {
	ResolveByName(ctx context.Context, name string) (string, error)
}

// SecretConf configures the secret store.
type SecretConf struct {
	// MasterKey is stretched with HKDF-SHA256 into the AES-256 key.
	MasterKey string
	CacheTTL  time.Duration
}

func (c *SecretConf) SetDefaults() {
	if c.CacheTTL <= 0 {
		c.CacheTTL = 5 * time.Minute
	}
}

const (
	hkdfInfo       = "confhub secret store v1"
	secretCacheKey = "secret:"
)

// SecretService stores secrets sealed with AES-256-GCM, bound to their name.
// The cache only ever holds sealed values.
type SecretService struct {
	secretRepo repo.ISecretRepository
	cache      cache.ICache
	ttl        time.Duration
	aead       cipher.AEAD
}

func NewSecretService(conf *SecretConf, secretRepo repo.ISecretRepository, c cache.ICache) (*SecretService, error) {
	conf.SetDefaults()
	if conf.MasterKey == "" {
		return nil, errs.New("NewSecretService", errs.ErrMisconfiguration, "secret.masterKey is required")
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(conf.MasterKey), nil, []byte(hkdfInfo)), key); err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &SecretService{
		secretRepo: secretRepo,
		cache:      c,
		ttl:        conf.CacheTTL,
		aead:       aead,
	}, nil
}

// seal encrypts plainText using AES-256-GCM with name as additional data.
func (ss *SecretService) seal(name, plainText string) (string, error) {
	nonce := make([]byte, ss.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	cipherText := ss.aead.Seal(nonce, nonce, []byte(plainText), []byte(name))
	return base64.StdEncoding.EncodeToString(cipherText), nil
}

func (ss *SecretService) open(name, sealed string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", err
	}
	nonceSize := ss.aead.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("invalid cipher text")
	}
	plainText, err := ss.aead.Open(nil, data[:nonceSize], data[nonceSize:], []byte(name))
	if err != nil {
		return "", err
	}
	return string(plainText), nil
}

// ResolveByName returns the plaintext of the named secret, or an
// errs.ErrNotFound error.
func (ss *SecretService) ResolveByName(ctx context.Context, name string) (string, error) {
	const op = "SecretService.ResolveByName"

	sealed, err := ss.cache.Get(ctx, secretCacheKey+name).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WithContext(ctx).Debugw("secret cache unavailable", "name", name, "error", err)
		}
		secret, err := ss.secretRepo.GetByName(ctx, name)
		if err != nil {
			return "", errs.Wrap(op, "", nil, err, name)
		}
		sealed = secret.SecretValue
		if err := ss.cache.Set(ctx, secretCacheKey+name, sealed, ss.ttl).Err(); err != nil {
			log.WithContext(ctx).Debugw("secret not cached", "name", name, "error", err)
		}
	}

	value, err := ss.open(name, sealed)
	if err != nil {
		ss.evict(ctx, name)
		return "", errs.Wrap(op, "", nil, err, name)
	}
	return value, nil
}

// CreateSecret seals value and stores it under name.
func (ss *SecretService) CreateSecret(ctx context.Context, name, value, description, actor string) (*model.Secret, error) {
	const op = "SecretService.CreateSecret"
	if err := requireActor(op, actor); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.New(op, errs.ErrValidation, "name is required")
	}
	if value == "" {
		return nil, errs.New(op, errs.ErrValidation, "value is required")
	}

	sealed, err := ss.seal(name, value)
	if err != nil {
		log.WithContext(ctx).Errorw("failed to encrypt secret value", "name", name, "error", err)
		return nil, errs.Wrap(op, actor, nil, err, name)
	}
	secret := &model.Secret{Name: name, SecretValue: sealed, Description: description}
	secret.Stamp(actor)
	if err := ss.secretRepo.Create(ctx, secret); err != nil {
		return nil, errs.Wrap(op, actor, nil, err, name)
	}
	log.WithContext(ctx).Infow("secret created", "id", secret.ID, "name", name, "actor", actor)
	return secret, nil
}

// UpdateSecret replaces the description and, when value is non-nil, the value.
func (ss *SecretService) UpdateSecret(ctx context.Context, id uint64, value *string, description, actor string) (*model.Secret, error) {
	const op = "SecretService.UpdateSecret"
	if err := requireActor(op, actor); err != nil {
		return nil, err
	}
	secret, err := ss.secretRepo.Get(ctx, id)
	if err != nil {
		return nil, errs.Wrap(op, actor, nil, err, id)
	}
	if value != nil {
		if *value == "" {
			return nil, errs.New(op, errs.ErrValidation, "value must not be empty")
		}
		if secret.SecretValue, err = ss.seal(secret.Name, *value); err != nil {
			return nil, errs.Wrap(op, actor, nil, err, id)
		}
	}
	secret.Description = description
	secret.Touch(actor)
	if err := ss.secretRepo.Update(ctx, secret); err != nil {
		return nil, errs.Wrap(op, actor, nil, err, id)
	}
	ss.evict(ctx, secret.Name)
	log.WithContext(ctx).Infow("secret updated", "id", id, "name", secret.Name, "valueChanged", value != nil, "actor", actor)
	return secret, nil
}

func (ss *SecretService) DeleteSecret(ctx context.Context, id uint64, actor string) error {
	const op = "SecretService.DeleteSecret"
	secret, err := ss.secretRepo.Get(ctx, id)
	if err != nil {
		return errs.Wrap(op, actor, nil, err, id)
	}
	if err := ss.secretRepo.Delete(ctx, id); err != nil {
		return errs.Wrap(op, actor, nil, err, id)
	}
	ss.evict(ctx, secret.Name)
	log.WithContext(ctx).Infow("secret deleted", "id", id, "name", secret.Name, "actor", actor)
	return nil
}

// ListSecrets lists secrets without their values.
func (ss *SecretService) ListSecrets(ctx context.Context) ([]*model.Secret, error) {
	secrets, err := ss.secretRepo.List(ctx)
	return secrets, errs.Wrap("SecretService.ListSecrets", "", nil, err)
}

func (ss *SecretService) evict(ctx context.Context, name string) {
	if err := ss.cache.Del(ctx, secretCacheKey+name).Err(); err != nil {
		log.WithContext(ctx).Warnw("secret cache eviction failed", "name", name, "error", err)
	}
}
