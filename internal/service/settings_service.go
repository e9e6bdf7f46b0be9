package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"otpshare/internal/domain"
	"otpshare/internal/port"
)

const settingsCacheKey = "settings:all"

// SettingsService manages runtime-tunable settings.
type SettingsService interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Update(ctx context.Context, values map[string]string) (map[string]string, error)
	JWTExpiration(ctx context.Context) time.Duration
}

type settingsService struct {
	repo  port.SettingRepository
	cache *cache.Cache
}

// NewSettingsService creates a SettingsService whose reads are cached for ttl.
func NewSettingsService(repo port.SettingRepository, ttl time.Duration) SettingsService {
	return &settingsService{
		repo:  repo,
		cache: cache.New(ttl, 2*ttl),
	}
}

// settingValidators check values for keys with constraints; other keys are free-form.
var settingValidators = map[string]func(string) error{
	domain.SettingJWTExpirationHours: func(v string) error {
		hours, err := strconv.Atoi(v)
		if err != nil || hours <= 0 {
			return fmt.Errorf("%w: jwt expiration hours must be a positive number", domain.ErrInvalidSetting)
		}
		return nil
	},
}

func (s *settingsService) GetAll(ctx context.Context) (map[string]string, error) {
	if cached, ok := s.cache.Get(settingsCacheKey); ok {
		return copySettings(cached.(map[string]string)), nil
	}

	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("settings.GetAll: %w", err)
	}
	values := make(map[string]string, len(rows)+1)
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	values[domain.SettingJWTExpirationHours] = strconv.Itoa(jwtHoursOrDefault(values[domain.SettingJWTExpirationHours]))

	s.cache.Set(settingsCacheKey, values, cache.DefaultExpiration)
	return copySettings(values), nil
}

func (s *settingsService) Update(ctx context.Context, values map[string]string) (map[string]string, error) {
	for key, value := range values {
		if key == "" {
			return nil, fmt.Errorf("%w: empty setting key", domain.ErrInvalidSetting)
		}
		if validate, ok := settingValidators[key]; ok {
			if err := validate(value); err != nil {
				return nil, err
			}
		}
	}

	for key, value := range values {
		if err := s.repo.Upsert(ctx, key, value); err != nil {
			s.cache.Delete(settingsCacheKey)
			return nil, fmt.Errorf("settings.Update: %w", err)
		}
	}
	s.cache.Delete(settingsCacheKey)
	log.Printf("settings.Update: updated %d setting(s)", len(values))

	return s.GetAll(ctx)
}

func (s *settingsService) JWTExpiration(ctx context.Context) time.Duration {
	values, err := s.GetAll(ctx)
	if err != nil {
		log.Printf("settings.JWTExpiration: falling back to default: %v", err)
		return time.Duration(domain.DefaultJWTExpirationHours) * time.Hour
	}
	return time.Duration(jwtHoursOrDefault(values[domain.SettingJWTExpirationHours])) * time.Hour
}

func jwtHoursOrDefault(v string) int {
	hours, err := strconv.Atoi(v)
	if err != nil || hours <= 0 {
		return domain.DefaultJWTExpirationHours
	}
	return hours
}

func copySettings(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// isNotFound reports whether err is a repository miss.
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
