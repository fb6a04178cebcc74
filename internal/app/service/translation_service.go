package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"time"

	"github.com/tablehost/sop-backend/internal/app/model"
	"github.com/tablehost/sop-backend/internal/app/repository"
	"github.com/tablehost/sop-backend/pkg/logger"
	"github.com/tablehost/sop-backend/pkg/redis"
	"gorm.io/gorm"
)

var ErrTranslationNotFound = errors.New("translation not found")

// Cache status values surfaced to clients in the X-Cache-Status header.
const (
	CacheHit    = "HIT"
	CacheMiss   = "MISS"
	CacheBypass = "BYPASS"
)

// placeholderPattern matches {variable} markers inside translation values.
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// TranslationBundle is the payload for a locale listing request. It is what
// gets cached, so every field must serialize deterministically.
type TranslationBundle struct {
	Locale       string            `json:"locale"`
	Translations map[string]string `json:"translations"`
	Context      map[string]string `json:"context,omitempty"`
	Count        int               `json:"count"`
}

// ResolvedTranslation is a single key lookup, after interpolation.
type ResolvedTranslation struct {
	Key          string `json:"key"`
	Locale       string `json:"locale"`
	Value        string `json:"value"`
	Interpolated bool   `json:"interpolated"`
}

type TranslationService interface {
	GetTranslations(ctx context.Context, locale, category, keysCSV string, keys []string, includeContext bool) (*TranslationBundle, string, error)
	ResolveKey(locale, keyPath string, vars map[string]string) (*ResolvedTranslation, error)
	TrackUsage(locale string, keys []string, sessionID, usageContext string) (int, error)
	ImportTranslations(ctx context.Context, translations []model.Translation) error
}

type translationService struct {
	translationRepo repository.TranslationRepository
	cacheTTL        time.Duration
}

func NewTranslationService(translationRepo repository.TranslationRepository, cacheTTL time.Duration) TranslationService {
	return &translationService{
		translationRepo: translationRepo,
		cacheTTL:        cacheTTL,
	}
}

// GetTranslations returns the locale's strings, served from Redis when a
// fresh copy exists. The second return value is the cache status for the
// response header. Cache failures degrade to a database read, never to an
// error for the caller.
func (s *translationService) GetTranslations(ctx context.Context, locale, category, keysCSV string, keys []string, includeContext bool) (*TranslationBundle, string, error) {
	cacheKey := redis.TranslationCacheKey(locale, category, keysCSV)

	if redis.GetClient() != nil {
		cached, hit, err := redis.GetCachedTranslations(ctx, cacheKey)
		if err == nil && hit {
			var bundle TranslationBundle
			if err := json.Unmarshal([]byte(cached), &bundle); err == nil {
				logger.Debug("Translation cache hit", map[string]interface{}{
					"locale": locale,
					"key":    cacheKey,
				})
				return &bundle, CacheHit, nil
			}
			logger.Warn("Discarding unreadable translation cache entry", map[string]interface{}{
				"key": cacheKey,
			})
		}
	}

	translations, err := s.translationRepo.FindByLocale(locale, category, keys)
	if err != nil {
		return nil, "", err
	}

	bundle := &TranslationBundle{
		Locale:       locale,
		Translations: make(map[string]string, len(translations)),
		Count:        len(translations),
	}
	if includeContext {
		bundle.Context = make(map[string]string)
	}
	for _, t := range translations {
		bundle.Translations[t.Key] = t.Value
		if includeContext && t.Context != "" {
			bundle.Context[t.Key] = t.Context
		}
	}

	status := CacheBypass
	if redis.GetClient() != nil {
		status = CacheMiss
		if payload, err := json.Marshal(bundle); err == nil {
			_ = redis.SetCachedTranslations(ctx, cacheKey, string(payload), s.cacheTTL)
		}
	}

	logger.Info("Translations served from database", map[string]interface{}{
		"locale":   locale,
		"category": category,
		"count":    bundle.Count,
	})
	return bundle, status, nil
}

// ResolveKey looks up a single dotted key and substitutes {variable}
// placeholders from vars. Placeholders without a matching variable are left
// in place so the tablet can spot missing parameters.
func (s *translationService) ResolveKey(locale, keyPath string, vars map[string]string) (*ResolvedTranslation, error) {
	translation, err := s.translationRepo.FindByKey(locale, keyPath)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTranslationNotFound
		}
		return nil, err
	}

	value, interpolated := interpolate(translation.Value, vars)
	return &ResolvedTranslation{
		Key:          keyPath,
		Locale:       locale,
		Value:        value,
		Interpolated: interpolated,
	}, nil
}

func interpolate(value string, vars map[string]string) (string, bool) {
	if len(vars) == 0 {
		return value, false
	}

	interpolated := false
	result := placeholderPattern.ReplaceAllStringFunc(value, func(match string) string {
		name := match[1 : len(match)-1]
		if replacement, ok := vars[name]; ok {
			interpolated = true
			return replacement
		}
		return match
	})
	return result, interpolated
}

// TrackUsage records that a session displayed the given keys. Failures on
// individual keys are logged and skipped; the returned count is how many keys
// were actually recorded.
func (s *translationService) TrackUsage(locale string, keys []string, sessionID, usageContext string) (int, error) {
	tracked := 0
	for _, key := range keys {
		if err := s.translationRepo.TrackUsage(locale, key, sessionID, usageContext); err != nil {
			logger.Warn("Skipping failed usage record", map[string]interface{}{
				"locale": locale,
				"key":    key,
			})
			continue
		}
		tracked++
	}

	logger.Debug("Translation usage tracked", map[string]interface{}{
		"locale":  locale,
		"tracked": tracked,
		"keys":    len(keys),
	})
	return tracked, nil
}

// ImportTranslations bulk-loads strings and drops the affected locales from
// the cache so the next listing sees the new values.
func (s *translationService) ImportTranslations(ctx context.Context, translations []model.Translation) error {
	if err := s.translationRepo.BulkUpsert(translations, 100); err != nil {
		return err
	}

	locales := make(map[string]struct{})
	for _, t := range translations {
		locales[t.Locale] = struct{}{}
	}
	for locale := range locales {
		if err := redis.InvalidateLocale(ctx, locale); err != nil {
			logger.Warn("Translation cache invalidation failed", map[string]interface{}{
				"locale": locale,
			})
		}
	}
	return nil
}
