package service

import (
	"database/sql"
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/AlessioMurgia/capitaltracker/internal/apperrors"
	"github.com/AlessioMurgia/capitaltracker/internal/database"
	"github.com/AlessioMurgia/capitaltracker/internal/repository"
	"github.com/AlessioMurgia/capitaltracker/internal/version"
)

// SettingMarketDataKey is the system_setting key holding the market data API key.
const SettingMarketDataKey = "marketdata_api_key"

// SystemService handles system-related operations: health, version and
// encrypted settings. The market data API key is stored fernet-encrypted in
// the system_setting table; without key material configured, storing or
// reading it fails.
type SystemService struct {
	db          *sql.DB
	settingRepo *repository.SettingRepository
	fernetKey   *fernet.Key
}

// NewSystemService creates a new SystemService. fernetKey may be empty, which
// disables encrypted settings.
func NewSystemService(db *sql.DB, settingRepo *repository.SettingRepository, fernetKey string) (*SystemService, error) {
	s := &SystemService{
		db:          db,
		settingRepo: settingRepo,
	}
	if fernetKey != "" {
		key, err := fernet.DecodeKey(fernetKey)
		if err != nil {
			return nil, fmt.Errorf("invalid settings key: %w", err)
		}
		s.fernetKey = key
	}
	return s, nil
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

func (s *SystemService) CheckVersion() string {
	return version.Version
}

// SetMarketDataKey encrypts and stores the market data API key.
func (s *SystemService) SetMarketDataKey(apiKey string) error {
	if s.fernetKey == nil {
		return fmt.Errorf("%w: no settings key configured", apperrors.ErrFailedToStoreSetting)
	}

	token, err := fernet.EncryptAndSign([]byte(apiKey), s.fernetKey)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrFailedToStoreSetting, err)
	}

	return s.settingRepo.SetSetting(SettingMarketDataKey, string(token), true)
}

// GetMarketDataKey retrieves and decrypts the stored market data API key.
func (s *SystemService) GetMarketDataKey() (string, error) {
	value, isEncrypted, err := s.settingRepo.GetSetting(SettingMarketDataKey)
	if err != nil {
		return "", err
	}
	if !isEncrypted {
		return value, nil
	}

	if s.fernetKey == nil {
		return "", fmt.Errorf("setting is encrypted but no settings key is configured")
	}

	// TTL 0 disables token expiry; the key does not age out.
	plain := fernet.VerifyAndDecrypt([]byte(value), 0, []*fernet.Key{s.fernetKey})
	if plain == nil {
		return "", fmt.Errorf("failed to decrypt setting %s", SettingMarketDataKey)
	}
	return string(plain), nil
}

// HasMarketDataKey reports whether a market data API key has been configured.
func (s *SystemService) HasMarketDataKey() bool {
	_, _, err := s.settingRepo.GetSetting(SettingMarketDataKey)
	return err == nil
}
