package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/utils"
)

// LoadSlotsSettings reads wager engine settings from a JSON file. Fields the
// file omits keep their defaults. An empty path yields the defaults.
func LoadSlotsSettings(path string) (domain.SlotsSettings, error) {
	settings := domain.DefaultSlotsSettings()
	if path == "" {
		return settings, nil
	}
	if err := utils.LoadJSON(path, &settings); err != nil {
		return domain.SlotsSettings{}, fmt.Errorf(ErrMsgLoadSlotsSettings, err)
	}
	if err := ValidateSlotsSettings(settings); err != nil {
		return domain.SlotsSettings{}, err
	}
	return settings, nil
}

// ValidateSlotsSettings checks field ranges and that a configured maximum
// is not below the minimum. Zero limits are unbounded.
func ValidateSlotsSettings(settings domain.SlotsSettings) error {
	if err := validator.New().Struct(settings); err != nil {
		return fmt.Errorf(ErrMsgInvalidSlotsSettings, err)
	}
	if settings.MaxWager > 0 && settings.MinWager > settings.MaxWager {
		return fmt.Errorf(ErrMsgInvalidSlotsSettings,
			fmt.Errorf(ErrMsgWagerBoundsInverted, settings.MaxWager, settings.MinWager))
	}
	return nil
}
