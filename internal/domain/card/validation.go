package card

import (
	"fmt"

	"github.com/rpggio/kanbee/internal/domain/sanitize"
)

func cleanTitle(raw string) (string, error) {
	title, err := sanitize.Title(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return title, nil
}

func cleanDescription(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	desc, err := sanitize.Description(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return &desc, nil
}

func checkPosition(pos *int) error {
	if pos != nil && *pos < 0 {
		return fmt.Errorf("%w: position must be >= 0", ErrInvalidInput)
	}
	return nil
}
