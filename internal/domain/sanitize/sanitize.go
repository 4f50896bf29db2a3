// Package sanitize normalizes user-supplied titles and descriptions.
package sanitize

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 2000
)

var (
	ErrBlankTitle         = errors.New("title cannot be blank")
	ErrTitleTooLong       = fmt.Errorf("title length must be <= %d", MaxTitleLength)
	ErrDescriptionTooLong = fmt.Errorf("description length must be <= %d", MaxDescriptionLength)
)

// Title trims raw and collapses every whitespace run to a single space.
func Title(raw string) (string, error) {
	title := strings.Join(strings.Fields(raw), " ")
	if title == "" {
		return "", ErrBlankTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

// Description trims raw. Inner whitespace is kept as written.
func Description(raw string) (string, error) {
	desc := strings.TrimSpace(raw)
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		return "", ErrDescriptionTooLong
	}
	return desc, nil
}
