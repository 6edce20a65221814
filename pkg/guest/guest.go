// Package guest defines the booking record consumed by the welcome-screen
// renderer and the display-name truncation policy applied to it.
//
// A [Profile] is plain input data: callers build it from a booking form, a
// JSON or TOML file, or CLI flags, and hand it to the pipeline by value. The
// pipeline validates it once with [Profile.Validate] before any rendering
// work begins.
//
// # Display Names
//
// Long names do not fit the 118px guest-name line, so [DisplayName] shortens
// anything longer than [MaxNameLength] characters:
//
//	DisplayName(Profile{PreferredName: "Familia Sánchez Gutiérrez", GuestType: Family})
//	// "Familia S."
//
//	DisplayName(Profile{PreferredName: "Alexandria Montgomery-Whitfield", GuestType: Couple})
//	// "Alexandria Montgomery-Wh..."
package guest

import (
	"fmt"
	"strings"

	"github.com/matzehuels/welcomescreen/pkg/errors"
	"github.com/matzehuels/welcomescreen/pkg/payload"
)

// MaxNameLength is the longest preferred name shown without truncation.
const MaxNameLength = 24

// Type classifies the party staying in the room.
type Type string

// Guest types.
const (
	Single  Type = "Single"
	Couple  Type = "Couple"
	Family  Type = "Family"
	Friends Type = "Friends"
)

// Types lists every valid guest type in display order.
var Types = []Type{Single, Couple, Family, Friends}

// ParseType converts a case-insensitive name into a Type.
func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", errors.New(errors.ErrCodeValidation, "invalid guest type: %q (must be one of: Single, Couple, Family, Friends)", s)
}

// IsGroup reports whether names for this type are shortened to
// "First L." rather than cut at a fixed length.
func (t Type) IsGroup() bool {
	return t == Family || t == Friends
}

// Profile is the guest record a welcome screen is rendered from.
type Profile struct {
	PreferredName string `json:"preferredName" toml:"preferred_name"`
	GuestType     Type   `json:"guestType" toml:"guest_type"`
	RoomNumber    string `json:"roomNumber" toml:"room_number"`
	VenueName     string `json:"venueName" toml:"venue_name"`
	VenueWhatsApp string `json:"venueWhatsApp" toml:"venue_whatsapp"`
	SSID          string `json:"ssid" toml:"ssid"`
	Background    string `json:"backgroundImageUrl,omitempty" toml:"background,omitempty"`
}

// Validate checks that every required field is present and well formed.
// It returns a VALIDATION_ERROR naming the first offending field.
func (p Profile) Validate() error {
	if err := errors.ValidateRequired("preferredName", p.PreferredName); err != nil {
		return err
	}
	if _, err := ParseType(string(p.GuestType)); err != nil {
		return err
	}
	if err := errors.ValidateRequired("roomNumber", p.RoomNumber); err != nil {
		return err
	}
	if err := errors.ValidateRequired("venueName", p.VenueName); err != nil {
		return err
	}
	if err := errors.ValidateRequired("ssid", p.SSID); err != nil {
		return err
	}
	if err := errors.ValidatePlaceholder("venueWhatsApp", p.VenueWhatsApp, payload.RoomPlaceholder); err != nil {
		return err
	}
	return errors.ValidateAssetRef(p.Background)
}

// String returns a short description for logs.
func (p Profile) String() string {
	return fmt.Sprintf("room %s (%s)", p.RoomNumber, p.GuestType)
}
