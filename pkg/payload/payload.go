// Package payload builds the strings encoded into the welcome-screen QR codes.
//
// Two payloads are produced per render: a Wi-Fi join string that phones
// recognise natively, and a contact URL that opens a pre-filled WhatsApp
// order for the guest's room. The SSID is always encoded raw; only the
// human-readable caption under the Wi-Fi card is rewritten by [SSIDCaption].
package payload

import (
	"fmt"
	"strings"
)

// RoomPlaceholder is replaced by the room number in contact templates.
const RoomPlaceholder = "{ROOM}"

// WiFi returns the join string for a WPA network:
//
//	WIFI:T:WPA;S:<ssid>;P:<passphrase>;H:false;;
//
// The SSID and passphrase are inserted verbatim.
func WiFi(ssid, passphrase string) string {
	return fmt.Sprintf("WIFI:T:WPA;S:%s;P:%s;H:false;;", ssid, passphrase)
}

// Contact substitutes room for the first occurrence of [RoomPlaceholder] in
// template. Later occurrences are left as they are.
func Contact(template, room string) string {
	return strings.Replace(template, RoomPlaceholder, room, 1)
}

// SSIDCaption returns the SSID as shown under the Wi-Fi card, with
// underscores turned into hyphens.
func SSIDCaption(ssid string) string {
	return strings.ReplaceAll(ssid, "_", "-")
}
