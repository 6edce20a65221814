package payload

import "testing"

func TestWiFi(t *testing.T) {
	tests := []struct {
		name       string
		ssid       string
		passphrase string
		want       string
	}{
		{
			name:       "underscore kept raw",
			ssid:       "Regatas_San Jose",
			passphrase: "RegatasWelcome2024",
			want:       "WIFI:T:WPA;S:Regatas_San Jose;P:RegatasWelcome2024;H:false;;",
		},
		{
			name:       "plain",
			ssid:       "Lobby",
			passphrase: "x",
			want:       "WIFI:T:WPA;S:Lobby;P:x;H:false;;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WiFi(tt.ssid, tt.passphrase); got != tt.want {
				t.Errorf("WiFi() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContact(t *testing.T) {
	tests := []struct {
		name     string
		template string
		room     string
		want     string
	}{
		{
			name:     "whatsapp order",
			template: "https://wa.me/51990411197?text=Pedido%20Bungalow%20{ROOM}",
			room:     "208",
			want:     "https://wa.me/51990411197?text=Pedido%20Bungalow%20208",
		},
		{
			name:     "first occurrence only",
			template: "{ROOM}-{ROOM}",
			room:     "12",
			want:     "12-{ROOM}",
		},
		{
			name:     "no placeholder",
			template: "https://wa.me/51990411197",
			room:     "12",
			want:     "https://wa.me/51990411197",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contact(tt.template, tt.room); got != tt.want {
				t.Errorf("Contact() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSSIDCaption(t *testing.T) {
	tests := map[string]string{
		"Regatas_San Jose": "Regatas-San Jose",
		"a_b_c":            "a-b-c",
		"Lobby":            "Lobby",
		"":                 "",
	}
	for in, want := range tests {
		if got := SSIDCaption(in); got != want {
			t.Errorf("SSIDCaption(%q) = %q, want %q", in, got, want)
		}
	}
}
