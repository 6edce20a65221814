package sink

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"image/png"
	"strconv"
	"strings"

	"github.com/matzehuels/welcomescreen/pkg/errors"
	"github.com/matzehuels/welcomescreen/pkg/qr"
	"github.com/matzehuels/welcomescreen/pkg/render/layout"
	"github.com/matzehuels/welcomescreen/pkg/render/scene"
)

// Formats a browser or librsvg can load from a data URI as-is.
var embeddableMIME = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func dataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// backgroundURI embeds the original bytes when possible and re-encodes
// the decoded image as PNG otherwise.
func backgroundURI(b scene.BackgroundLayer) (string, error) {
	if len(b.Data) > 0 && embeddableMIME[b.MIME] {
		return dataURI(b.MIME, b.Data), nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, b.Image); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode background")
	}
	return dataURI("image/png", buf.Bytes()), nil
}

func qrURI(q *qr.Image) (string, error) {
	data, err := q.PNG()
	if err != nil {
		return "", err
	}
	return dataURI("image/png", data), nil
}

// qrGridAttrs records the module layout of q on its markup element.
func qrGridAttrs(q *qr.Image) string {
	return ` data-symbol="` + strconv.Itoa(len(q.Modules)) + `" data-margin="` + strconv.Itoa(q.MarginModules) + `"`
}

// parseGrid reads the attributes written by qrGridAttrs for a QR element
// placed at r.
func parseGrid(attrs map[string]string, r layout.Rect) (layout.Grid, error) {
	symbol, err := strconv.Atoi(attrs["data-symbol"])
	if err != nil {
		return layout.Grid{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "qr data-symbol")
	}
	margin, err := strconv.Atoi(attrs["data-margin"])
	if err != nil {
		return layout.Grid{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "qr data-margin")
	}
	return layout.QRGrid(r, symbol, margin), nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseStyle splits an inline CSS declaration list into a property map.
func parseStyle(s string) map[string]string {
	out := map[string]string{}
	for _, decl := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

// parseLength reads a number with an optional unit suffix such as "px".
func parseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	return strconv.ParseFloat(s, 64)
}
