package guest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/welcomescreen/pkg/errors"
)

// ReadFile decodes a profile from a .json or .toml file. The profile is not
// validated; venue defaults are usually applied first.
func ReadFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, errors.Wrap(errors.ErrCodeValidation, err, "read guest file")
	}

	var p Profile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &p)
	case ".toml":
		err = toml.Unmarshal(data, &p)
	default:
		return Profile{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported guest file extension %q (want .json or .toml)", ext)
	}
	if err != nil {
		return Profile{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode guest file %s", filepath.Base(path))
	}
	return p, nil
}
